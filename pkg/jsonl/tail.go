// Package jsonl recovers the most recent record from append-only JSON-Lines
// event logs without reading the whole file.
//
// Only the trailing MaxTailBytes of a log are ever read. The first line of
// that window is usually a fragment of a record that began before it; such
// fragments, like any other line that is not a JSON object, are skipped
// silently rather than reported.
package jsonl

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

// MaxTailBytes is the most bytes ReadLastEntry reads from a log, whatever
// its size.
const MaxTailBytes = 4096

// Entry is the tail signal recovered from a log.
type Entry struct {
	// LastType is the "type" of the newest record in the window that has a
	// string "type" field. Only meaningful when HasType is true.
	LastType string `json:"last_type,omitempty" yaml:"last_type,omitempty"`
	// HasType is false when the window holds no record with a string "type".
	HasType bool `json:"has_type" yaml:"has_type"`
	// ModifiedAt is the log's mtime as observed when it was opened.
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
}

// Reader reads log tails. The zero value discards its debug messages.
// A Reader holds no per-call state and is safe for concurrent use.
type Reader struct {
	logger *zap.Logger
}

// NewReader returns a Reader that reports why a log yielded no signal at
// debug level on logger. A nil logger discards those messages.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

var defaultReader = NewReader(nil)

// ReadLastEntry is shorthand for NewReader(nil).ReadLastEntry(path).
func ReadLastEntry(path string) *Entry {
	return defaultReader.ReadLastEntry(path)
}

// ReadLastEntry returns the newest typed record in the tail of the log at
// path. It returns nil when there is no usable signal: the file is missing,
// unreadable, or empty. A non-nil Entry with HasType false means the file
// has content but no typed record within the last MaxTailBytes.
func (r *Reader) ReadLastEntry(path string) *Entry {
	log := r.log()
	f, err := os.Open(path)
	if err != nil {
		log.Debug("log unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		log.Debug("log stat failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	if fi.Size() == 0 {
		log.Debug("log empty", zap.String("path", path))
		return nil
	}

	window, err := readWindow(f, fi.Size())
	if err != nil {
		log.Debug("log read failed", zap.String("path", path), zap.Error(err))
		return nil
	}

	entry := &Entry{ModifiedAt: fi.ModTime()}
	entry.LastType, entry.HasType = lastType(window)
	log.Debug("log tail read",
		zap.String("path", path),
		zap.Int64("size", fi.Size()),
		zap.Int("window", len(window)),
		zap.Bool("has_type", entry.HasType),
	)
	return entry
}

func (r *Reader) log() *zap.Logger {
	if r == nil || r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}

// readWindow reads the trailing min(MaxTailBytes, size) bytes of f with a
// single positioned read. size is the size observed at stat time; if the
// file shrank since, the short read is returned as-is.
func readWindow(f *os.File, size int64) ([]byte, error) {
	n := min(int64(MaxTailBytes), size)
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, size-n)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// lastType scans the window's lines from newest to oldest and returns the
// first string "type" found on a line that parses as a JSON object.
func lastType(window []byte) (string, bool) {
	text := strings.ToValidUTF8(string(window), "\uFFFD")
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimFunc(lines[i], isPadding)
		if line == "" {
			continue
		}
		if typ, ok := recordType(line); ok {
			return typ, true
		}
	}
	return "", false
}

// isPadding reports whether c may surround a record: white space or a byte
// order mark, which some writers put at the start of the file.
func isPadding(c rune) bool {
	return unicode.IsSpace(c) || c == '\uFEFF'
}

// recordType reports the string "type" field of line, if line is a JSON
// object that has one. Arrays, null and scalars are not records.
func recordType(line string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &obj); err != nil || obj == nil {
		return "", false
	}
	raw, ok := obj["type"]
	if !ok || len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var typ string
	if err := json.Unmarshal(raw, &typ); err != nil {
		return "", false
	}
	return typ, true
}
