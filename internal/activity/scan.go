package activity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmochalinn/agent-orchestrator/internal/worker"
	"github.com/dmochalinn/agent-orchestrator/pkg/jsonl"
)

// Report is the activity of one session log.
type Report struct {
	Path       string    `json:"path" yaml:"path"`
	State      State     `json:"state" yaml:"state"`
	Present    bool      `json:"present" yaml:"present"`
	HasType    bool      `json:"has_type" yaml:"has_type"`
	LastType   string    `json:"last_type,omitempty" yaml:"last_type,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitzero" yaml:"modified_at,omitempty"`
}

// Scanner reads many session logs concurrently and classifies each. A nil
// Reader or Pool falls back to a silent reader and a NumCPU pool.
type Scanner struct {
	Reader        *jsonl.Reader
	Pool          *worker.Pool[*jsonl.Entry]
	IdleThreshold time.Duration
	// Now is the clock used for idle detection; nil means time.Now.
	Now func() time.Time
}

// NewScanner returns a Scanner using reader and at most concurrency workers.
func NewScanner(reader *jsonl.Reader, concurrency int, idle time.Duration) *Scanner {
	if reader == nil {
		reader = jsonl.NewReader(nil)
	}
	return &Scanner{
		Reader:        reader,
		Pool:          worker.NewPool[*jsonl.Entry](concurrency),
		IdleThreshold: idle,
	}
}

// Scan returns one Report per path, in the order given. A log that yields
// no signal is reported with Present false and StateUnknown; it is not an
// error. Scan fails only if ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Report, error) {
	reader, pool := s.Reader, s.Pool
	if reader == nil {
		reader = jsonl.NewReader(nil)
	}
	if pool == nil {
		pool = worker.NewPool[*jsonl.Entry](0)
	}
	results, err := pool.Process(ctx, paths, func(_ context.Context, path string) (*jsonl.Entry, error) {
		return reader.ReadLastEntry(path), nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan logs: %w", err)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	reports := make([]Report, len(results))
	for i, r := range results {
		rep := Report{Path: r.Item, State: Classify(r.Value, now, s.IdleThreshold)}
		if r.Value != nil {
			rep.Present = true
			rep.HasType = r.Value.HasType
			rep.LastType = r.Value.LastType
			rep.ModifiedAt = r.Value.ModifiedAt
		}
		reports[i] = rep
	}
	return reports, nil
}

// ExpandPaths replaces every directory in args with the files inside it
// matching glob, sorted. Other args are kept as given, whether or not they
// exist, so missing logs still show up in a scan.
func ExpandPaths(args []string, glob string) ([]string, error) {
	if glob == "" {
		glob = "*.jsonl"
	}
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("invalid log glob %q: %w", glob, err)
	}

	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", arg, err)
		}
		var matches []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			// Match names only; the directory itself may contain glob metacharacters.
			if ok, _ := filepath.Match(glob, e.Name()); ok {
				matches = append(matches, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}
