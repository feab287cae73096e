// Package validate holds boundary guards for values that plugins hand to
// other programs.
package validate

import (
	"fmt"
	"strings"
)

var allowedSchemes = []string{"http://", "https://"}

// URL returns an error unless url begins with http:// or https://.
// The error names label and repeats url verbatim so the message can be
// shown to a user as-is; it wraps ErrUnsupportedScheme.
func URL(url, label string) error {
	for _, prefix := range allowedSchemes {
		if strings.HasPrefix(url, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be an http(s) URL, got: %s", ErrUnsupportedScheme, label, url)
}
