package validate

import "errors"

// Sentinel errors for the validate package. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrUnsupportedScheme is returned when a URL does not start with
	// http:// or https://.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)
