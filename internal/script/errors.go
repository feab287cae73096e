package script

import "errors"

// Sentinel errors for the script package. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrEmptyCommand is returned when a launch command has no argv.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrInvalidEnvKey is returned when an environment variable name is not
	// a valid shell identifier.
	ErrInvalidEnvKey = errors.New("invalid environment variable name")

	// ErrUnsupportedTerminal is returned for terminal apps without a tab script.
	ErrUnsupportedTerminal = errors.New("unsupported terminal app")
)
