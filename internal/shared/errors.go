package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Player errors
	ErrMissingBinding   = fmt.Errorf("missing control binding")
	ErrNoSource         = fmt.Errorf("no source loaded")
	ErrUnsupportedMedia = fmt.Errorf("unsupported media format")
	ErrSourceFailed     = fmt.Errorf("failed to load source")
	ErrPersistState     = fmt.Errorf("failed to persist player state")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
