package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Source service errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrSourceFetch      = fmt.Errorf("failed to fetch playlist data")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Re-extraction errors
	ErrNoMatchedTracks = fmt.Errorf("no tracks with YouTube links found")
)
