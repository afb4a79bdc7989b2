package download

import "errors"

// Sentinel errors for the download package.
var (
	// ErrClientUnavailable is returned when the download client cannot be reached.
	ErrClientUnavailable = errors.New("download client unavailable")

	// ErrInvalidCredentials is returned when the client rejects the login.
	ErrInvalidCredentials = errors.New("invalid download client credentials")

	// ErrUnknownDownloader is returned when no client is configured under a name.
	ErrUnknownDownloader = errors.New("unknown downloader")

	// ErrNotFound is returned when a download record is not found in the database.
	ErrNotFound = errors.New("download not found")
)
