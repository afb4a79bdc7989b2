package storage

import "errors"

var (
	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrCopyFailed indicates the file copy operation failed.
	ErrCopyFailed = errors.New("failed to copy file")

	// ErrDestinationExists indicates the destination file already exists.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrPathTraversal indicates a path traversal attack was detected.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrUnsupportedMode indicates a transfer mode the storage cannot perform.
	ErrUnsupportedMode = errors.New("unsupported transfer mode")
)
