package transfer

import "errors"

var (
	// ErrRecognition indicates the media behind a file could not be identified.
	ErrRecognition = errors.New("media not recognized")

	// ErrTargetResolution indicates no library directory accepts the media.
	ErrTargetResolution = errors.New("target directory not resolved")

	// ErrStorage indicates the move, copy or link itself failed.
	ErrStorage = errors.New("storage operation failed")

	// ErrNoCandidates indicates a batch root expanded to nothing worth organizing.
	ErrNoCandidates = errors.New("no files to transfer")

	// ErrAlreadyTransferred indicates the source was organized before.
	ErrAlreadyTransferred = errors.New("already transferred")

	// ErrHistoryNotFound indicates a redo referenced an unknown history record.
	ErrHistoryNotFound = errors.New("history record not found")

	// ErrSourceMissing indicates the source of a transfer no longer exists.
	ErrSourceMissing = errors.New("source missing")

	// ErrInvalidRedo indicates malformed redo arguments.
	ErrInvalidRedo = errors.New("invalid redo arguments")
)
