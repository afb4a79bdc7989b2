package library

import "errors"

// ErrNoTargetDirectory indicates no configured library accepts the media.
var ErrNoTargetDirectory = errors.New("no target directory")
