package videos

import (
	"errors"

	"video-sharing/pkg/models"
)

var (
	ErrNotFound           = models.ErrNotFound
	ErrForbidden          = errors.New("forbidden")
	ErrStorageUnavailable = models.ErrStorageUnavailable
)

// ValidationError rejects malformed input. Message is meant to be shown
// back on the submission form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
