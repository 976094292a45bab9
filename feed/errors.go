package feed

import (
	"errors"
	"fmt"
)

var (
	errNoID    = errors.New("event has no id")
	errBadID   = errors.New("event id contains a line break")
	errNoStart = errors.New("event has no start")
)

// GenerationError is returned when the feed as a whole could not be written.
// Events that fail to render never cause one.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating feed: %s", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
