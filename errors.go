package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoutingnl/opkomst-ical/feed"
)

type errorWithMessage struct {
	code    int
	message string
}

func newErrorWithMessage(code int, format string, args ...any) errorWithMessage {
	return errorWithMessage{
		code:    code,
		message: fmt.Sprintf(format, args...),
	}
}

func (e errorWithMessage) Error() string {
	return e.message
}

// sourceError is a failure of the EventSource. Subscribers are only told that
// the events could not be loaded, they can retry later.
type sourceError struct {
	err error
}

func (e sourceError) Error() string {
	return fmt.Sprintf("error loading events: %s", e.err)
}

func (e sourceError) Unwrap() error {
	return e.err
}

// handleFeedErr writes the response for a failed feed request. Only
// errorWithMessage texts reach the subscriber, everything else is logged.
func handleFeedErr(c *gin.Context, err error) {
	var (
		msgErr errorWithMessage
		srcErr sourceError
		genErr *feed.GenerationError
	)
	switch {
	case errors.As(err, &msgErr):
		c.String(msgErr.code, msgErr.message)
	case errors.As(err, &srcErr):
		log(c).WithError(srcErr.err).Warn("Failed to load events")
		c.String(http.StatusServiceUnavailable, "Failed to load events")
	case errors.As(err, &genErr):
		log(c).WithError(genErr.Err).Error("Failed to generate feed")
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	default:
		log(c).Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
