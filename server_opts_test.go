package server

import (
	"time"
)

// WithClock sets the clock of the default feed builder.
func WithClock(f func() time.Time) Opt {
	return func(s *Server) {
		s.now = f
	}
}
