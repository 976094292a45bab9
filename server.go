package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/scoutingnl/opkomst-ical/feed"
)

// FeedPath is where the calendar is served.
const FeedPath = "/opkomsten.ics"

type Server struct {
	source  EventSource
	builder *feed.Builder
	now     func() time.Time
}

type Opt func(*Server)

// WithBuilder sets the feed builder. The default uses feed.DefaultConfig.
func WithBuilder(b *feed.Builder) Opt {
	return func(s *Server) {
		s.builder = b
	}
}

// New registers the feed on r, reading events from source on every request.
func New(r *gin.Engine, source EventSource, opts ...Opt) error {
	s := &Server{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.builder == nil {
		builder, err := feed.New(feed.DefaultConfig(), feed.WithClock(s.now))
		if err != nil {
			return err
		}
		s.builder = builder
	}

	r.Use(
		requestid.New(requestid.WithGenerator(uuid.NewString)),
		logging,
	)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET(FeedPath, s.handleFeed)

	return nil
}

func (s *Server) handleFeed(c *gin.Context) {
	opts, err := getFeedOptions(c, c.QueryArray)
	if err != nil {
		handleFeedErr(c, err)
		return
	}

	events, err := s.getEvents(c)
	if err != nil {
		handleFeedErr(c, err)
		return
	}

	calendar, err := s.builder.With(log(c)).Build(filterEvents(events, opts))
	if err != nil {
		handleFeedErr(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="opkomsten.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar))
}
