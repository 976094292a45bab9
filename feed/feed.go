// Package feed generates iCalendar (RFC 5545) documents from event records.
package feed

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	// The fixed timezone must load on hosts without a zoneinfo database.
	_ "time/tzdata"
)

// Builder writes feeds. It is immutable once built and safe for concurrent
// use.
type Builder struct {
	cfg      Config
	format   *Formatter
	timezone []string
	now      func() time.Time
	log      logrus.FieldLogger
}

type Opt func(*Builder)

// WithClock sets the source of DTSTAMP values.
func WithClock(f func() time.Time) Opt {
	return func(b *Builder) {
		b.now = f
	}
}

func WithLogger(l logrus.FieldLogger) Opt {
	return func(b *Builder) {
		b.log = l
	}
}

// New returns a Builder for cfg. Zero fields of cfg take their defaults.
func New(cfg Config, opts ...Opt) (*Builder, error) {
	cfg.Normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading timezone: %w", err)
	}
	if err := checkRules(loc, cfg); err != nil {
		return nil, err
	}

	timezone, err := timezoneLines(cfg)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:      cfg,
		format:   NewFormatter(loc),
		timezone: timezone,
		now:      time.Now,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// With returns a copy of b that logs to l, eg: a request scoped entry.
func (b *Builder) With(l logrus.FieldLogger) *Builder {
	c := *b
	c.log = l
	return &c
}

// Build returns the feed for events. Events that cannot be rendered are
// logged and left out. A nil slice gives a feed with no events.
func (b *Builder) Build(events []Event) (string, error) {
	var sb strings.Builder
	if err := b.Write(&sb, events); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the feed for events to w. Only a failure of the document
// itself, never of a single event, is returned, as a *GenerationError.
func (b *Builder) Write(w io.Writer, events []Event) error {
	header, err := b.header()
	if err != nil {
		return &GenerationError{Err: err}
	}

	lines := append(header, b.timezone...)
	var skipped int
	for _, event := range events {
		result := b.Render(event)
		if !result.OK() {
			skipped++
			b.log.WithError(result.Err).WithField("event", result.EventID).
				Error("Leaving out event that could not be rendered")
			continue
		}
		lines = append(lines, result.Lines...)
	}
	lines = append(lines, end(ics.ComponentVCalendar))

	b.log.WithFields(logrus.Fields{
		"events":  len(events) - skipped,
		"skipped": skipped,
	}).Debug("Generated feed")

	for _, line := range lines {
		if _, err := io.WriteString(w, line+crlf); err != nil {
			return &GenerationError{Err: err}
		}
	}
	return nil
}

func (b *Builder) header() ([]string, error) {
	for _, f := range []struct{ name, value string }{
		{"product id", b.cfg.ProductID},
		{"timezone", b.cfg.Timezone},
	} {
		if strings.ContainsAny(f.value, "\r\n") {
			return nil, fmt.Errorf("%s %q contains a line break", f.name, f.value)
		}
	}

	lines := []string{
		begin(ics.ComponentVCalendar),
		property(ics.PropertyVersion, "2.0"),
		property(ics.PropertyProductId, b.cfg.ProductID),
		property(ics.PropertyCalscale, "GREGORIAN"),
		property(ics.PropertyMethod, string(ics.MethodPublish)),
		property(ics.PropertyXWRCalName, Escape(b.cfg.CalendarName)),
		property(ics.PropertyXWRTimezone, b.cfg.Timezone),
	}
	if b.cfg.CalendarDescription != "" {
		lines = append(lines, property(ics.PropertyXWRCalDesc, Escape(b.cfg.CalendarDescription)))
	}

	return lines, nil
}

// property formats one folded content line.
func property(name ics.Property, value string, params ...string) string {
	var sb strings.Builder
	sb.WriteString(string(name))
	for _, p := range params {
		sb.WriteByte(';')
		sb.WriteString(p)
	}
	sb.WriteByte(':')
	sb.WriteString(value)
	return Fold(sb.String())
}

func param(name ics.Parameter, value string) string {
	return string(name) + "=" + value
}

func begin(component ics.ComponentType) string {
	return "BEGIN:" + string(component)
}

func end(component ics.ComponentType) string {
	return "END:" + string(component)
}
