package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	ics "github.com/arran4/golang-ical"
)

// creditLabel introduces the organisers of an opkomst in its description.
const creditLabel = "Opkomstmakers: "

// Result is the outcome of rendering one event: either the lines of its
// VEVENT block or the reason it has none.
type Result struct {
	EventID string
	Lines   []string
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Render renders one event as a VEVENT block.
func (b *Builder) Render(e Event) Result {
	lines, err := b.render(e)
	if err != nil {
		return Result{EventID: e.ID, Err: err}
	}
	return Result{EventID: e.ID, Lines: lines}
}

func (b *Builder) render(e Event) ([]string, error) {
	if e.ID == "" {
		return nil, errNoID
	}
	if strings.ContainsAny(e.ID, "\r\n") {
		return nil, errBadID
	}
	if e.Start.IsZero() {
		return nil, errNoStart
	}
	if e.Sequence != nil && *e.Sequence < 0 {
		return nil, fmt.Errorf("negative sequence %d", *e.Sequence)
	}

	dtstart, dtend, err := b.span(e)
	if err != nil {
		return nil, err
	}

	var timeParam string
	if e.AllDay {
		timeParam = param(ics.ParameterValue, string(ics.ValueDataTypeDate))
	} else {
		timeParam = param(ics.ParameterTzid, b.cfg.Timezone)
	}

	stamp, err := FormatUTC(b.now())
	if err != nil {
		return nil, fmt.Errorf("stamp: %w", err)
	}

	lines := []string{
		begin(ics.ComponentVEvent),
		property(ics.PropertyUid, e.ID+"@"+b.cfg.UIDDomain),
		property(ics.PropertyDtstart, dtstart, timeParam),
		property(ics.PropertyDtend, dtend, timeParam),
	}
	if e.Title != "" {
		lines = append(lines, property(ics.PropertySummary, Escape(e.Title)))
	}
	if e.Location != "" {
		lines = append(lines, property(ics.PropertyLocation, Escape(e.Location)))
	}
	if description := describe(e); description != "" {
		lines = append(lines, property(ics.PropertyDescription, Escape(description)))
	}

	var sequence int
	if e.Sequence != nil {
		sequence = *e.Sequence
	}

	return append(lines,
		property(ics.PropertySequence, strconv.Itoa(sequence)),
		property(ics.PropertyDtstamp, stamp),
		end(ics.ComponentVEvent),
	), nil
}

// span returns the formatted DTSTART and DTEND values. An event without an
// end lasts one day when it is all-day, and no time at all otherwise.
func (b *Builder) span(e Event) (start, stop string, err error) {
	if e.AllDay {
		start, err = b.format.Date(e.Start)
	} else {
		start, err = b.format.Local(e.Start)
	}
	if err != nil {
		return "", "", fmt.Errorf("start: %w", err)
	}

	switch {
	case !e.End.IsZero() && e.AllDay:
		stop, err = b.format.Date(e.End)
	case !e.End.IsZero():
		stop, err = b.format.Local(e.End)
	case e.AllDay:
		stop, err = b.format.NextDate(e.Start)
	default:
		stop = start
	}
	if err != nil {
		return "", "", fmt.Errorf("end: %w", err)
	}

	return start, stop, nil
}

// describe returns the unescaped description of e, crediting the organisers
// of an opkomst on a paragraph of their own.
func describe(e Event) string {
	if !e.IsOpkomst || e.Opkomstmakers == "" {
		return e.Description
	}
	credit := creditLabel + e.Opkomstmakers
	if e.Description == "" {
		return credit
	}
	return e.Description + "\n\n" + credit
}

// IsFormatError reports whether err was caused by a date that could not be
// formatted.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}
