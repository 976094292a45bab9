package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	utcLayout   = "20060102T150405Z"
	localLayout = "20060102T150405"
	dateLayout  = "20060102"
)

// wallLayouts are the stored forms of a date or date-time once any zone
// designator has been split off. Fractional seconds are accepted by
// time.Parse after the seconds field without being in the layout.
var wallLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	errNoValue    = errors.New("no date")
	errBadZone    = errors.New("bad zone designator")
	errBadLayout  = errors.New("unrecognised date layout")
	errZeroMoment = errors.New("zero time")
)

// FormatError reports a value that does not resolve to a valid point in time.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format %q: %s", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FormatUTC renders t as a UTC date-time, eg: 20240911T230000Z.
func FormatUTC(t time.Time) (string, error) {
	if t.IsZero() {
		return "", &FormatError{Err: errZeroMoment}
	}
	return t.UTC().Format(utcLayout), nil
}

// Formatter renders event dates for a single fixed timezone.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	return &Formatter{loc: loc}
}

// Local renders w as wall-clock time in the formatter's timezone, eg:
// 20240601T140000. Text without a zone designator is already wall-clock time
// in that timezone and is not shifted. Text with a designator, and instants,
// are converted.
func (f *Formatter) Local(w When) (string, error) {
	t, err := f.resolve(w, f.loc)
	if err != nil {
		return "", err
	}
	return t.In(f.loc).Format(localLayout), nil
}

// Date renders the calendar date of w, eg: 20240310.
//
// The date is read in the zone the value itself implies: as written for text,
// and in the instant's own location for instants. It is never read in UTC, so
// a date stored as local midnight does not slip to the previous day.
//
// TODO: read instants in the formatter's timezone, like Local does, once the
// data layer is confirmed to store all-day instants there.
func (f *Formatter) Date(w When) (string, error) {
	t, err := f.resolve(w, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

// NextDate renders the calendar date after that of w. It gives the exclusive
// end of an all-day event that has no end of its own.
func (f *Formatter) NextDate(w When) (string, error) {
	t, err := f.resolve(w, time.UTC)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(dateLayout), nil
}

// resolve turns w into a time. Text without a zone designator is read as
// wall-clock time in loc.
func (f *Formatter) resolve(w When, loc *time.Location) (time.Time, error) {
	if !w.t.IsZero() {
		return w.t, nil
	}

	s := strings.TrimSpace(w.text)
	if s == "" {
		return time.Time{}, &FormatError{Value: w.text, Err: errNoValue}
	}

	wall, zone := splitZone(s)
	if zone != "" {
		var err error
		if loc, err = parseZone(zone); err != nil {
			return time.Time{}, &FormatError{Value: w.text, Err: err}
		}
	}

	for _, layout := range wallLayouts {
		t, err := time.ParseInLocation(layout, wall, loc)
		if err == nil {
			return t, nil
		}
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) && parseErr.Message != "" {
			// The layout matched but a field is out of range, eg: February 30.
			return time.Time{}, &FormatError{Value: w.text, Err: err}
		}
	}

	return time.Time{}, &FormatError{Value: w.text, Err: errBadLayout}
}

// splitZone separates a trailing zone designator (Z or a numeric offset) from
// the time of day. Date-only values never carry one.
func splitZone(s string) (wall, zone string) {
	i := strings.IndexAny(s, "T ")
	if i < 0 {
		return s, ""
	}
	clock := s[i+1:]

	if strings.HasSuffix(clock, "Z") || strings.HasSuffix(clock, "z") {
		return strings.TrimSpace(s[:len(s)-1]), "Z"
	}
	if j := strings.LastIndexAny(clock, "+-"); j >= 0 {
		return strings.TrimSpace(s[:i+1+j]), clock[j:]
	}
	return s, ""
}

// parseZone parses Z, ±hh, ±hhmm or ±hh:mm.
func parseZone(zone string) (*time.Location, error) {
	if zone == "Z" {
		return time.UTC, nil
	}

	sign := 1
	switch zone[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, errBadZone
	}

	digits := strings.Replace(zone[1:], ":", "", 1)
	if len(digits) != 2 && len(digits) != 4 {
		return nil, errBadZone
	}
	hours, err := strconv.Atoi(digits[:2])
	if err != nil || hours > 23 {
		return nil, errBadZone
	}
	minutes := 0
	if len(digits) == 4 {
		if minutes, err = strconv.Atoi(digits[2:]); err != nil || minutes > 59 {
			return nil, errBadZone
		}
	}

	return time.FixedZone(zone, sign*(hours*3600+minutes*60)), nil
}
