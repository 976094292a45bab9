package feed

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// ruleEpoch is the year the VTIMEZONE rules are stated from. Any year before
// the first event works, clients only use it to anchor the RRULE.
const ruleEpoch = 1970

// ruleCheckYear is the year the configured zone is held against the rules.
const ruleCheckYear = 2024

const (
	daylightHour = 2
	standardHour = 3
)

var (
	daylightRule = rrule.ROption{
		Freq:      rrule.YEARLY,
		Bymonth:   []int{3},
		Byweekday: []rrule.Weekday{rrule.SU.Nth(-1)},
	}
	standardRule = rrule.ROption{
		Freq:      rrule.YEARLY,
		Bymonth:   []int{10},
		Byweekday: []rrule.Weekday{rrule.SU.Nth(-1)},
	}
)

// timezoneLines returns the static VTIMEZONE block for cfg.Timezone. Clocks go
// forward at 02:00 standard time and back at 03:00 daylight time.
func timezoneLines(cfg Config) ([]string, error) {
	daylight, err := observanceLines(ics.ComponentDaylight, daylightRule, daylightHour,
		cfg.DaylightName, cfg.StandardOffset, cfg.DaylightOffset)
	if err != nil {
		return nil, err
	}
	standard, err := observanceLines(ics.ComponentStandard, standardRule, standardHour,
		cfg.StandardName, cfg.DaylightOffset, cfg.StandardOffset)
	if err != nil {
		return nil, err
	}

	lines := []string{
		begin(ics.ComponentVTimezone),
		property(ics.PropertyTzid, cfg.Timezone),
	}
	lines = append(lines, daylight...)
	lines = append(lines, standard...)
	return append(lines, end(ics.ComponentVTimezone)), nil
}

func observanceLines(component ics.ComponentType, rule rrule.ROption, hour int, name, from, to string) ([]string, error) {
	first, err := firstOccurrence(rule, ruleEpoch, hour, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("error building %s rule: %w", component, err)
	}

	return []string{
		begin(component),
		property(ics.PropertyTzoffsetfrom, from),
		property(ics.PropertyTzoffsetto, to),
		property(ics.PropertyTzname, name),
		property(ics.PropertyDtstart, first.Format(localLayout)),
		property(ics.PropertyRrule, rule.RRuleString()),
		end(component),
	}, nil
}

// firstOccurrence returns the first time rule fires in year, at hour o'clock
// wall time in loc.
func firstOccurrence(rule rrule.ROption, year, hour int, loc *time.Location) (time.Time, error) {
	anchored := rule
	anchored.Dtstart = time.Date(year, time.January, 1, hour, 0, 0, 0, loc)
	anchored.Count = 1
	r, err := rrule.NewRRule(anchored)
	if err != nil {
		return time.Time{}, err
	}
	first := r.All()
	if len(first) != 1 {
		return time.Time{}, fmt.Errorf("no occurrence in %d", year)
	}
	return first[0], nil
}

// checkRules reports whether loc changes its offset where the VTIMEZONE block
// says it does, so that the block is not published under the wrong TZID.
func checkRules(loc *time.Location, cfg Config) error {
	standard, err := parseZone(cfg.StandardOffset)
	if err != nil {
		return fmt.Errorf("bad standard_offset %q: %w", cfg.StandardOffset, err)
	}
	daylight, err := parseZone(cfg.DaylightOffset)
	if err != nil {
		return fmt.Errorf("bad daylight_offset %q: %w", cfg.DaylightOffset, err)
	}

	for _, o := range []struct {
		name     string
		rule     rrule.ROption
		hour     int
		from, to *time.Location
	}{
		{"daylight", daylightRule, daylightHour, standard, daylight},
		{"standard", standardRule, standardHour, daylight, standard},
	} {
		change, err := firstOccurrence(o.rule, ruleCheckYear, o.hour, o.from)
		if err != nil {
			return fmt.Errorf("error building %s rule: %w", o.name, err)
		}
		if offset(change.Add(-time.Second), loc) != offset(change, o.from) ||
			offset(change, loc) != offset(change, o.to) {
			return fmt.Errorf("timezone %s does not start %s time at %s",
				cfg.Timezone, o.name, change.Format(time.RFC3339))
		}
	}
	return nil
}

func offset(t time.Time, loc *time.Location) int {
	_, seconds := t.In(loc).Zone()
	return seconds
}
