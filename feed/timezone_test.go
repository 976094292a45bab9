package feed_test

import (
	"strings"
	"testing"
	"time"

	"github.com/scoutingnl/opkomst-ical/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

// TestTimezoneRules checks the rules written in the VTIMEZONE block against
// the tz database for the years the feed is used in.
func TestTimezoneRules(t *testing.T) {
	for name, test := range map[string]struct {
		month          time.Month
		before, after  string
		offsetAfterHrs int
	}{
		"daylight": {time.March, "CET", "CEST", 2},
		"standard": {time.October, "CEST", "CET", 1},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := rrule.NewRRule(rrule.ROption{
				Freq:      rrule.YEARLY,
				Bymonth:   []int{int(test.month)},
				Byweekday: []rrule.Weekday{rrule.SU.Nth(-1)},
				Dtstart:   time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC),
				Until:     time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)

			transitions := r.All()
			require.Len(t, transitions, 7)
			for _, transition := range transitions {
				// EU clocks change at 01:00 UTC.
				beforeName, _ := transition.Add(-time.Second).In(amsterdam).Zone()
				afterName, afterOffset := transition.In(amsterdam).Zone()
				assert.Equal(t, test.before, beforeName, transition)
				assert.Equal(t, test.after, afterName, transition)
				assert.Equal(t, test.offsetAfterHrs*3600, afterOffset, transition)
			}
		})
	}
}

func TestTimezoneBlock(t *testing.T) {
	t.Parallel()

	actual, err := newBuilder(t).Build(nil)
	require.NoError(t, err)

	start := strings.Index(actual, "BEGIN:VTIMEZONE")
	end := strings.Index(actual, "END:VTIMEZONE")
	require.True(t, start >= 0 && end > start)

	assert.Equal(t, strings.Join([]string{
		"BEGIN:VTIMEZONE",
		"TZID:Europe/Amsterdam",
		"BEGIN:DAYLIGHT",
		"TZOFFSETFROM:+0100",
		"TZOFFSETTO:+0200",
		"TZNAME:CEST",
		"DTSTART:19700329T020000",
		"RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU",
		"END:DAYLIGHT",
		"BEGIN:STANDARD",
		"TZOFFSETFROM:+0200",
		"TZOFFSETTO:+0100",
		"TZNAME:CET",
		"DTSTART:19701025T030000",
		"RRULE:FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU",
		"END:STANDARD",
		"",
	}, "\r\n"), actual[start:end])
}

func TestTimezoneNames(t *testing.T) {
	t.Parallel()

	cfg := feed.DefaultConfig()
	cfg.StandardName = "MEZ"
	cfg.DaylightName = "MESZ"
	b, err := feed.New(cfg)
	require.NoError(t, err)

	actual, err := b.Build(nil)
	require.NoError(t, err)
	assert.Contains(t, actual, "\r\nTZNAME:MESZ\r\n")
	assert.Contains(t, actual, "\r\nTZNAME:MEZ\r\n")
}
