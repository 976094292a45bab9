package server

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scoutingnl/opkomst-ical/feed"
)

// eventFields are the event fields subscribers can filter on.
var eventFields = map[string]func(feed.Event) string{
	"title":         func(e feed.Event) string { return e.Title },
	"location":      func(e feed.Event) string { return e.Location },
	"description":   func(e feed.Event) string { return e.Description },
	"opkomstmakers": func(e feed.Event) string { return e.Opkomstmakers },
}

type matchGroup []matcher

func (m matchGroup) matches(event feed.Event) bool {
	for _, matcher := range m {
		if matcher.expression.MatchString(matcher.field(event)) {
			return true
		}
	}
	return false
}

type matcher struct {
	field      func(feed.Event) string
	expression *regexp.Regexp
}

func parseMatchers(m []string) (matchGroup, error) {
	matches := make(matchGroup, 0, len(m))
	for i, matchOpt := range m {
		parts := strings.SplitN(matchOpt, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid match parameter %q at index %d, should be <field>=<regexp>", matchOpt, i)
		}
		field, ok := eventFields[strings.ToLower(parts[0])]
		if !ok {
			return nil, fmt.Errorf("unknown field %q at index %d, should be title, location, description, or opkomstmakers", parts[0], i)
		}
		expression, err := regexp.Compile(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad regexp in match parameter %s at index %d: %w", matchOpt, i, err)
		}
		matches = append(matches, matcher{
			field:      field,
			expression: expression,
		})
	}
	return matches, nil
}
