package server

import (
	"github.com/scoutingnl/opkomst-ical/feed"
)

// filterEvents keeps the events a subscriber asked for. Without includes every
// event is included.
func filterEvents(events []feed.Event, opts feedOptions) []feed.Event {
	var filtered []feed.Event
	for _, event := range events {
		if opts.opkomstOnly && !event.IsOpkomst {
			continue
		}
		if len(opts.includes) > 0 && !opts.includes.matches(event) {
			continue
		}
		if opts.excludes.matches(event) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}
