package fixtures

import (
	_ "embed"
)

var (
	//go:embed events.yaml
	Events []byte
	// EventsFeed is the feed for Events with the clock at
	// 2024-09-11T23:00:00Z. Event 104 is left out.
	//go:embed events.ics
	EventsFeed []byte
	//go:embed empty.ics
	EmptyFeed []byte
)
