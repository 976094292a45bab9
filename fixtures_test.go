package server_test

import (
	"testing"

	"github.com/scoutingnl/opkomst-ical/feed"
	"github.com/scoutingnl/opkomst-ical/fixtures"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixtureEvents(t *testing.T) []feed.Event {
	t.Helper()
	var events []feed.Event
	require.NoError(t, yaml.Unmarshal(fixtures.Events, &events))
	return events
}
