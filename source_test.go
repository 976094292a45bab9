package server_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	server "github.com/scoutingnl/opkomst-ical"
	"github.com/scoutingnl/opkomst-ical/feed"
	"github.com/scoutingnl/opkomst-ical/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFileSource(t *testing.T) {
	for name, test := range map[string]struct {
		input    []byte
		expected []feed.Event
	}{
		"fixture": {
			input:    fixtures.Events,
			expected: fixtureEvents(t),
		},
		"json": {
			input: []byte(`[{"id": "1", "start": "2024-06-01 14:00", "title": "Bosspel"}]`),
			expected: []feed.Event{
				{ID: "1", Start: feed.Text("2024-06-01 14:00"), Title: "Bosspel"},
			},
		},
		"skips_bad_record": {
			input: []byte("- id: \"1\"\n  start: [2024]\n- id: \"2\"\n  start: 2024-03-10\n  allDay: true\n"),
			expected: []feed.Event{
				{ID: "2", Start: feed.Text("2024-03-10"), AllDay: true},
			},
		},
		"empty": {
			input:    []byte{},
			expected: []feed.Event{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			actual, err := server.FileSource{Path: writeEvents(t, test.input)}.Events(context.Background())
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestFileSourceErrors(t *testing.T) {
	for name, test := range map[string]struct {
		path          func(*testing.T) string
		expectedError string
	}{
		"missing": {
			path:          func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			expectedError: "error reading events: ",
		},
		"not_a_list": {
			path:          func(t *testing.T) string { return writeEvents(t, []byte("id: 1\n")) },
			expectedError: "error decoding events: ",
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := server.FileSource{Path: test.path(t)}.Events(context.Background())
			require.ErrorContains(t, err, test.expectedError)
		})
	}
}
