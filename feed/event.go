package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Event is a single scheduled activity as stored by the data layer. Only ID
// and Start are required.
type Event struct {
	ID            string `yaml:"id" json:"id"`
	Start         When   `yaml:"start" json:"start"`
	End           When   `yaml:"end,omitempty" json:"end,omitempty"`
	AllDay        bool   `yaml:"allDay,omitempty" json:"allDay,omitempty"`
	Title         string `yaml:"title,omitempty" json:"title,omitempty"`
	Location      string `yaml:"location,omitempty" json:"location,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	IsOpkomst     bool   `yaml:"isOpkomst,omitempty" json:"isOpkomst,omitempty"`
	Opkomstmakers string `yaml:"opkomstmakers,omitempty" json:"opkomstmakers,omitempty"`
	// Sequence is the revision of the event, nil means 0.
	Sequence *int `yaml:"sequence,omitempty" json:"sequence,omitempty"`
}

// When is a date or a date-time. It holds either the text the data layer
// stored, which may or may not carry a UTC offset, or an absolute instant.
type When struct {
	text string
	t    time.Time
}

// Text returns a When for a stored date or date-time string such as
// "2024-03-10", "2024-06-01 14:00" or "2024-06-01T12:00:00Z".
func Text(s string) When {
	return When{text: s}
}

// At returns a When for an absolute instant.
func At(t time.Time) When {
	return When{t: t}
}

func (w When) IsZero() bool {
	return w.text == "" && w.t.IsZero()
}

func (w When) String() string {
	if w.text != "" {
		return w.text
	}
	if w.t.IsZero() {
		return ""
	}
	return w.t.Format(time.RFC3339Nano)
}

func (w *When) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*w = When{}
		return nil
	}
	*w = Text(value.Value)
	return nil
}

func (w When) MarshalYAML() (any, error) {
	return w.String(), nil
}

func (w *When) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == nil {
		*w = When{}
		return nil
	}
	*w = Text(*s)
	return nil
}

func (w When) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}
