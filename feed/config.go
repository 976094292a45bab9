package feed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the fixed metadata written into every feed.
type Config struct {
	// Timezone is the IANA name of the one timezone timed events are written
	// in, eg: "Europe/Amsterdam". It must change to StandardOffset and
	// DaylightOffset when the VTIMEZONE block says it does.
	Timezone string `yaml:"timezone"`
	// UIDDomain is appended to event IDs to form globally unique UIDs.
	UIDDomain string `yaml:"uid_domain"`
	// ProductID is written as PRODID.
	ProductID           string `yaml:"product_id"`
	CalendarName        string `yaml:"calendar_name"`
	CalendarDescription string `yaml:"calendar_description"`

	// The VTIMEZONE block. Transitions follow the EU rules: daylight time
	// from 02:00 on the last Sunday of March, standard time from 03:00 on the
	// last Sunday of October.
	StandardName   string `yaml:"standard_name"`
	DaylightName   string `yaml:"daylight_name"`
	StandardOffset string `yaml:"standard_offset"`
	DaylightOffset string `yaml:"daylight_offset"`
}

func DefaultConfig() Config {
	return Config{
		Timezone:       "Europe/Amsterdam",
		UIDDomain:      "opkomsten.scouting.nl",
		ProductID:      "-//Scouting//Opkomsten//NL",
		CalendarName:   "Opkomsten",
		StandardName:   "CET",
		DaylightName:   "CEST",
		StandardOffset: "+0100",
		DaylightOffset: "+0200",
	}
}

// Normalize fills zero values from DefaultConfig.
func (c *Config) Normalize() {
	d := DefaultConfig()
	setDefault(&c.Timezone, d.Timezone)
	setDefault(&c.UIDDomain, d.UIDDomain)
	setDefault(&c.ProductID, d.ProductID)
	setDefault(&c.CalendarName, d.CalendarName)
	setDefault(&c.StandardName, d.StandardName)
	setDefault(&c.DaylightName, d.DaylightName)
	setDefault(&c.StandardOffset, d.StandardOffset)
	setDefault(&c.DaylightOffset, d.DaylightOffset)
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

var utcOffset = regexp.MustCompile(`^[+-]\d{4}$`)

// validate checks the fields written into every event or the VTIMEZONE
// block. ProductID and Timezone are checked when the header is written.
func (c Config) validate() error {
	for _, f := range []struct{ name, value string }{
		{"uid_domain", c.UIDDomain},
		{"standard_name", c.StandardName},
		{"daylight_name", c.DaylightName},
	} {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%s %q contains a line break", f.name, f.value)
		}
	}

	for _, f := range []struct{ name, value string }{
		{"standard_offset", c.StandardOffset},
		{"daylight_offset", c.DaylightOffset},
	} {
		if !utcOffset.MatchString(f.value) {
			return fmt.Errorf("bad %s %q, should be like +0100", f.name, f.value)
		}
	}
	return nil
}

// LoadConfig reads a YAML config file. A missing file gives the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}
