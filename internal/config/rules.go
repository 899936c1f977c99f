package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/wegman-software/osmclean/internal/filter"
	"github.com/wegman-software/osmclean/internal/normalize"
)

// Rules bundles the normalizer tables and the inclusion filter settings
// read from one YAML document:
//
//	tables:
//	  cities: {"richmond": "Richmond"}
//	filter:
//	  states: [VA]
type Rules struct {
	Tables *normalize.Tables `yaml:"tables"`
	Filter *filter.Config    `yaml:"filter"`
}

// DefaultRules returns the built-in tables and filter
func DefaultRules() *Rules {
	return &Rules{
		Tables: normalize.DefaultTables(),
		Filter: filter.DefaultConfig(),
	}
}

// ParseRules decodes YAML on top of DefaultRules
func ParseRules(data []byte) (*Rules, error) {
	r := DefaultRules()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if r.Tables == nil {
		r.Tables = normalize.DefaultTables()
	}
	if r.Filter == nil {
		r.Filter = filter.DefaultConfig()
	}
	if err := r.Tables.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Fetch reads a local path or any URL supported by afs
func Fetch(ctx context.Context, location string) ([]byte, error) {
	data, err := afs.New().DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// LoadRules fetches and parses a rules file. An empty location yields the defaults.
func LoadRules(ctx context.Context, location string) (*Rules, error) {
	if location == "" {
		return DefaultRules(), nil
	}
	data, err := Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}
