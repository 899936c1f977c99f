// Package filter decides which elements are kept in the cleaned output
package filter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wegman-software/osmclean/internal/element"
	"github.com/wegman-software/osmclean/internal/normalize"
)

// PostcodeKeys are the tags whose values must carry an allowed prefix
var PostcodeKeys = []string{"addr:postcode", "postal_code", "tiger:zip"}

// Reasons an element is dropped
const (
	ReasonState    = "state"
	ReasonCountry  = "country"
	ReasonPostcode = "postcode"
	ReasonTags     = "tags"
	ReasonScript   = "script"
)

// Config holds the inclusion criteria. An empty list disables that check.
type Config struct {
	States           []string  `yaml:"states"`
	Countries        []string  `yaml:"countries"`
	PostcodePrefixes []string  `yaml:"postcode_prefixes"`
	Tags             *TagRules `yaml:"tags,omitempty"`
}

// TagRules are generic include/exclude rules on tag keys and values
type TagRules struct {
	// Include specifies which tag keys/values to include
	// If empty, all tags are included (no filtering)
	Include map[string][]string `yaml:"include,omitempty"`
	// Exclude specifies which tag keys/values to exclude
	// Applied after include rules
	Exclude map[string][]string `yaml:"exclude,omitempty"`
	// RequireAny specifies that at least one of these tags must be present
	RequireAny []string `yaml:"require_any,omitempty"`
}

// DefaultConfig keeps Virginia, US, Richmond-area postcodes
func DefaultConfig() *Config {
	return &Config{
		States:           []string{"VA"},
		Countries:        []string{"US"},
		PostcodePrefixes: []string{"230", "231", "232", "238"},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse filter config: %w", err)
	}
	return cfg, nil
}

// Predicate is an additional inclusion check, e.g. a user script
type Predicate interface {
	Include(tags map[string]string) (bool, error)
}

// Filter evaluates the inclusion criteria against an element's tags
type Filter struct {
	states    map[string]bool
	countries map[string]bool
	prefixes  []string
	tags      *TagRules
	extra     Predicate
}

// New creates a filter. extra may be nil.
func New(cfg *Config, extra Predicate) *Filter {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Filter{
		states:    toSet(cfg.States),
		countries: toSet(cfg.Countries),
		prefixes:  cfg.PostcodePrefixes,
		tags:      cfg.Tags,
		extra:     extra,
	}
}

// Check returns "" if the element is kept, otherwise the reason it is dropped
func (f *Filter) Check(e *element.Element) (string, error) {
	for _, t := range e.Tags {
		switch {
		case len(f.states) > 0 && contains(normalize.StateKeys, t.Key) && !f.states[t.Value]:
			return ReasonState, nil
		case len(f.countries) > 0 && contains(normalize.CountryKeys, t.Key) && !f.countries[t.Value]:
			return ReasonCountry, nil
		case len(f.prefixes) > 0 && contains(PostcodeKeys, t.Key) && !hasAnyPrefix(t.Value, f.prefixes):
			return ReasonPostcode, nil
		}
	}

	if f.tags == nil && f.extra == nil {
		return "", nil
	}

	tags := e.TagMap()
	if f.tags != nil && !f.tags.Match(tags) {
		return ReasonTags, nil
	}
	if f.extra != nil {
		ok, err := f.extra.Include(tags)
		if err != nil {
			return "", fmt.Errorf("include check for %s %s: %w", e.Kind, e.ID(), err)
		}
		if !ok {
			return ReasonScript, nil
		}
	}
	return "", nil
}

// Include reports whether the element is kept
func (f *Filter) Include(e *element.Element) (bool, error) {
	reason, err := f.Check(e)
	return reason == "" && err == nil, err
}

// Match checks if the given tags match the rules
func (r *TagRules) Match(tags map[string]string) bool {
	if len(r.RequireAny) > 0 {
		found := false
		for _, key := range r.RequireAny {
			if _, ok := tags[key]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(r.Include) > 0 {
		matched := false
		for key, values := range r.Include {
			if v, ok := tags[key]; ok && valueMatches(values, v) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for key, values := range r.Exclude {
		if v, ok := tags[key]; ok && valueMatches(values, v) {
			return false
		}
	}
	return true
}

// valueMatches treats an empty list and "*" as wildcards
func valueMatches(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, want := range values {
		if want == v || want == "*" {
			return true
		}
	}
	return false
}

func hasAnyPrefix(v string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}
