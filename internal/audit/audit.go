// Package audit collects the distinct and counted values of the tag
// families the normalizer rewrites, so the lookup tables can be reviewed
package audit

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wegman-software/osmclean/internal/element"
	"github.com/wegman-software/osmclean/internal/normalize"
	"github.com/wegman-software/osmclean/internal/osmfile"
)

// Report is the result of an audit pass
type Report struct {
	Elements int64 `yaml:"elements"`
	// Tags maps every tag key to its distinct values; only filled with AllTags
	Tags map[string][]string `yaml:"tags,omitempty"`
	// StreetTypes maps an unexpected street type to the street names using it
	StreetTypes map[string][]string `yaml:"street_types"`
	// StreetDirections maps a direction abbreviation to the street names using it
	StreetDirections map[string][]string `yaml:"street_directions"`
	Cities           map[string]int      `yaml:"cities"`
	States           map[string]int      `yaml:"states"`
	CountyNames      []string            `yaml:"county_names"`
	CountyNumbers    []string            `yaml:"county_numbers"`
	Countries        map[string]int      `yaml:"countries"`
	PostalCodes      map[string]int      `yaml:"postal_codes"`
	MaxSpeeds        []string            `yaml:"max_speeds"`
	Denominations    []string            `yaml:"denominations"`
	Religions        []string            `yaml:"religions"`
}

// WriteYAML serializes the report
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode audit report: %w", err)
	}
	return enc.Close()
}

// Options controls what an Auditor collects
type Options struct {
	// AllTags records the distinct values of every tag key
	AllTags bool
}

// Auditor accumulates a Report one element at a time
type Auditor struct {
	opts    Options
	inspect *normalize.Inspector

	elements      int64
	tags          map[string]set
	streetTypes   map[string]set
	directions    map[string]set
	cities        map[string]int
	states        map[string]int
	countyNames   set
	countyNumbers set
	countries     map[string]int
	postalCodes   map[string]int
	maxSpeeds     set
	denominations set
	religions     set

	families []family
}

// family routes the values of a key family into one collector
type family struct {
	keys    map[string]bool
	collect func(value string)
}

// New creates an auditor judging street names against the given tables
func New(t *normalize.Tables, opts Options) *Auditor {
	a := &Auditor{
		opts:          opts,
		inspect:       normalize.NewInspector(t),
		tags:          make(map[string]set),
		streetTypes:   make(map[string]set),
		directions:    make(map[string]set),
		cities:        make(map[string]int),
		states:        make(map[string]int),
		countyNames:   make(set),
		countyNumbers: make(set),
		countries:     make(map[string]int),
		postalCodes:   make(map[string]int),
		maxSpeeds:     make(set),
		denominations: make(set),
		religions:     make(set),
	}

	a.families = []family{
		{keySet(normalize.StreetKeys), a.addStreet},
		{keySet(normalize.CityKeys), counter(a.cities)},
		{keySet(normalize.StateKeys), counter(a.states)},
		{keySet(normalize.CountyNameKeys), a.countyNames.add},
		{keySet(normalize.CountyNumberKeys), a.countyNumbers.add},
		{keySet(normalize.CountryKeys), counter(a.countries)},
		{keySet(normalize.PostalKeys), counter(a.postalCodes)},
		{keySet(normalize.MaxSpeedKeys), a.maxSpeeds.add},
		{keySet(normalize.DenominationKeys), a.denominations.add},
		{keySet(normalize.ReligionKeys), a.religions.add},
	}
	return a
}

// Add records the tags of one element
func (a *Auditor) Add(e *element.Element) {
	a.elements++
	for _, t := range e.Tags {
		if t.NoKey {
			continue
		}
		if a.opts.AllTags {
			addTo(a.tags, t.Key, t.Value)
		}
		for _, f := range a.families {
			if f.keys[t.Key] {
				f.collect(t.Value)
			}
		}
	}
}

func (a *Auditor) addStreet(street string) {
	if word, ok := a.inspect.StreetType(street); !ok {
		addTo(a.streetTypes, word, street)
	}
	for _, abbrev := range a.inspect.DirectionAbbreviations(street) {
		addTo(a.directions, abbrev, street)
	}
}

// Report returns the collected values with every list sorted
func (a *Auditor) Report() *Report {
	r := &Report{
		Elements:         a.elements,
		StreetTypes:      sortedGroups(a.streetTypes),
		StreetDirections: sortedGroups(a.directions),
		Cities:           a.cities,
		States:           a.states,
		CountyNames:      a.countyNames.sorted(),
		CountyNumbers:    a.countyNumbers.sorted(),
		Countries:        a.countries,
		PostalCodes:      a.postalCodes,
		MaxSpeeds:        a.maxSpeeds.sorted(),
		Denominations:    a.denominations.sorted(),
		Religions:        a.religions.sorted(),
	}
	if a.opts.AllTags {
		r.Tags = sortedGroups(a.tags)
	}
	return r
}

// Run audits every element of src
func Run(ctx context.Context, src osmfile.Source, a *Auditor) (*Report, error) {
	for src.Scan() {
		if a.elements%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a.Add(src.Element())
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return a.Report(), nil
}

type set map[string]struct{}

func (s set) add(v string) { s[v] = struct{}{} }

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func addTo(groups map[string]set, key, value string) {
	s, ok := groups[key]
	if !ok {
		s = make(set)
		groups[key] = s
	}
	s.add(value)
}

func sortedGroups(groups map[string]set) map[string][]string {
	out := make(map[string][]string, len(groups))
	for k, s := range groups {
		out[k] = s.sorted()
	}
	return out
}

func counter(m map[string]int) func(string) {
	return func(v string) { m[v]++ }
}

func keySet(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
