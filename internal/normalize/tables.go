package normalize

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tables holds the lookup data driving the rewrite rules.
//
// When decoded from YAML on top of DefaultTables, maps are extended
// key by key and lists are replaced.
type Tables struct {
	// StreetSuffixes are street types accepted without rewriting
	StreetSuffixes []string `yaml:"street_suffixes"`
	// StreetAbbreviations maps an abbreviation to its canonical street type
	StreetAbbreviations map[string]string `yaml:"street_abbreviations"`
	// StreetLocal is consulted after StreetAbbreviations
	StreetLocal       map[string]string `yaml:"street_local"`
	DirectionSuffixes []string          `yaml:"direction_suffixes"`
	Directions        map[string]string `yaml:"directions"`
	SuiteWords        []string          `yaml:"suite_words"`

	Cities        map[string]string `yaml:"cities"`
	States        map[string]string `yaml:"states"`
	Countries     map[string]string `yaml:"countries"`
	Denominations map[string]string `yaml:"denominations"`
	// Counties maps a GNIS county number to its name
	Counties map[string]string `yaml:"counties"`

	PostalCodeLength int    `yaml:"postal_code_length"`
	SpeedUnit        string `yaml:"speed_unit"`
}

// DefaultTables returns a fresh copy of the built-in tables
func DefaultTables() *Tables {
	abbrevs := make(map[string]string)
	for canonical, forms := range suffixAbbreviations {
		for _, f := range forms {
			abbrevs[f] = canonical
		}
	}

	suffixes := make([]string, 0, len(uspsSuffixes)+len(localSuffixes))
	suffixes = append(suffixes, uspsSuffixes...)
	suffixes = append(suffixes, localSuffixes...)

	return &Tables{
		StreetSuffixes:      suffixes,
		StreetAbbreviations: abbrevs,
		StreetLocal:         copyMap(localAbbreviations),
		DirectionSuffixes:   append([]string(nil), directionSuffixes...),
		Directions:          copyMap(directionAbbreviations),
		SuiteWords:          append([]string(nil), suiteWords...),
		Cities:              copyMap(cityNames),
		States:              copyMap(stateNames),
		Countries:           copyMap(countryNames),
		Denominations:       copyMap(denominationNames),
		Counties:            copyMap(countyNames),
		PostalCodeLength:    5,
		SpeedUnit:           "mph",
	}
}

// ParseTables decodes YAML overrides on top of the default tables
func ParseTables(data []byte) (*Tables, error) {
	t := DefaultTables()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse rule tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the scalar settings
func (t *Tables) Validate() error {
	if t.PostalCodeLength < 1 {
		return fmt.Errorf("postal_code_length must be at least 1, got %d", t.PostalCodeLength)
	}
	if t.SpeedUnit == "" {
		return fmt.Errorf("speed_unit must not be empty")
	}
	return nil
}

// countyNumbers inverts Counties
func (t *Tables) countyNumbers() map[string]string {
	m := make(map[string]string, len(t.Counties))
	for num, name := range t.Counties {
		m[name] = num
	}
	return m
}

func copyMap(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

type stringSet map[string]struct{}

func newSet(items ...[]string) stringSet {
	s := make(stringSet)
	for _, list := range items {
		for _, item := range list {
			s[item] = struct{}{}
		}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}
