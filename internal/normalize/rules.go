package normalize

import (
	"strings"
	"unicode/utf8"
)

// Rule rewrites the values of a family of tag keys
type Rule struct {
	Name    string
	keys    stringSet
	rewrite func(string) string
}

// Applies reports whether the rule handles the given tag key
func (r Rule) Applies(key string) bool {
	return r.keys.has(key)
}

// Rewrite returns the canonical form of value
func (r Rule) Rewrite(value string) string {
	return r.rewrite(value)
}

// Rule names, in application order
const (
	RuleStreetType   = "street_type"
	RuleDirection    = "street_direction"
	RuleCity         = "city"
	RuleState        = "state"
	RuleCountry      = "country"
	RulePostalCode   = "postal_code"
	RuleMaxSpeed     = "max_speed"
	RuleDenomination = "denomination"
	RuleReligion     = "religion"
)

// BuildRules returns the rewrite chain for the given tables
func BuildRules(t *Tables) []Rule {
	return []Rule{
		{Name: RuleStreetType, keys: newSet(StreetKeys), rewrite: streetTypeRewriter(t)},
		{Name: RuleDirection, keys: newSet(StreetKeys), rewrite: directionRewriter(t)},
		{Name: RuleCity, keys: newSet(CityKeys), rewrite: lookup(t.Cities)},
		{Name: RuleState, keys: newSet(StateKeys), rewrite: lookup(t.States)},
		{Name: RuleCountry, keys: newSet(CountryKeys), rewrite: lookup(t.Countries)},
		{Name: RulePostalCode, keys: newSet(PostalKeys), rewrite: truncate(t.PostalCodeLength)},
		{Name: RuleMaxSpeed, keys: newSet(MaxSpeedKeys), rewrite: speedRewriter(t.SpeedUnit)},
		{Name: RuleDenomination, keys: newSet(DenominationKeys), rewrite: lookup(t.Denominations)},
		{Name: RuleReligion, keys: newSet(ReligionKeys), rewrite: strings.ToLower},
	}
}

func lookup(table map[string]string) func(string) string {
	return func(v string) string {
		if mapped, ok := table[v]; ok {
			return mapped
		}
		return v
	}
}

// streetTypeRewriter expands an abbreviated street type. The type is the
// last word, or the second to last when the street ends in a direction.
func streetTypeRewriter(t *Tables) func(string) string {
	expected := newSet(t.StreetSuffixes)
	directions := newSet(t.DirectionSuffixes)

	return func(street string) string {
		words := strings.Split(street, " ")
		idx := streetTypeIndex(words, directions)
		if idx < 0 {
			return street
		}

		word := words[idx]
		if expected.has(word) {
			return street
		}
		if mapped, ok := t.StreetAbbreviations[word]; ok {
			words[idx] = mapped
		} else if mapped, ok := t.StreetLocal[word]; ok {
			words[idx] = mapped
		} else {
			return street
		}
		return strings.Join(words, " ")
	}
}

// streetTypeIndex returns the position of the street type word, or -1 when
// the street is a lone direction
func streetTypeIndex(words []string, directions stringSet) int {
	idx := len(words) - 1
	if directions.has(words[idx]) {
		idx--
	}
	return idx
}

// directionRewriter expands leading and trailing direction abbreviations
func directionRewriter(t *Tables) func(string) string {
	suite := newSet(t.SuiteWords)

	return func(street string) string {
		words := strings.Split(street, " ")
		if mapped, ok := t.Directions[words[0]]; ok {
			words[0] = mapped
		}
		last := len(words) - 1
		if mapped, ok := t.Directions[words[last]]; ok && last > 0 && !suite.has(words[last-1]) {
			words[last] = mapped
		}
		return strings.Join(words, " ")
	}
}

// truncate keeps the first n characters
func truncate(n int) func(string) string {
	return func(v string) string {
		if utf8.RuneCountInString(v) <= n {
			return v
		}
		return string([]rune(v)[:n])
	}
}

// speedRewriter turns "25", "25 mph" or "25 MPH" into "25 mph"
func speedRewriter(unit string) func(string) string {
	return func(v string) string {
		if v == "" {
			return v
		}
		first := strings.SplitN(v, " ", 2)[0]
		return first + " " + unit
	}
}
