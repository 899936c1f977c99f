package normalize

import "strings"

// Inspector classifies raw values with the same tables the rules use
type Inspector struct {
	expected   stringSet
	directions stringSet
	suite      stringSet
	abbrevs    map[string]string
}

// NewInspector creates an inspector over t
func NewInspector(t *Tables) *Inspector {
	return &Inspector{
		expected:   newSet(t.StreetSuffixes),
		directions: newSet(t.DirectionSuffixes),
		suite:      newSet(t.SuiteWords),
		abbrevs:    t.Directions,
	}
}

// StreetType returns the street type word of a street name and whether it
// is an accepted suffix
func (i *Inspector) StreetType(street string) (string, bool) {
	words := strings.Split(street, " ")
	idx := streetTypeIndex(words, i.directions)
	if idx < 0 {
		return "", true
	}
	return words[idx], i.expected.has(words[idx])
}

// DirectionAbbreviations returns the abbreviated directions found at the start
// and end of a street name. A trailing letter after a suite word is skipped.
func (i *Inspector) DirectionAbbreviations(street string) []string {
	words := strings.Split(street, " ")
	var found []string
	if _, ok := i.abbrevs[words[0]]; ok {
		found = append(found, words[0])
	}
	last := len(words) - 1
	if _, ok := i.abbrevs[words[last]]; ok && last > 0 && !i.suite.has(words[last-1]) {
		found = append(found, words[last])
	}
	return found
}
