package normalize

import "github.com/wegman-software/osmclean/internal/element"

// derivation adds a tag computed from another tag's value, e.g. the county
// name for a GNIS county number
type derivation struct {
	pairs map[string]string // source key -> derived key
	table map[string]string
}

func countyDerivations(t *Tables) []derivation {
	return []derivation{
		{
			pairs: map[string]string{"gnis:county_id": "gnis:county_name", "gnis:County_num": "gnis:County"},
			table: t.Counties,
		},
		{
			pairs: map[string]string{"gnis:county_name": "gnis:county_id", "gnis:County": "gnis:County_num"},
			table: t.countyNumbers(),
		},
	}
}

// apply inserts each derived tag directly after its source tag. Unknown
// values and keys that are already present are left alone.
func (d derivation) apply(tags []element.Tag) []element.Tag {
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t.Key] = true
	}

	out := make([]element.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, t)
		target, ok := d.pairs[t.Key]
		if !ok || present[target] {
			continue
		}
		derived, ok := d.table[t.Value]
		if !ok {
			continue
		}
		out = append(out, element.Tag{Key: target, Value: derived})
		present[target] = true
	}
	return out
}
