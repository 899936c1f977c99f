package filter

import (
	"errors"
	"testing"

	"github.com/wegman-software/osmclean/internal/element"
)

func elem(tags ...string) *element.Element {
	e := &element.Element{Kind: element.KindNode, Attrs: []element.Attr{{Name: "id", Value: "1"}}}
	for i := 0; i+1 < len(tags); i += 2 {
		e.Tags = append(e.Tags, element.Tag{Key: tags[i], Value: tags[i+1]})
	}
	return e
}

func TestDefaultFilter(t *testing.T) {
	f := New(DefaultConfig(), nil)

	tests := []struct {
		name   string
		elem   *element.Element
		reason string
	}{
		{"no tags", elem(), ""},
		{"virginia", elem("addr:state", "VA"), ""},
		{"maryland", elem("addr:state", "MD"), ReasonState},
		{"gnis state", elem("gnis:ST_alpha", "NC"), ReasonState},
		{"us", elem("addr:country", "US"), ""},
		{"canada", elem("is_in:country", "CA"), ReasonCountry},
		{"richmond zip", elem("addr:postcode", "23220"), ""},
		{"williamsburg zip", elem("tiger:zip", "23831"), ""},
		{"dc zip", elem("postal_code", "20001"), ReasonPostcode},
		{"zip_left ignored", elem("tiger:zip_left", "20001"), ""},
		{"mixed", elem("addr:state", "VA", "addr:country", "Mexico"), ReasonCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, err := f.Check(tt.elem)
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if reason != tt.reason {
				t.Errorf("Check() = %q, want %q", reason, tt.reason)
			}
		})
	}
}

func TestEmptyConfigKeepsEverything(t *testing.T) {
	f := New(&Config{}, nil)
	ok, err := f.Include(elem("addr:state", "TX", "addr:country", "CA", "addr:postcode", "75001"))
	if err != nil || !ok {
		t.Errorf("Include() = %v, %v; want true", ok, err)
	}
}

func TestTagRules(t *testing.T) {
	cfg := &Config{Tags: &TagRules{
		RequireAny: []string{"amenity", "shop"},
		Include:    map[string][]string{"amenity": {"cafe", "library"}, "shop": nil},
		Exclude:    map[string][]string{"disused": {"*"}},
	}}
	f := New(cfg, nil)

	tests := []struct {
		elem *element.Element
		keep bool
	}{
		{elem("amenity", "cafe"), true},
		{elem("shop", "bakery"), true},
		{elem("amenity", "bench"), false},
		{elem("highway", "primary"), false},
		{elem("amenity", "library", "disused", "yes"), false},
	}
	for _, tt := range tests {
		ok, err := f.Include(tt.elem)
		if err != nil {
			t.Fatalf("Include() error: %v", err)
		}
		if ok != tt.keep {
			t.Errorf("Include(%v) = %v, want %v", tt.elem.Tags, ok, tt.keep)
		}
	}
}

type fixedPredicate struct {
	keep bool
	err  error
}

func (p fixedPredicate) Include(map[string]string) (bool, error) { return p.keep, p.err }

func TestExtraPredicate(t *testing.T) {
	reason, _ := New(&Config{}, fixedPredicate{keep: false}).Check(elem("name", "x"))
	if reason != ReasonScript {
		t.Errorf("reason = %q, want %q", reason, ReasonScript)
	}

	boom := errors.New("boom")
	_, err := New(&Config{}, fixedPredicate{err: boom}).Check(elem())
	if !errors.Is(err, boom) {
		t.Errorf("expected predicate error, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
states: [VA, MD]
postcode_prefixes: []
tags:
  exclude:
    building: []
`))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if len(cfg.States) != 2 {
		t.Errorf("states = %v", cfg.States)
	}
	if len(cfg.Countries) != 1 || cfg.Countries[0] != "US" {
		t.Errorf("countries default lost: %v", cfg.Countries)
	}
	if len(cfg.PostcodePrefixes) != 0 {
		t.Errorf("postcode prefixes should be disabled, got %v", cfg.PostcodePrefixes)
	}
	if cfg.Tags == nil || len(cfg.Tags.Exclude) != 1 {
		t.Errorf("tag rules not parsed: %+v", cfg.Tags)
	}
}
