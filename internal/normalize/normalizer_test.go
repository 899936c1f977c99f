package normalize

import (
	"errors"
	"testing"

	"github.com/wegman-software/osmclean/internal/element"
)

func newNormalizer(t *testing.T, opts ...Option) *Normalizer {
	t.Helper()
	n, err := New(DefaultTables(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return n
}

func TestRewrite(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		key   string
		input string
		want  string
	}{
		// street types
		{"addr:street", "Broad St", "Broad Street"},
		{"addr:street", "Broad St.", "Broad Street"},
		{"addr:street", "Patterson Ave", "Patterson Avenue"},
		{"addr:street", "Forest Hill Ave W", "Forest Hill Avenue West"},
		{"addr:street", "Main Street", "Main Street"},
		{"addr:street", "Cary St Rd", "Cary St Road"},
		{"addr:street", "I-95", "Interstate 95"},
		{"addr:street", "Chase", "Chase"},
		{"addr:street", "Unknownsuffix", "Unknownsuffix"},
		{"addr:street", "North", "North"},
		// directions
		{"addr:street", "N Lombardy Street", "North Lombardy Street"},
		{"addr:street", "E. Main Street", "East Main Street"},
		{"addr:street", "Parham Road Suite E", "Parham Road Suite E"},
		{"addr:street", "Parham Road Ste. W", "Parham Road Ste. W"},
		{"addr:street", "W", "West"},
		// lookups
		{"addr:city", "richmond", "Richmond"},
		{"addr:city", "Midolthian", "Midlothian"},
		{"addr:city", "Ashland", "Ashland"},
		{"addr:state", "Virginia", "VA"},
		{"gnis:ST_alpha", "va", "VA"},
		{"is_in:state_code", "VA", "VA"},
		{"addr:country", "United States of America", "US"},
		{"is_in:country", "USA", "US"},
		{"denomination", "united_methodist", "methodist"},
		{"denomination", "None", "none"},
		{"religion", "Christian", "christian"},
		// postal codes
		{"addr:postcode", "23220-1234", "23220"},
		{"tiger:zip_left_3", "232261234", "23226"},
		{"addr:postcode", "2322", "2322"},
		// speeds
		{"maxspeed", "35", "35 mph"},
		{"maxspeed", "35 mph", "35 mph"},
		{"maxspeed:advisory", "15 MPH", "15 mph"},
		{"maxspeed", "", ""},
		// untouched keys
		{"name", "St", "St"},
		{"religion:note", "Christian", "Christian"},
	}

	for _, tt := range tests {
		got, err := n.Rewrite(tt.key, tt.input)
		if err != nil {
			t.Fatalf("Rewrite(%q, %q) error: %v", tt.key, tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Rewrite(%q, %q) = %q, want %q", tt.key, tt.input, got, tt.want)
		}
	}
}

func TestRewriteStreetCacheKeepsCounting(t *testing.T) {
	counts := make(map[string]int)
	n := newNormalizer(t, WithObserver(func(rule string) { counts[rule]++ }))

	for i := 0; i < 3; i++ {
		got, _ := n.Rewrite("addr:street", "N Boulevard Ave")
		if got != "North Boulevard Avenue" {
			t.Fatalf("got %q", got)
		}
	}
	if counts[RuleStreetType] != 3 || counts[RuleDirection] != 3 {
		t.Errorf("counts = %v, want 3 street_type and 3 street_direction", counts)
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	n := newNormalizer(t)
	in := &element.Element{
		Kind:  element.KindNode,
		Attrs: []element.Attr{{Name: "id", Value: "1"}},
		Tags:  []element.Tag{{Key: "addr:city", Value: "richmond"}},
	}

	out, err := n.Normalize(in)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if in.Tags[0].Value != "richmond" {
		t.Errorf("input modified: %q", in.Tags[0].Value)
	}
	if out.Tags[0].Value != "Richmond" {
		t.Errorf("output = %q, want Richmond", out.Tags[0].Value)
	}
	if out.ID() != "1" {
		t.Errorf("attributes lost")
	}
}

func TestNormalizeDerivesCountyTags(t *testing.T) {
	n := newNormalizer(t)
	in := &element.Element{
		Kind: element.KindNode,
		Tags: []element.Tag{
			{Key: "gnis:County_num", Value: "087"},
			{Key: "name", Value: "x"},
			{Key: "gnis:county_name", Value: "Chesterfield"},
			{Key: "gnis:county_id", Value: "999"},
		},
	}

	out, err := n.Normalize(in)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	want := []element.Tag{
		{Key: "gnis:County_num", Value: "087"},
		{Key: "gnis:County", Value: "Henrico"},
		{Key: "name", Value: "x"},
		{Key: "gnis:county_name", Value: "Chesterfield"},
		{Key: "gnis:county_id", Value: "999"},
	}
	if len(out.Tags) != len(want) {
		t.Fatalf("got %d tags %v, want %d", len(out.Tags), out.Tags, len(want))
	}
	for i := range want {
		if out.Tags[i] != want[i] {
			t.Errorf("tag %d = %v, want %v", i, out.Tags[i], want[i])
		}
	}
}

func TestNormalizeDerivesCountyNumber(t *testing.T) {
	n := newNormalizer(t)
	out, err := n.Normalize(&element.Element{
		Kind: element.KindWay,
		Tags: []element.Tag{{Key: "gnis:county_name", Value: "Richmond (city)"}},
	})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if v, _ := out.Tag("gnis:county_id"); v != "760" {
		t.Errorf("gnis:county_id = %q, want 760", v)
	}
}

func TestNormalizeWithoutCountyTags(t *testing.T) {
	n := newNormalizer(t, WithoutCountyTags())
	out, _ := n.Normalize(&element.Element{
		Kind: element.KindNode,
		Tags: []element.Tag{{Key: "gnis:county_id", Value: "087"}},
	})
	if len(out.Tags) != 1 {
		t.Errorf("expected no derived tags, got %v", out.Tags)
	}
}

type upperHook struct{ err error }

func (h upperHook) Rewrite(key, value string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	if key == "name" {
		return value + "!", nil
	}
	return value, nil
}

func TestNormalizeRewriterHook(t *testing.T) {
	n := newNormalizer(t, WithRewriter(upperHook{}))
	out, err := n.Normalize(&element.Element{
		Kind: element.KindNode,
		Tags: []element.Tag{{Key: "name", Value: "Park"}},
	})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if out.Tags[0].Value != "Park!" {
		t.Errorf("got %q", out.Tags[0].Value)
	}

	boom := errors.New("boom")
	n = newNormalizer(t, WithRewriter(upperHook{err: boom}))
	_, err = n.Normalize(&element.Element{
		Kind: element.KindNode,
		Tags: []element.Tag{{Key: "name", Value: "Park"}},
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected hook error, got %v", err)
	}
}

func TestNormalizeRewriterSeesDerivedTags(t *testing.T) {
	n := newNormalizer(t, WithRewriter(upperHook{}))
	out, err := n.Normalize(&element.Element{
		Kind: element.KindNode,
		Tags: []element.Tag{
			{Key: "gnis:County_num", Value: "087"},
			{Key: "fixme", NoValue: true},
			{Value: "orphan", NoKey: true},
		},
	})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	want := []element.Tag{
		{Key: "gnis:County_num", Value: "087!"},
		{Key: "gnis:County", Value: "Henrico!"},
		{Key: "fixme", NoValue: true},
		{Value: "orphan", NoKey: true},
	}
	if len(out.Tags) != len(want) {
		t.Fatalf("got %d tags %v, want %d", len(out.Tags), out.Tags, len(want))
	}
	for i := range want {
		if out.Tags[i] != want[i] {
			t.Errorf("tag %d = %v, want %v", i, out.Tags[i], want[i])
		}
	}
}

func TestParseTables(t *testing.T) {
	data := []byte(`
cities:
  "Glen allen": "Glen Allen"
street_suffixes: ["Street"]
postal_code_length: 3
`)
	tables, err := ParseTables(data)
	if err != nil {
		t.Fatalf("ParseTables() error: %v", err)
	}
	if tables.Cities["Glen allen"] != "Glen Allen" {
		t.Errorf("override not applied")
	}
	if tables.Cities["richmond"] != "Richmond" {
		t.Errorf("default city mapping lost")
	}
	if len(tables.StreetSuffixes) != 1 {
		t.Errorf("street_suffixes should be replaced, got %d entries", len(tables.StreetSuffixes))
	}

	n, err := New(tables)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got, _ := n.Rewrite("addr:postcode", "23220"); got != "232" {
		t.Errorf("postcode = %q, want 232", got)
	}

	// defaults must not be changed by an override
	if DefaultTables().PostalCodeLength != 5 {
		t.Errorf("defaults were modified")
	}
}

func TestParseTablesInvalid(t *testing.T) {
	if _, err := ParseTables([]byte("postal_code_length: 0")); err == nil {
		t.Error("expected validation error")
	}
	if _, err := ParseTables([]byte("cities: [")); err == nil {
		t.Error("expected parse error")
	}
}
