package script

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNoHooks(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	if err := r.LoadString(`x = 1`); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if r.HasRewrite() || r.HasInclude() {
		t.Error("no hooks should be registered")
	}
	if v, err := r.Rewrite("name", "x"); err != nil || v != "x" {
		t.Errorf("Rewrite() = %q, %v", v, err)
	}
	if ok, err := r.Include(map[string]string{}); err != nil || !ok {
		t.Errorf("Include() = %v, %v", ok, err)
	}
}

func TestRewrite(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	code := `
		function rewrite(key, value)
			if key == "name" then
				return osmclean.title(clean_spaces(value))
			end
			if key == "lanes" then
				return 2
			end
			return nil
		end
	`
	if err := r.LoadString(code); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	tests := []struct {
		key, value, want string
	}{
		{"name", "  broad   STREET market ", "Broad Street Market"},
		{"lanes", "two", "2"},
		{"amenity", "cafe", "cafe"},
	}
	for _, tt := range tests {
		got, err := r.Rewrite(tt.key, tt.value)
		if err != nil {
			t.Fatalf("Rewrite(%q) error: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("Rewrite(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestRewriteErrors(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	if err := r.LoadString(`
		function rewrite(key, value)
			if key == "bad" then error("boom") end
			return {}
		end
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Rewrite("bad", "x"); err == nil {
		t.Error("expected error from raising script")
	}
	if _, err := r.Rewrite("other", "x"); err == nil {
		t.Error("expected error for table result")
	}
}

func TestInclude(t *testing.T) {
	r := NewRuntime()
	defer r.Close()

	if err := r.LoadString(`
		function include(tags)
			if tags["disused"] ~= nil then return false end
			return tags["amenity"] ~= nil or osmclean.starts_with(tags["shop"] or "", "b")
		end
	`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		tags map[string]string
		want bool
	}{
		{map[string]string{"amenity": "cafe"}, true},
		{map[string]string{"shop": "bakery"}, true},
		{map[string]string{"shop": "hardware"}, false},
		{map[string]string{"amenity": "cafe", "disused": "yes"}, false},
		{map[string]string{}, false},
	}
	for _, tt := range tests {
		got, err := r.Include(tt.tags)
		if err != nil {
			t.Fatalf("Include(%v) error: %v", tt.tags, err)
		}
		if got != tt.want {
			t.Errorf("Include(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.lua")
	if err := os.WriteFile(path, []byte(`function rewrite(k, v) return osmclean.upper(v) end`), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRuntime()
	defer r.Close()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if v, _ := r.Rewrite("k", "va"); v != "VA" {
		t.Errorf("Rewrite() = %q, want VA", v)
	}

	if err := NewRuntime().LoadString(`function (`); err == nil {
		t.Error("expected syntax error")
	}
}
