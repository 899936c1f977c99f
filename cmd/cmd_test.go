package cmd

import "testing"

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format, path, want string
	}{
		{"", "docs.jsonl", "jsonl"},
		{"", "docs.PARQUET", "parquet"},
		{"", "docs", "jsonl"},
		{"parquet", "docs.jsonl", "parquet"},
	}

	for _, tt := range tests {
		if got := outputFormat(tt.format, tt.path); got != tt.want {
			t.Errorf("outputFormat(%q, %q) = %q, want %q", tt.format, tt.path, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"download", "sample", "audit", "clean", "shape", "load"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTransformFlags(t *testing.T) {
	for _, c := range []string{"clean", "shape", "load"} {
		cmd, _, err := rootCmd.Find([]string{c})
		if err != nil {
			t.Fatalf("Find(%s): %v", c, err)
		}
		for _, flag := range []string{"rules", "script", "no-normalize", "no-filter", "no-county-tags", "collision", "strict"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("%s: missing --%s", c, flag)
			}
		}
	}
}
