package app

import (
	"strings"
	"testing"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	t.Run("adds disable flag when enabled", func(t *testing.T) {
		t.Parallel()

		got := normalizeDBURL("postgres://u:p@localhost:5432/engine?sslmode=disable", true)
		if !strings.Contains(got, "disable_prepared_binary_result=yes") {
			t.Fatalf("flag missing: %s", got)
		}
	})

	t.Run("keeps url untouched when disabled", func(t *testing.T) {
		t.Parallel()

		raw := "postgres://u:p@localhost:5432/engine?sslmode=disable"
		if got := normalizeDBURL(raw, false); got != raw {
			t.Fatalf("url changed: %s", got)
		}
	})

	t.Run("does not duplicate existing flag", func(t *testing.T) {
		t.Parallel()

		raw := "postgres://u:p@localhost:5432/engine?disable_prepared_binary_result=no"
		got := normalizeDBURL(raw, true)
		if strings.Count(got, "disable_prepared_binary_result") != 1 {
			t.Fatalf("flag duplicated: %s", got)
		}
	})
}

func TestDBNameFromURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"url form", "postgres://u:p@localhost:5432/engine?sslmode=disable", "engine"},
		{"dsn form", "host=localhost dbname=engine sslmode=disable", "engine"},
		{"quoted dsn", `host=localhost dbname="engine"`, "engine"},
		{"missing", "postgres://u:p@localhost:5432/", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := dbNameFromURL(tc.raw); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
