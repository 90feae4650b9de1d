package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
	}{
		{"heading", "# Habari", "<h1>Habari</h1>"},
		{"emphasis", "some *habari* text", "<em>habari</em>"},
		{"strikethrough", "~~zamani~~", "<del>zamani</del>"},
		{"autolink", "see https://habari.example now", `<a href="https://habari.example"`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.source)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.source, got, tt.contains)
			}
		})
	}
}

func TestRenderHardWraps(t *testing.T) {
	got := Render("line one\nline two")
	if !strings.Contains(got, "<br") {
		t.Errorf("hard wraps not applied: %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); strings.TrimSpace(got) != "" {
		t.Errorf("Render(\"\") = %q", got)
	}
}
