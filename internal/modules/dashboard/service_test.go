package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTrimContent(t *testing.T) {
	t.Run("short content passes through", func(t *testing.T) {
		if got := trimContent("maoni mafupi", 120); got != "maoni mafupi" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("long content trims with ellipsis", func(t *testing.T) {
		got := trimContent(strings.Repeat("a", 300), 120)
		if n := len([]rune(got)); n != 121 {
			t.Errorf("trimmed length = %d runes, want 121", n)
		}
	})

	t.Run("multibyte content never splits a rune", func(t *testing.T) {
		got := trimContent("a"+strings.Repeat("ā", 300), 120)
		if !utf8.ValidString(got) {
			t.Errorf("trim split a rune: %q", got)
		}
		if n := len([]rune(got)); n != 121 {
			t.Errorf("trimmed length = %d runes, want 121", n)
		}
	})
}
