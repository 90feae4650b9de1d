package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "election headline",
			title: "Tanzania's 2024 Election: A Turning Point?",
			want:  "tanzanias-2024-election-a-turning-point",
		},
		{name: "simple", title: "Hello World", want: "hello-world"},
		{name: "already clean", title: "habari-za-leo", want: "habari-za-leo"},
		{name: "mixed case", title: "Uchaguzi TANZANIA", want: "uchaguzi-tanzania"},
		{name: "whitespace runs", title: "  a   lot\tof   space  ", want: "a-lot-of-space"},
		{name: "underscores and slashes", title: "part_one/part two", want: "part-one-part-two"},
		{name: "punctuation stripped", title: "Kwa nini? Kwa sababu!", want: "kwa-nini-kwa-sababu"},
		{name: "symbols only", title: "???!!!", want: "post"},
		{name: "empty", title: "", want: "post"},
		{name: "trailing separators", title: "habari---", want: "habari"},
		{name: "digits kept", title: "Top 10 Safari Spots 2024", want: "top-10-safari-spots-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestMakeLongTitle(t *testing.T) {
	title := strings.Repeat("habari ", 60) // ~420 chars of slug material
	got := Make(title)

	if len(got) > MaxLen {
		t.Fatalf("len = %d, want <= %d", len(got), MaxLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug ends with a hyphen: %q", got)
	}
	// truncation must not cut a word in half
	for _, seg := range strings.Split(got, "-") {
		if seg != "habari" {
			t.Errorf("split a segment during truncation: %q", seg)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short stays", in: "abc-def", max: 10, want: "abc-def"},
		{name: "exact stays", in: "abc-def", max: 7, want: "abc-def"},
		{name: "trims to segment", in: "abc-def-ghi", max: 9, want: "abc-def"},
		{name: "cut inside segment", in: "abc-def", max: 5, want: "abc"},
		{name: "no hyphen hard cut", in: "abcdefgh", max: 4, want: "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	takenSet := func(taken ...string) func(string) (bool, error) {
		set := map[string]bool{}
		for _, s := range taken {
			set[s] = true
		}
		return func(candidate string) (bool, error) { return set[candidate], nil }
	}

	t.Run("free base returned as is", func(t *testing.T) {
		got, err := Unique("habari", takenSet())
		if err != nil {
			t.Fatal(err)
		}
		if got != "habari" {
			t.Errorf("got %q, want %q", got, "habari")
		}
	})

	t.Run("first collision gets -1", func(t *testing.T) {
		base := "tanzanias-2024-election-a-turning-point"
		got, err := Unique(base, takenSet(base))
		if err != nil {
			t.Fatal(err)
		}
		if got != base+"-1" {
			t.Errorf("got %q, want %q", got, base+"-1")
		}
	})

	t.Run("suffix increments past existing", func(t *testing.T) {
		got, err := Unique("habari", takenSet("habari", "habari-1", "habari-2"))
		if err != nil {
			t.Fatal(err)
		}
		if got != "habari-3" {
			t.Errorf("got %q, want %q", got, "habari-3")
		}
	})

	t.Run("suffix fits within max length", func(t *testing.T) {
		base := strings.Repeat("a", MaxLen)
		got, err := Unique(base, takenSet(base))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) > MaxLen {
			t.Errorf("len = %d, want <= %d", len(got), MaxLen)
		}
		if !strings.HasSuffix(got, "-1") {
			t.Errorf("got %q, want -1 suffix", got)
		}
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		boom := func(string) (bool, error) { return false, errBoom }
		if _, err := Unique("habari", boom); err != errBoom {
			t.Errorf("got %v, want %v", err, errBoom)
		}
	})
}

var errBoom = errTest("lookup failed")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"habari-42", false},
		{"-1", false},
	}

	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
