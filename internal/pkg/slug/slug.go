// Package slug derives URL-safe identifiers from post titles and keeps
// them unique against the stored slug set.
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxLen is the storage bound for a slug.
const MaxLen = 200

// Make lowercases the title, replaces whitespace runs with single hyphens,
// drops everything outside [a-z0-9-], and truncates to MaxLen without
// cutting a hyphen-delimited segment in half.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r), r == '-', r == '_', r == '/':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// anything else (punctuation, symbols) is dropped entirely
	}

	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		s = "post"
	}
	return Truncate(s, MaxLen)
}

// Truncate shortens a slug to max bytes, trimming back to the last complete
// hyphen-delimited segment so no word is split.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, '-'); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, "-")
}

// Unique resolves a free slug for base by appending -N (N starting at 1)
// while the candidate is taken. The taken predicate is supplied by the
// caller (a DB lookup, excluding the post's own row on update). The base is
// re-truncated each round so the suffixed candidate stays within MaxLen.
func Unique(base string, taken func(candidate string) (bool, error)) (string, error) {
	candidate := Truncate(base, MaxLen)
	if candidate == "" {
		candidate = "post"
	}

	inUse, err := taken(candidate)
	if err != nil {
		return "", err
	}
	if !inUse {
		return candidate, nil
	}

	for n := 1; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		candidate = Truncate(base, MaxLen-len(suffix)) + suffix
		inUse, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
}

// IsNumeric reports whether the identifier looks like a numeric row id
// rather than a slug.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
