package post

import (
	"errors"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
)

func dupErr() error {
	return &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

func TestWriteWithSlug(t *testing.T) {
	neverTaken := func(string) (bool, error) { return false, nil }

	t.Run("free slug writes once", func(t *testing.T) {
		var got []string
		err := writeWithSlug("habari", neverTaken, func(s string) error {
			got = append(got, s)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0] != "habari" {
			t.Errorf("writes = %v", got)
		}
	})

	// a slug the pre-check cannot see (a soft-deleted row still held by
	// the unique index) must not be recomputed forever: after the index
	// rejects it, the next round advances to the suffixed candidate
	t.Run("index collision invisible to the pre-check advances", func(t *testing.T) {
		var got []string
		err := writeWithSlug("habari", neverTaken, func(s string) error {
			got = append(got, s)
			if s == "habari" {
				return dupErr()
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"habari", "habari-1"}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("writes = %v, want %v", got, want)
		}
	})

	t.Run("each retry burns the previous candidate", func(t *testing.T) {
		var got []string
		err := writeWithSlug("habari", neverTaken, func(s string) error {
			got = append(got, s)
			if len(got) < 4 {
				return dupErr()
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(got); i++ {
			if got[i] == got[i-1] {
				t.Fatalf("candidate repeated: %v", got)
			}
		}
		if got[len(got)-1] != "habari-3" {
			t.Errorf("final slug = %q, want habari-3", got[len(got)-1])
		}
	})

	t.Run("non-duplicate write error stops immediately", func(t *testing.T) {
		boom := errors.New("connection lost")
		calls := 0
		err := writeWithSlug("habari", neverTaken, func(string) error {
			calls++
			return boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("persistent duplicates give up after the retry budget", func(t *testing.T) {
		calls := 0
		err := writeWithSlug("habari", neverTaken, func(string) error {
			calls++
			return dupErr()
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !isDuplicateKey(err) {
			t.Errorf("err = %v, want the duplicate-key error surfaced", err)
		}
		if calls != slugRetryMax+1 {
			t.Errorf("calls = %d, want %d", calls, slugRetryMax+1)
		}
	})

	t.Run("taken slugs are skipped before writing", func(t *testing.T) {
		taken := func(c string) (bool, error) { return c == "habari", nil }
		var got []string
		err := writeWithSlug("habari", taken, func(s string) error {
			got = append(got, s)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0] != "habari-1" {
			t.Errorf("writes = %v, want [habari-1]", got)
		}
	})
}
