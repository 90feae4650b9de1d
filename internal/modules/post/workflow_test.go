package post

import (
	"errors"
	"testing"
	"time"
)

func TestPublishTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)
	explicit := now.Add(-2 * time.Hour)

	t.Run("first publish stamps now", func(t *testing.T) {
		got := publishTimestamp(nil, true, nil, now)
		if got == nil || !got.Equal(now) {
			t.Errorf("got %v, want %v", got, now)
		}
	})

	t.Run("first publish honors explicit time", func(t *testing.T) {
		got := publishTimestamp(nil, true, &explicit, now)
		if got == nil || !got.Equal(explicit) {
			t.Errorf("got %v, want %v", got, explicit)
		}
	})

	t.Run("draft stays unstamped", func(t *testing.T) {
		if got := publishTimestamp(nil, false, nil, now); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("unpublish preserves the stamp", func(t *testing.T) {
		got := publishTimestamp(&earlier, false, nil, now)
		if got == nil || !got.Equal(earlier) {
			t.Errorf("got %v, want %v", got, earlier)
		}
	})

	t.Run("republish never moves the stamp", func(t *testing.T) {
		got := publishTimestamp(&earlier, true, nil, now)
		if got == nil || !got.Equal(earlier) {
			t.Errorf("got %v, want %v", got, earlier)
		}
	})

	t.Run("explicit time cannot rewrite history", func(t *testing.T) {
		got := publishTimestamp(&earlier, true, &explicit, now)
		if got == nil || !got.Equal(earlier) {
			t.Errorf("got %v, want %v", got, earlier)
		}
	})
}

func TestResolveSlugRead(t *testing.T) {
	tests := []struct {
		name       string
		published  bool
		privileged bool
		wantCount  bool
		wantErr    error
	}{
		{"published post counts a view for anyone", true, false, true, nil},
		{"published post counts a view for the owner too", true, true, true, nil},
		{"owner previews a draft without counting", false, true, false, nil},
		{"stranger cannot tell a draft from a missing post", false, false, false, errPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := resolveSlugRead(tt.published, tt.privileged)
			if count != tt.wantCount {
				t.Errorf("countView = %v, want %v", count, tt.wantCount)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		adminView bool
		want      string
	}{
		{"public ignores draft filter", "draft", false, statusPublished},
		{"public ignores all filter", "all", false, statusPublished},
		{"public default", "", false, statusPublished},
		{"admin draft", "draft", true, statusDraft},
		{"admin published", "published", true, statusPublished},
		{"admin all", "all", true, statusAll},
		{"admin default is all", "", true, statusAll},
		{"admin bogus falls back to all", "archived", true, statusAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveStatus(tt.requested, tt.adminView); got != tt.want {
				t.Errorf("resolveStatus(%q, %v) = %q, want %q", tt.requested, tt.adminView, got, tt.want)
			}
		})
	}
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		adminView bool
		wantCol   string
		wantDir   string
	}{
		{"public default", "", "", false, "posts.published_at", "desc"},
		{"admin default", "", "", true, "posts.created_at", "desc"},
		{"view count asc", "view_count", "asc", false, "posts.view_count", "asc"},
		{"title", "title", "desc", false, "posts.title", "desc"},
		{"unknown field falls back", "password", "asc", false, "posts.published_at", "asc"},
		{"injection attempt ignored", "created_at; DROP TABLE posts", "", false, "posts.published_at", "desc"},
		{"bogus direction coerced", "created_at", "sideways", false, "posts.created_at", "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, dir := resolveSort(tt.field, tt.direction, tt.adminView)
			if col != tt.wantCol || dir != tt.wantDir {
				t.Errorf("got (%q, %q), want (%q, %q)", col, dir, tt.wantCol, tt.wantDir)
			}
		})
	}
}
