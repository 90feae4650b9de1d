package comment

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/habariblog/core/internal/models"
)

func TestPolicyInitialApproval(t *testing.T) {
	if !(Policy{AutoApprove: true}).InitialApproval() {
		t.Error("auto-approve policy must publish immediately")
	}
	if (Policy{AutoApprove: false}).InitialApproval() {
		t.Error("moderated policy must hold comments")
	}
}

func TestCommentTarget(t *testing.T) {
	t.Run("published post takes comments", func(t *testing.T) {
		post := models.PostModel{IsPublished: true}
		if err := commentTarget(&post); err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})

	t.Run("draft is indistinguishable from missing", func(t *testing.T) {
		post := models.PostModel{IsPublished: false}
		if err := commentTarget(&post); !errors.Is(err, errPostNotFound) {
			t.Errorf("err = %v, want %v", err, errPostNotFound)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		if err := commentTarget(nil); !errors.Is(err, errPostNotFound) {
			t.Errorf("err = %v, want %v", err, errPostNotFound)
		}
	})
}

func mkComment(id uint, parentID *uint, at time.Time) models.CommentModel {
	c := models.CommentModel{ParentID: parentID}
	c.ID = id
	c.CreatedAt = at
	return c
}

func ref(v uint) *uint { return &v }

func TestAttachReplies(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("direct replies attach to their parent", func(t *testing.T) {
		top := []models.CommentModel{mkComment(1, nil, base), mkComment(2, nil, base.Add(time.Hour))}
		replies := []models.CommentModel{
			mkComment(10, ref(1), base.Add(time.Minute)),
			mkComment(11, ref(2), base.Add(2 * time.Minute)),
			mkComment(12, ref(1), base.Add(3 * time.Minute)),
		}

		AttachReplies(top, replies)

		if len(top[0].Replies) != 2 {
			t.Fatalf("comment 1 has %d replies, want 2", len(top[0].Replies))
		}
		if top[0].Replies[0].ID != 10 || top[0].Replies[1].ID != 12 {
			t.Errorf("reply order = %d,%d; want 10,12", top[0].Replies[0].ID, top[0].Replies[1].ID)
		}
		if len(top[1].Replies) != 1 || top[1].Replies[0].ID != 11 {
			t.Errorf("comment 2 replies wrong: %+v", top[1].Replies)
		}
	})

	t.Run("reply to a reply flattens under the root", func(t *testing.T) {
		top := []models.CommentModel{mkComment(1, nil, base)}
		replies := []models.CommentModel{
			mkComment(10, ref(1), base.Add(time.Minute)),   // direct reply
			mkComment(20, ref(10), base.Add(2 * time.Minute)), // reply to the reply
		}

		AttachReplies(top, replies)

		if len(top[0].Replies) != 2 {
			t.Fatalf("got %d replies, want both flattened under the root", len(top[0].Replies))
		}
		if top[0].Replies[0].ID != 10 || top[0].Replies[1].ID != 20 {
			t.Errorf("flattened order = %d,%d; want 10,20", top[0].Replies[0].ID, top[0].Replies[1].ID)
		}
		// nothing nests below the first level
		for _, r := range top[0].Replies {
			if len(r.Replies) != 0 {
				t.Errorf("reply %d carries nested replies", r.ID)
			}
		}
	})

	t.Run("replies of roots outside the page are dropped", func(t *testing.T) {
		top := []models.CommentModel{mkComment(1, nil, base)}
		replies := []models.CommentModel{
			mkComment(10, ref(99), base.Add(time.Minute)), // root 99 not in this page
		}

		AttachReplies(top, replies)

		if len(top[0].Replies) != 0 {
			t.Errorf("foreign reply attached: %+v", top[0].Replies)
		}
	})

	t.Run("no replies leaves slices nil", func(t *testing.T) {
		top := []models.CommentModel{mkComment(1, nil, base)}
		AttachReplies(top, nil)
		if top[0].Replies != nil {
			t.Errorf("got %+v, want nil", top[0].Replies)
		}
	})
}

func TestExcerpt(t *testing.T) {
	if got := excerpt("short", 120); got != "short" {
		t.Errorf("got %q", got)
	}
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	got := excerpt(string(long), 120)
	if len([]rune(got)) != 121 { // 120 chars + ellipsis
		t.Errorf("excerpt length = %d", len([]rune(got)))
	}

	// counting runes, not bytes: Swahili text with multibyte characters must
	// never be cut mid-rune
	swahili := strings.Repeat("habari ya leo — karibu tena ", 10)
	got = excerpt(swahili, 120)
	if !utf8.ValidString(got) {
		t.Errorf("excerpt split a rune: %q", got)
	}
	if n := len([]rune(got)); n != 121 {
		t.Errorf("excerpt length = %d runes, want 121", n)
	}
}
