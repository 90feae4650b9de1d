package post

import "time"

const (
	statusPublished = "published"
	statusDraft     = "draft"
	statusAll       = "all"
)

// resolveStatus maps the requested status filter to the effective one.
// Outside the admin view only published posts are ever listed, whatever
// the caller asked for.
func resolveStatus(requested string, adminView bool) string {
	if !adminView {
		return statusPublished
	}
	switch requested {
	case statusPublished, statusDraft, statusAll:
		return requested
	default:
		return statusAll
	}
}

// sortFields whitelists client-selectable sort columns.
var sortFields = map[string]string{
	"created_at":   "posts.created_at",
	"published_at": "posts.published_at",
	"view_count":   "posts.view_count",
	"title":        "posts.title",
}

// resolveSort picks a safe ORDER BY column and direction. The public
// listing defaults to newest published first; the admin view defaults to
// creation order so drafts sort sensibly too.
func resolveSort(field, direction string, adminView bool) (string, string) {
	col, ok := sortFields[field]
	if !ok {
		if adminView {
			col = sortFields["created_at"]
		} else {
			col = sortFields["published_at"]
		}
	}
	if direction != "asc" {
		direction = "desc"
	}
	return col, direction
}

// resolveSlugRead decides what a slug lookup yields. Published posts are
// served to everyone and count one view; unpublished posts are served
// without counting only to a privileged actor (admin or owning author),
// and are indistinguishable from missing posts for anyone else.
func resolveSlugRead(published, privileged bool) (countView bool, err error) {
	if published {
		return true, nil
	}
	if privileged {
		return false, nil
	}
	return false, errPostNotFound
}

// publishTimestamp decides the post's published_at after a publish-state
// change. It is set exactly once, on the first transition to published
// (honoring an explicitly supplied time), and is never cleared or moved by
// later publishes, unpublishes or edits.
func publishTimestamp(current *time.Time, publish bool, explicit *time.Time, now time.Time) *time.Time {
	if current != nil {
		return current
	}
	if !publish {
		return nil
	}
	if explicit != nil {
		return explicit
	}
	return &now
}
