package post

import (
	"strings"
	"testing"

	"github.com/habariblog/core/internal/models"
)

func samplePost() *models.PostModel {
	p := &models.PostModel{
		Title:     "Habari za Leo",
		TitleSw:   "Habari za Leo",
		Content:   "# Karibu\n\nwelcome text",
		ContentSw: "# Karibu\n\nmaandishi ya karibu",
		Excerpt:   "welcome",
		Slug:      "habari-za-leo",
		ViewCount: 3,
	}
	p.ID = 12
	u := &models.UserModel{Name: "Amina", Bio: "editor"}
	u.ID = 4
	p.User = u
	return p
}

func TestToResponseRendersHTML(t *testing.T) {
	r := toResponse(samplePost(), true)

	if !strings.Contains(r.ContentHTML, "<h1>Karibu</h1>") {
		t.Errorf("ContentHTML = %q", r.ContentHTML)
	}
	if r.Content == "" {
		t.Error("raw markdown must still be present")
	}
	if r.User == nil || r.User.Name != "Amina" {
		t.Errorf("author = %+v", r.User)
	}
	if r.Tags == nil {
		t.Error("nil tags must serialize as an empty array")
	}
}

func TestToResponseWithoutHTML(t *testing.T) {
	r := toResponse(samplePost(), false)
	if r.ContentHTML != "" {
		t.Errorf("ContentHTML = %q, want empty", r.ContentHTML)
	}
}

func TestToListResponseStripsBodies(t *testing.T) {
	r := toListResponse(samplePost())

	if r.Content != "" || r.ContentSw != "" {
		t.Error("list items must not carry full bodies")
	}
	if r.Excerpt != "welcome" {
		t.Errorf("Excerpt = %q", r.Excerpt)
	}
	if r.Slug != "habari-za-leo" || r.ID != 12 {
		t.Errorf("identity fields lost: %+v", r)
	}
}
