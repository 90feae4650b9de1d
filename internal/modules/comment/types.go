package comment

import (
	"errors"
	"time"

	"github.com/habariblog/core/internal/models"
)

var (
	errPostNotFound    = errors.New("post not found")
	errCommentNotFound = errors.New("comment not found")
	errParentNotFound  = errors.New("parent comment not found")
)

// CreateCommentDTO is the public submission form. Website is optional;
// replies name an existing comment on the same post.
type CreateCommentDTO struct {
	Content       string `json:"content"        binding:"required,max=5000"`
	AuthorName    string `json:"author_name"    binding:"required,max=100"`
	AuthorEmail   string `json:"author_email"   binding:"required,email"`
	AuthorWebsite string `json:"author_website" binding:"omitempty,url"`
	ParentID      *uint  `json:"parent_id"`
}

type commentResponse struct {
	ID            uint              `json:"id"`
	PostID        uint              `json:"post_id"`
	ParentID      *uint             `json:"parent_id,omitempty"`
	Content       string            `json:"content"`
	AuthorName    string            `json:"author_name"`
	AuthorWebsite string            `json:"author_website,omitempty"`
	IsApproved    bool              `json:"is_approved"`
	LikeCount     int               `json:"like_count"`
	CreatedAt     time.Time         `json:"created_at"`
	Replies       []commentResponse `json:"replies,omitempty"`
}

// moderationItem is the admin-queue view; it exposes the author email and
// the post the comment landed on.
type moderationItem struct {
	commentResponse
	AuthorEmail string `json:"author_email"`
	PostTitle   string `json:"post_title,omitempty"`
	PostSlug    string `json:"post_slug,omitempty"`
	ParentText  string `json:"parent_excerpt,omitempty"`
}

func toResponse(m *models.CommentModel) commentResponse {
	r := commentResponse{
		ID:            m.ID,
		PostID:        m.PostID,
		ParentID:      m.ParentID,
		Content:       m.Content,
		AuthorName:    m.AuthorName,
		AuthorWebsite: m.AuthorWebsite,
		IsApproved:    m.IsApproved,
		LikeCount:     m.LikeCount,
		CreatedAt:     m.CreatedAt,
	}
	for i := range m.Replies {
		r.Replies = append(r.Replies, toResponse(&m.Replies[i]))
	}
	return r
}

func toModerationItem(m *models.CommentModel) moderationItem {
	item := moderationItem{
		commentResponse: toResponse(m),
		AuthorEmail:     m.AuthorEmail,
	}
	if m.Post != nil {
		item.PostTitle = m.Post.Title
		item.PostSlug = m.Post.Slug
	}
	if m.Parent != nil {
		item.ParentText = excerpt(m.Parent.Content, 120)
	}
	return item
}

// excerpt trims to max characters, not bytes, so multibyte text is never
// cut mid-rune.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
