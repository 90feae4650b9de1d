package post

import (
	"errors"
	"time"

	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/markdown"
)

var (
	errPostNotFound     = errors.New("post not found")
	errCategoryNotFound = errors.New("category not found")
	errNotPostOwner     = errors.New("you may only manage your own posts")
	errAuthRequired     = errors.New("authentication required")
)

// CreatePostDTO enumerates every field accepted on creation; anything else
// in the request body is ignored.
type CreatePostDTO struct {
	Title           string      `json:"title"   binding:"required"`
	TitleSw         string      `json:"title_sw"`
	Content         string      `json:"content" binding:"required"`
	ContentSw       string      `json:"content_sw"`
	Excerpt         string      `json:"excerpt"`
	CategoryID      *uint       `json:"category_id"`
	Tags            []string    `json:"tags"`
	IsPublished     *bool       `json:"is_published"`
	IsFeatured      *bool       `json:"is_featured"`
	PublishedAt     *time.Time  `json:"published_at"`
	FeaturedImage   string      `json:"featured_image"`
	FeaturedImgKey  string      `json:"featured_image_key"`
	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description"`
	MetaKeywords    []string    `json:"meta_keywords"`
}

// UpdatePostDTO patches a post; nil fields are left untouched.
type UpdatePostDTO struct {
	Title           *string     `json:"title"`
	TitleSw         *string     `json:"title_sw"`
	Content         *string     `json:"content"`
	ContentSw       *string     `json:"content_sw"`
	Excerpt         *string     `json:"excerpt"`
	CategoryID      *uint       `json:"category_id"`
	Tags            []string    `json:"tags"`
	IsPublished     *bool       `json:"is_published"`
	IsFeatured      *bool       `json:"is_featured"`
	PublishedAt     *time.Time  `json:"published_at"`
	FeaturedImage   *string     `json:"featured_image"`
	FeaturedImgKey  *string     `json:"featured_image_key"`
	MetaTitle       *string     `json:"meta_title"`
	MetaDescription *string     `json:"meta_description"`
	MetaKeywords    []string    `json:"meta_keywords"`
}

// ListQuery holds the filter surface of GET /posts.
type ListQuery struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Tag       string `form:"tag"`
	Featured  *bool  `form:"featured"`
	Status    string `form:"status"` // published | draft | all (admin view only)
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
	Admin     bool   `form:"admin"` // request the admin view explicitly
}

type postResponse struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	TitleSw         string                `json:"title_sw,omitempty"`
	Content         string                `json:"content,omitempty"`
	ContentSw       string                `json:"content_sw,omitempty"`
	ContentHTML     string                `json:"content_html,omitempty"`
	Excerpt         string                `json:"excerpt"`
	Slug            string                `json:"slug"`
	Category        *models.CategoryModel `json:"category,omitempty"`
	User            *authorResponse       `json:"user,omitempty"`
	Tags            []models.TagModel     `json:"tags"`
	IsPublished     bool                  `json:"is_published"`
	IsFeatured      bool                  `json:"is_featured"`
	ViewCount       int                   `json:"view_count"`
	PublishedAt     *time.Time            `json:"published_at"`
	FeaturedImage   string                `json:"featured_image,omitempty"`
	MetaTitle       string                `json:"meta_title,omitempty"`
	MetaDescription string                `json:"meta_description,omitempty"`
	MetaKeywords    []string              `json:"meta_keywords,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type authorResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

func toResponse(p *models.PostModel, renderHTML bool) postResponse {
	r := postResponse{
		ID:              p.ID,
		Title:           p.Title,
		TitleSw:         p.TitleSw,
		Content:         p.Content,
		ContentSw:       p.ContentSw,
		Excerpt:         p.Excerpt,
		Slug:            p.Slug,
		Category:        p.Category,
		Tags:            p.Tags,
		IsPublished:     p.IsPublished,
		IsFeatured:      p.IsFeatured,
		ViewCount:       p.ViewCount,
		PublishedAt:     p.PublishedAt,
		FeaturedImage:   p.FeaturedImageURL,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.User != nil {
		r.User = &authorResponse{
			ID:     p.User.ID,
			Name:   p.User.Name,
			Bio:    p.User.Bio,
			Avatar: p.User.Avatar,
		}
	}
	if renderHTML {
		r.ContentHTML = markdown.Render(p.Content)
	}
	if r.Tags == nil {
		r.Tags = []models.TagModel{}
	}
	return r
}

func toListResponse(p *models.PostModel) postResponse {
	r := toResponse(p, false)
	// list items carry the excerpt, not full bodies
	r.Content = ""
	r.ContentSw = ""
	return r
}
