package tag

import (
	"github.com/habariblog/core/internal/models"
	"gorm.io/gorm"
)

type tagWithCount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int64  `json:"post_count"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all tags with their published-post counts, most used first.
// Tags are created implicitly with posts; there is no write surface here.
func (s *Service) List() ([]tagWithCount, error) {
	var tags []tagWithCount
	err := s.db.Model(&models.TagModel{}).
		Select("tags.id, tags.name, tags.slug, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_model_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_model_id AND posts.is_published = 1 AND posts.deleted_at IS NULL").
		Group("tags.id, tags.name, tags.slug").
		Order("post_count DESC, tags.name ASC").
		Scan(&tags).Error
	return tags, err
}
