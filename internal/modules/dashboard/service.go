package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/habariblog/core/internal/models"
	redispkg "github.com/habariblog/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	cacheKey = "habari:dashboard:stats"
	cacheTTL = time.Minute
)

// Stats is the admin dashboard snapshot.
type Stats struct {
	Posts struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		Drafts    int64 `json:"drafts"`
		Featured  int64 `json:"featured"`
	} `json:"posts"`
	TotalViews        int64          `json:"total_views"`
	PendingComments   int64          `json:"pending_comments"`
	TotalComments     int64          `json:"total_comments"`
	Users             int64          `json:"users"`
	ActiveSubscribers int64          `json:"active_subscribers"`
	RecentPosts       []recentPost   `json:"recent_posts"`
	RecentComments    []recentItem   `json:"recent_comments"`
	TopPosts          []topPost      `json:"top_posts"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

type recentPost struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type recentItem struct {
	ID         uint      `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type topPost struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	ViewCount int    `json:"view_count"`
}

type Service struct {
	db     *gorm.DB
	cache  *redispkg.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, cache *redispkg.Client, logger *zap.Logger) *Service {
	return &Service{db: db, cache: cache, logger: logger}
}

// Stats assembles the dashboard snapshot, served from a short redis cache
// when available. Cache trouble degrades to a live computation.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached Stats
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *Service) compute() (*Stats, error) {
	stats := &Stats{GeneratedAt: time.Now()}

	counts := []struct {
		dest *int64
		tx   *gorm.DB
	}{
		{&stats.Posts.Total, s.db.Model(&models.PostModel{})},
		{&stats.Posts.Published, s.db.Model(&models.PostModel{}).Where("is_published = ?", true)},
		{&stats.Posts.Drafts, s.db.Model(&models.PostModel{}).Where("is_published = ?", false)},
		{&stats.Posts.Featured, s.db.Model(&models.PostModel{}).Where("is_featured = ?", true)},
		{&stats.PendingComments, s.db.Model(&models.CommentModel{}).Where("is_approved = ?", false)},
		{&stats.TotalComments, s.db.Model(&models.CommentModel{})},
		{&stats.Users, s.db.Model(&models.UserModel{})},
		{&stats.ActiveSubscribers, s.db.Model(&models.SubscriberModel{}).Where("is_active = ?", true)},
	}
	for _, c := range counts {
		if err := c.tx.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var totalViews *int64
	err := s.db.Model(&models.PostModel{}).
		Select("SUM(view_count)").Scan(&totalViews).Error
	if err != nil {
		return nil, err
	}
	if totalViews != nil {
		stats.TotalViews = *totalViews
	}

	var posts []models.PostModel
	if err := s.db.Order("created_at DESC").Limit(5).Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		stats.RecentPosts = append(stats.RecentPosts, recentPost{
			ID:          posts[i].ID,
			Title:       posts[i].Title,
			Slug:        posts[i].Slug,
			IsPublished: posts[i].IsPublished,
			PublishedAt: posts[i].PublishedAt,
			CreatedAt:   posts[i].CreatedAt,
		})
	}

	var comments []models.CommentModel
	if err := s.db.Order("created_at DESC").Limit(5).Find(&comments).Error; err != nil {
		return nil, err
	}
	for i := range comments {
		stats.RecentComments = append(stats.RecentComments, recentItem{
			ID:         comments[i].ID,
			AuthorName: comments[i].AuthorName,
			Content:    trimContent(comments[i].Content, 120),
			IsApproved: comments[i].IsApproved,
			CreatedAt:  comments[i].CreatedAt,
		})
	}

	var top []models.PostModel
	err = s.db.Where("is_published = ?", true).
		Order("view_count DESC").Limit(5).Find(&top).Error
	if err != nil {
		return nil, err
	}
	for i := range top {
		stats.TopPosts = append(stats.TopPosts, topPost{
			ID:        top[i].ID,
			Title:     top[i].Title,
			Slug:      top[i].Slug,
			ViewCount: top[i].ViewCount,
		})
	}

	return stats, nil
}

// trimContent shortens to max characters on a rune boundary, so multibyte
// text is never cut mid-rune.
func trimContent(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
