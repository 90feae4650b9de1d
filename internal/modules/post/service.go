package post

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/modules/media"
	"github.com/habariblog/core/internal/pkg/access"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
	"github.com/habariblog/core/internal/pkg/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// slugRetryMax bounds retries when a concurrent create wins the same slug;
// the unique index is the final arbiter and each retry recomputes from the
// then-current slug set.
const slugRetryMax = 5

// Service handles the publishing workflow.
type Service struct {
	db     *gorm.DB
	media  *media.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, mediaSvc *media.Service, logger *zap.Logger) *Service {
	return &Service{db: db, media: mediaSvc, logger: logger}
}

// List returns a paginated, filtered post listing. Draft visibility and the
// status filter unlock only when the actor is an admin AND the admin view
// was explicitly requested.
func (s *Service) List(q pagination.Query, lq ListQuery, actor *models.UserModel) ([]models.PostModel, response.Pagination, error) {
	adminView := lq.Admin && access.IsAdmin(actor)
	status := resolveStatus(lq.Status, adminView)
	sortField, sortDir := resolveSort(lq.Sort, lq.Direction, adminView)

	tx := s.db.Model(&models.PostModel{}).
		Preload("Category").
		Preload("User").
		Preload("Tags").
		Order(sortField + " " + sortDir)

	switch status {
	case statusPublished:
		tx = tx.Where("posts.is_published = ?", true)
	case statusDraft:
		tx = tx.Where("posts.is_published = ?", false)
	}

	if search := strings.TrimSpace(lq.Search); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("posts.title LIKE ? OR posts.content LIKE ? OR posts.excerpt LIKE ?", like, like, like)
	}
	if cat := strings.TrimSpace(lq.Category); cat != "" {
		tx = tx.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.name = ? OR categories.id = ?", cat, cat)
	}
	if tag := strings.TrimSpace(lq.Tag); tag != "" {
		tx = tx.Joins("JOIN post_tags ON post_tags.post_model_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_model_id").
			Where("tags.slug = ?", tag)
	}
	if lq.Featured != nil {
		tx = tx.Where("posts.is_featured = ?", *lq.Featured)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetByIdentifier resolves a post by numeric id (editor lookup) or slug
// (public lookup). Slug reads of published posts count one view; id reads
// never do. Unpublished posts are hidden (not-found) from everyone except
// admins and the owning author.
func (s *Service) GetByIdentifier(identifier string, actor *models.UserModel) (*models.PostModel, error) {
	if slug.IsNumeric(identifier) {
		if actor == nil {
			return nil, errAuthRequired
		}
		id, _ := strconv.ParseUint(identifier, 10, 64)
		post, err := s.getByID(uint(id))
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, errPostNotFound
		}
		if !access.CanMutatePost(actor, post) {
			return nil, errNotPostOwner
		}
		return post, nil
	}

	post, err := s.getBySlug(identifier)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errPostNotFound
	}
	countView, err := resolveSlugRead(post.IsPublished, access.CanMutatePost(actor, post))
	if err != nil {
		// never reveal the existence of unpublished content
		return nil, err
	}
	if countView {
		if err := s.incrementViewCount(post.ID); err != nil {
			s.logger.Warn("view count increment failed", zap.Uint("post_id", post.ID), zap.Error(err))
		} else {
			post.ViewCount++
		}
	}
	return post, nil
}

// Create inserts a new post authored by actor. The slug is derived from the
// title and made unique; a duplicate-key conflict from a concurrent create
// re-runs the suffix loop.
func (s *Service) Create(dto *CreatePostDTO, actor *models.UserModel) (*models.PostModel, error) {
	if dto.CategoryID != nil {
		if err := s.ensureCategoryExists(*dto.CategoryID); err != nil {
			return nil, err
		}
	}

	post := models.PostModel{
		Title:            dto.Title,
		TitleSw:          dto.TitleSw,
		Content:          dto.Content,
		ContentSw:        dto.ContentSw,
		Excerpt:          dto.Excerpt,
		CategoryID:       dto.CategoryID,
		UserID:           actor.ID,
		FeaturedImageURL: dto.FeaturedImage,
		FeaturedImageKey: dto.FeaturedImgKey,
		MetaTitle:        dto.MetaTitle,
		MetaDescription:  dto.MetaDescription,
		MetaKeywords:     dto.MetaKeywords,
	}
	if dto.IsPublished != nil {
		post.IsPublished = *dto.IsPublished
	}
	if dto.IsFeatured != nil {
		post.IsFeatured = *dto.IsFeatured
	}
	post.PublishedAt = publishTimestamp(nil, post.IsPublished, dto.PublishedAt, time.Now())

	tags, err := s.resolveTags(dto.Tags)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	err = writeWithSlug(slug.Make(post.Title), s.slugTaken(0), func(candidate string) error {
		post.Slug = candidate
		return s.db.Create(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// writeWithSlug runs the slug uniqueness loop around a write. The unique
// index is the final arbiter: a candidate the pre-check missed (concurrent
// writer, or a row the scoped query cannot see) is remembered as taken, so
// every retry advances to a fresh candidate and the loop makes progress.
func writeWithSlug(base string, taken func(string) (bool, error), write func(slug string) error) error {
	burned := map[string]bool{}
	check := func(candidate string) (bool, error) {
		if burned[candidate] {
			return true, nil
		}
		return taken(candidate)
	}

	for attempt := 0; ; attempt++ {
		candidate, err := slug.Unique(base, check)
		if err != nil {
			return err
		}
		err = write(candidate)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) || attempt >= slugRetryMax {
			return err
		}
		burned[candidate] = true
	}
}

// Update patches a post. The slug is recomputed only when the title
// actually changes; published_at is set on the first publish and never
// cleared or overwritten afterwards.
func (s *Service) Update(id uint, dto *UpdatePostDTO, actor *models.UserModel) (*models.PostModel, error) {
	post, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errPostNotFound
	}
	if !access.CanMutatePost(actor, post) {
		return nil, errNotPostOwner
	}

	if dto.CategoryID != nil {
		if err := s.ensureCategoryExists(*dto.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	titleChanged := dto.Title != nil && *dto.Title != post.Title
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.TitleSw != nil {
		updates["title_sw"] = *dto.TitleSw
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.ContentSw != nil {
		updates["content_sw"] = *dto.ContentSw
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.IsFeatured != nil {
		updates["is_featured"] = *dto.IsFeatured
	}
	if dto.FeaturedImage != nil {
		updates["featured_image_url"] = *dto.FeaturedImage
	}
	if dto.FeaturedImgKey != nil {
		updates["featured_image_key"] = *dto.FeaturedImgKey
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.MetaKeywords != nil {
		updates["meta_keywords"] = models.StringSlice(dto.MetaKeywords)
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
		if ts := publishTimestamp(post.PublishedAt, *dto.IsPublished, dto.PublishedAt, time.Now()); ts != post.PublishedAt {
			updates["published_at"] = ts
		}
	}

	if titleChanged {
		err = writeWithSlug(slug.Make(*dto.Title), s.slugTaken(post.ID), func(candidate string) error {
			updates["slug"] = candidate
			return s.db.Model(post).Updates(updates).Error
		})
	} else {
		err = s.db.Model(post).Updates(updates).Error
	}
	if err != nil {
		return nil, err
	}

	if dto.Tags != nil {
		tags, err := s.resolveTags(dto.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(post).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
	}

	return s.getByID(post.ID)
}

// Delete removes a post and, best-effort, its stored featured image. An
// object-storage failure is logged but never blocks the record deletion.
func (s *Service) Delete(ctx context.Context, id uint, actor *models.UserModel) error {
	post, err := s.getByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return errPostNotFound
	}
	if !access.CanMutatePost(actor, post) {
		return errNotPostOwner
	}

	if post.FeaturedImageKey != "" {
		if err := s.media.Delete(ctx, post.FeaturedImageKey); err != nil {
			s.logger.Warn("featured image cleanup failed",
				zap.Uint("post_id", post.ID),
				zap.String("key", post.FeaturedImageKey),
				zap.Error(err))
		}
	}

	if err := s.db.Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	return s.db.Delete(post).Error
}

func (s *Service) getByID(id uint) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Category").Preload("User").Preload("Tags").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) getBySlug(slugValue string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Category").Preload("User").Preload("Tags").
		First(&post, "posts.slug = ?", slugValue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// slugTaken builds the collision predicate for the uniqueness loop,
// excluding the post's own row on update. The check is unscoped:
// soft-deleted rows still occupy the unique index, so their slugs count
// as taken.
func (s *Service) slugTaken(excludeID uint) func(string) (bool, error) {
	return func(candidate string) (bool, error) {
		var count int64
		tx := s.db.Unscoped().Model(&models.PostModel{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			tx = tx.Where("id <> ?", excludeID)
		}
		if err := tx.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

func (s *Service) incrementViewCount(id uint) error {
	return s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *Service) ensureCategoryExists(id uint) error {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errCategoryNotFound
	}
	return nil
}

// resolveTags finds or creates the tags named in the request.
func (s *Service) resolveTags(names []string) ([]models.TagModel, error) {
	tags := make([]models.TagModel, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tagSlug := slug.Make(name)
		if seen[tagSlug] {
			continue
		}
		seen[tagSlug] = true

		var tag models.TagModel
		err := s.db.Where(models.TagModel{Slug: tagSlug}).
			Attrs(models.TagModel{Name: name}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
// (error 1062), the signal that a concurrent writer won a unique index.
func isDuplicateKey(err error) bool {
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
