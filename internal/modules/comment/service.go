package comment

import (
	"errors"

	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Policy decides the initial approval state of a new submission. It exists
// so the moderation switch is testable apart from the config plumbing.
type Policy struct {
	AutoApprove bool
}

// InitialApproval returns the is_approved value for a fresh comment.
func (p Policy) InitialApproval() bool { return p.AutoApprove }

type Service struct {
	db     *gorm.DB
	policy Policy
	logger *zap.Logger
}

func NewService(db *gorm.DB, policy Policy, logger *zap.Logger) *Service {
	return &Service{db: db, policy: policy, logger: logger}
}

// Create stores a reader submission on a published post. Hidden or
// unpublished posts report not-found. A reply must target a top-level
// comment on the same post; deeper nesting is flattened out by refusal.
func (s *Service) Create(postSlug string, dto *CreateCommentDTO, ip, ua string) (*models.CommentModel, error) {
	post, err := s.publishedPost(postSlug)
	if err != nil {
		return nil, err
	}

	// a parent must exist on the same post; replying to a reply is
	// accepted and simply renders flattened under the root comment
	if dto.ParentID != nil {
		var parent models.CommentModel
		err := s.db.First(&parent, "id = ? AND post_id = ?", *dto.ParentID, post.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errParentNotFound
			}
			return nil, err
		}
	}

	comment := models.CommentModel{
		PostID:        post.ID,
		ParentID:      dto.ParentID,
		Content:       dto.Content,
		AuthorName:    dto.AuthorName,
		AuthorEmail:   dto.AuthorEmail,
		AuthorWebsite: dto.AuthorWebsite,
		IsApproved:    s.policy.InitialApproval(),
		IP:            ip,
		Agent:         ua,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	s.logger.Info("comment submitted",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("post_id", post.ID),
		zap.Bool("approved", comment.IsApproved))
	return &comment, nil
}

// ListForPost returns top-level comments newest first with their replies
// attached. Threading renders exactly one level deep: a reply to a reply is
// flattened under the original top-level comment. Unapproved comments and
// replies surface only when includeUnapproved is set (admin contexts).
func (s *Service) ListForPost(postSlug string, q pagination.Query, includeUnapproved bool) ([]models.CommentModel, response.Pagination, error) {
	post, err := s.publishedPost(postSlug)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	tx := s.db.Model(&models.CommentModel{}).
		Where("post_id = ? AND parent_id IS NULL", post.ID).
		Order("created_at DESC")
	if !includeUnapproved {
		tx = tx.Where("is_approved = ?", true)
	}

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	replyTx := s.db.Where("post_id = ? AND parent_id IS NOT NULL", post.ID).
		Order("created_at ASC")
	if !includeUnapproved {
		replyTx = replyTx.Where("is_approved = ?", true)
	}
	var replies []models.CommentModel
	if err := replyTx.Find(&replies).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	AttachReplies(comments, replies)
	return comments, pag, nil
}

// AttachReplies flattens every reply under its root top-level comment, in
// submission order. Replies whose root falls outside the given page (or
// whose chain is broken) are dropped from the view.
func AttachReplies(topLevel []models.CommentModel, replies []models.CommentModel) {
	parentOf := make(map[uint]*uint, len(replies))
	for i := range replies {
		parentOf[replies[i].ID] = replies[i].ParentID
	}

	rootIndex := make(map[uint]int, len(topLevel))
	for i := range topLevel {
		rootIndex[topLevel[i].ID] = i
	}

	for i := range replies {
		root := rootOf(replies[i].ParentID, parentOf)
		if root == nil {
			continue
		}
		if idx, ok := rootIndex[*root]; ok {
			topLevel[idx].Replies = append(topLevel[idx].Replies, replies[i])
		}
	}
}

// rootOf walks the parent chain up to the top-level ancestor.
func rootOf(parentID *uint, parentOf map[uint]*uint) *uint {
	for parentID != nil {
		next, isReply := parentOf[*parentID]
		if !isReply {
			// the parent is not itself a reply, so it is the root
			return parentID
		}
		parentID = next
	}
	return nil
}

// ModerationQueue lists pending comments newest first for admin review.
func (s *Service) ModerationQueue(q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Preload("Post").
		Preload("Parent").
		Where("is_approved = ?", false).
		Order("created_at DESC")

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// Approve marks a comment approved. Approving an already-approved comment
// is a no-op, not an error.
func (s *Service) Approve(id uint) (*models.CommentModel, error) {
	comment, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if comment.IsApproved {
		return comment, nil
	}
	if err := s.db.Model(comment).Update("is_approved", true).Error; err != nil {
		return nil, err
	}
	comment.IsApproved = true
	return comment, nil
}

// Like bumps the public like counter. There is no dedup; the counter is a
// plain crowd signal.
func (s *Service) Like(id uint) (*models.CommentModel, error) {
	comment, err := s.get(id)
	if err != nil {
		return nil, err
	}
	err = s.db.Model(comment).UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	if err != nil {
		return nil, err
	}
	comment.LikeCount++
	return comment, nil
}

// Delete removes a comment; deleting a top-level comment takes its replies
// with it.
func (s *Service) Delete(id uint) error {
	comment, err := s.get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if comment.ParentID == nil {
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.CommentModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(comment).Error
	})
}

func (s *Service) get(id uint) (*models.CommentModel, error) {
	var comment models.CommentModel
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// commentTarget reports whether a fetched post can take comments. A
// missing post and an unpublished one are equally not-found, so drafts
// stay invisible to readers.
func commentTarget(post *models.PostModel) error {
	if post == nil || !post.IsPublished {
		return errPostNotFound
	}
	return nil
}

// publishedPost resolves the comment target by slug.
func (s *Service) publishedPost(slug string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commentTarget(nil)
		}
		return nil, err
	}
	if err := commentTarget(&post); err != nil {
		return nil, err
	}
	return &post, nil
}
