package category

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/habariblog/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns categories ordered by sort_order. The public view shows
// active ones only; the admin view shows everything.
func (s *Service) List(includeInactive bool) ([]categoryResponse, error) {
	tx := s.db.Model(&models.CategoryModel{}).Order("sort_order ASC, name ASC")
	if !includeInactive {
		tx = tx.Where("is_active = ?", true)
	}

	var categories []models.CategoryModel
	if err := tx.Find(&categories).Error; err != nil {
		return nil, err
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		count, err := s.postCount(categories[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, categoryResponse{CategoryModel: categories[i], PostCount: count})
	}
	return out, nil
}

func (s *Service) Get(id uint) (*categoryResponse, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	count, err := s.postCount(cat.ID)
	if err != nil {
		return nil, err
	}
	return &categoryResponse{CategoryModel: cat, PostCount: count}, nil
}

func (s *Service) Create(dto *CreateCategoryDTO) (*categoryResponse, error) {
	cat := models.CategoryModel{
		Name:        dto.Name,
		NameSw:      dto.NameSw,
		Description: dto.Description,
		Color:       dto.Color,
		Icon:        dto.Icon,
		IsActive:    true,
	}
	if dto.IsActive != nil {
		cat.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		cat.SortOrder = *dto.SortOrder
	}

	if err := s.db.Create(&cat).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errNameTaken
		}
		return nil, err
	}
	return &categoryResponse{CategoryModel: cat}, nil
}

func (s *Service) Update(id uint, dto *UpdateCategoryDTO) (*categoryResponse, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.NameSw != nil {
		updates["name_sw"] = *dto.NameSw
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Color != nil {
		updates["color"] = *dto.Color
	}
	if dto.Icon != nil {
		updates["icon"] = *dto.Icon
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if len(updates) > 0 {
		if err := s.db.Model(&existing.CategoryModel).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, errNameTaken
			}
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete refuses to remove a category while any post references it.
func (s *Service) Delete(id uint) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	count, err := s.postCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errCategoryInUse
	}
	return s.db.Delete(&existing.CategoryModel).Error
}

func (s *Service) postCount(categoryID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.PostModel{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func isDuplicateKey(err error) bool {
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
