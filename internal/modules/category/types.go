package category

import (
	"errors"

	"github.com/habariblog/core/internal/models"
)

var (
	errCategoryNotFound = errors.New("category not found")
	errCategoryInUse    = errors.New("category has posts assigned and cannot be deleted")
	errNameTaken        = errors.New("a category with that name already exists")
)

type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	NameSw      string `json:"name_sw"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	NameSw      *string `json:"name_sw"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

type categoryResponse struct {
	models.CategoryModel
	PostCount int64 `json:"post_count"`
}
