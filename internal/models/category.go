package models

// CategoryModel groups posts. Admin managed; cannot be removed while any
// post still references it.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null"`
	NameSw      string `json:"name_sw"`
	Description string `json:"description" gorm:"type:text"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"is_active"   gorm:"default:true;index"`
	SortOrder   int    `json:"sort_order"  gorm:"default:0"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
