package models

import "time"

// SlugMaxLen is the storage bound for post slugs.
const SlugMaxLen = 200

// PostModel is a blog post. Localized fields carry the Swahili rendition;
// the unsuffixed fields are English.
type PostModel struct {
	Base
	Title     string `json:"title"      gorm:"not null"`
	TitleSw   string `json:"title_sw"`
	Content   string `json:"content"    gorm:"type:longtext"`
	ContentSw string `json:"content_sw" gorm:"type:longtext"`
	Excerpt   string `json:"excerpt"    gorm:"type:text"`
	Slug      string `json:"slug"       gorm:"type:varchar(200);uniqueIndex;not null"`

	CategoryID *uint          `json:"category_id" gorm:"index"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	UserID     uint           `json:"user_id"     gorm:"index;not null"`
	User       *UserModel     `json:"user,omitempty"     gorm:"foreignKey:UserID"`
	Tags       []TagModel     `json:"tags,omitempty"     gorm:"many2many:post_tags"`

	IsPublished bool       `json:"is_published" gorm:"default:false;index"`
	IsFeatured  bool       `json:"is_featured"  gorm:"default:false;index"`
	ViewCount   int        `json:"view_count"   gorm:"default:0"`
	PublishedAt *time.Time `json:"published_at" gorm:"index"`

	FeaturedImageKey string `json:"-"`
	FeaturedImageURL string `json:"featured_image"`

	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description" gorm:"type:text"`
	MetaKeywords    StringSlice `json:"meta_keywords"    gorm:"type:json;serializer:json"`
}

func (PostModel) TableName() string { return "posts" }

// TagModel labels posts; many-to-many with PostModel.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_tags"`
}

func (TagModel) TableName() string { return "tags" }
