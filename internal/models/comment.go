package models

// CommentModel is a reader comment on a published post. Commenters are not
// authenticated; they supply a display name and email with each submission.
// Threading renders one level deep; deeper reply chains are flattened
// under the root comment at retrieval time.
type CommentModel struct {
	Base
	PostID uint       `json:"post_id" gorm:"index;not null"`
	Post   *PostModel `json:"post,omitempty" gorm:"foreignKey:PostID"`

	ParentID *uint          `json:"parent_id" gorm:"index"`
	Parent   *CommentModel  `json:"parent,omitempty"  gorm:"foreignKey:ParentID"`
	Replies  []CommentModel `json:"replies,omitempty" gorm:"foreignKey:ParentID"`

	Content       string `json:"content"        gorm:"type:text;not null"`
	AuthorName    string `json:"author_name"    gorm:"not null"`
	AuthorEmail   string `json:"author_email"   gorm:"not null"`
	AuthorWebsite string `json:"author_website"`

	IsApproved bool   `json:"is_approved" gorm:"default:false;index"`
	LikeCount  int    `json:"like_count"  gorm:"default:0"`
	IP         string `json:"-"`
	Agent      string `json:"-" gorm:"type:varchar(512)"`
}

func (CommentModel) TableName() string { return "comments" }
