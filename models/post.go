package models

import "time"

// Media types for posts
const (
	MediaText  = "text"
	MediaImage = "image"
	MediaVideo = "video"
)

// Post visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post represents the posts table
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Content    *string   `gorm:"type:text" json:"content"`
	MediaType  string    `gorm:"type:varchar(10);not null;default:text" json:"media_type"`
	MediaURL   *string   `gorm:"type:varchar(500)" json:"media_url"`
	Visibility string    `gorm:"type:varchar(10);not null;default:public;index" json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User     *UserSummary `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`

	// Aggregates computed per request, never stored.
	LikeCount int64 `gorm:"-" json:"like_count"`
	IsLiked   bool  `gorm:"-" json:"isLiked"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
