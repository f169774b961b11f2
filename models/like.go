package models

import "time"

// Like represents the likes table. The (post_id, user_id) pair is unique:
// the existence of the row is the liked state.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
