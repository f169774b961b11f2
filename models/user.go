package models

import "time"

// User represents the users table
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName         string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Bio              *string    `gorm:"type:text" json:"bio"`
	Location         *string    `gorm:"type:varchar(255)" json:"location"`
	ProfilePicture   *string    `gorm:"type:varchar(500)" json:"profile_picture"`
	ResetToken       *string    `gorm:"type:varchar(255);index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserSummary is the slim user shape embedded in posts, comments and
// products. It reads from the users table.
type UserSummary struct {
	ID             uint    `json:"id"`
	FullName       string  `json:"full_name"`
	ProfilePicture *string `json:"profile_picture"`
}

// TableName maps UserSummary onto the users table
func (UserSummary) TableName() string {
	return "users"
}
