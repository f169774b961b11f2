package models

import "time"

// Category represents the categories table. Categories form a tree via
// ParentID; top-level categories have a nil parent.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// CategorySummary is the slim category shape embedded in products. It
// reads from the categories table.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TableName maps CategorySummary onto the categories table
func (CategorySummary) TableName() string {
	return "categories"
}
