package models

import "time"

// Product represents the products table
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	ImageURL    *string   `gorm:"type:varchar(500)" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User     *UserSummary     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *CategorySummary `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
