package catalog

import (
	"strings"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/models"
	"gorm.io/gorm"
)

// Catalog lists and creates products scoped to the category tree.
type Catalog struct {
	db   *gorm.DB
	tree *Tree
}

// New creates a Catalog sharing the given Tree.
func New(db *gorm.DB, tree *Tree) *Catalog {
	return &Catalog{db: db, tree: tree}
}

// ListByCategory returns products whose category is the one named by slug
// or any of its descendants, newest first, each with seller summary and
// category name attached. The sentinel "all" skips the category filter.
// ownerID, when non-nil, restricts results to one seller.
func (c *Catalog) ListByCategory(slug string, ownerID *uint) ([]models.Product, error) {
	query := c.db.Preload("User").Preload("Category").Order("created_at DESC")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	if slug != SlugAll {
		category, err := c.tree.Resolve(slug)
		if err != nil {
			return nil, err
		}
		ids, err := c.tree.DescendantIDs(category.ID)
		if err != nil {
			return nil, err
		}
		query = query.Where("category_id IN ?", ids)
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByOwner returns one seller's products, newest first.
func (c *Catalog) ListByOwner(ownerID uint) ([]models.Product, error) {
	return c.ListByCategory(SlugAll, &ownerID)
}

// CreateProductInput carries the fields accepted for a new listing.
type CreateProductInput struct {
	Name         string
	Description  *string
	Price        float64
	CategorySlug string
	ImageURL     *string
}

// Create validates the input, resolves the category by slug and stores the
// product for the given seller.
func (c *Catalog) Create(userID uint, in CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Invalid("product name is required")
	}
	if in.Price <= 0 {
		return nil, apperr.Invalid("price must be positive")
	}

	category, err := c.tree.Resolve(in.CategorySlug)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  category.ID,
		ImageURL:    in.ImageURL,
	}
	if err := c.db.Create(&product).Error; err != nil {
		return nil, err
	}

	// Reload with the seller and category attached so the response matches
	// list items.
	if err := c.db.Preload("User").Preload("Category").First(&product, product.ID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
