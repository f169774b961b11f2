// Package search runs substring matches over products, users and public
// posts and merges them into one envelope.
package search

import (
	"strings"

	"github.com/fahadhasan-x/AgriZoo/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Search type filters.
const (
	TypeAll      = "all"
	TypeProducts = "products"
	TypeUsers    = "users"
	TypePosts    = "posts"
)

// Aggregator runs the per-entity matchers.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates an Aggregator on the given database handle.
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Results is the merged search envelope. Lists are always non-nil.
type Results struct {
	Products []models.Product     `json:"products"`
	Users    []models.UserSummary `json:"users"`
	Posts    []models.Post        `json:"posts"`
}

// Search matches the query against the entities selected by typ. An empty
// query is not an error: it yields the envelope with every list empty.
// TypeAll runs the three matchers concurrently; they touch disjoint tables
// and write disjoint fields. An unrecognized typ falls back to products.
func (a *Aggregator) Search(query, typ string) (*Results, error) {
	results := &Results{
		Products: []models.Product{},
		Users:    []models.UserSummary{},
		Posts:    []models.Post{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	switch typ {
	case TypeAll:
		var g errgroup.Group
		g.Go(func() error {
			return a.matchProducts(pattern, &results.Products)
		})
		g.Go(func() error {
			return a.matchUsers(pattern, &results.Users)
		})
		g.Go(func() error {
			return a.matchPosts(pattern, &results.Posts)
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	case TypeUsers:
		if err := a.matchUsers(pattern, &results.Users); err != nil {
			return nil, err
		}
	case TypePosts:
		if err := a.matchPosts(pattern, &results.Posts); err != nil {
			return nil, err
		}
	default:
		if err := a.matchProducts(pattern, &results.Products); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// matchProducts matches name or description, newest first.
func (a *Aggregator) matchProducts(pattern string, out *[]models.Product) error {
	return a.db.
		Preload("User").
		Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(out).Error
}

// matchUsers matches full name, alphabetical.
func (a *Aggregator) matchUsers(pattern string, out *[]models.UserSummary) error {
	return a.db.
		Model(&models.UserSummary{}).
		Where("lower(full_name) LIKE ?", pattern).
		Order("full_name ASC").
		Find(out).Error
}

// matchPosts matches content on public posts only, regardless of viewer,
// newest first.
func (a *Aggregator) matchPosts(pattern string, out *[]models.Post) error {
	return a.db.
		Preload("User").
		Where("lower(content) LIKE ? AND visibility = ?", pattern, models.VisibilityPublic).
		Order("created_at DESC").
		Find(out).Error
}
