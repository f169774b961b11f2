// Package catalog owns the category hierarchy and the product listings
// scoped to it. Categories form a forest via a nullable parent pointer;
// every traversal loads the flat table once, builds a parent->children
// index in memory and walks it, so the depth of the tree is unbounded.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/models"
	"gorm.io/gorm"
)

// SlugAll is the sentinel slug meaning "no category filter".
const SlugAll = "all"

// Tree resolves category slugs and walks the category forest.
type Tree struct {
	db *gorm.DB
}

// NewTree creates a Tree on the given database handle.
func NewTree(db *gorm.DB) *Tree {
	return &Tree{db: db}
}

// Node is a category with its recursively assembled children.
type Node struct {
	models.Category
	Children []*Node `json:"children"`
}

// Resolve looks up a category by slug.
func (t *Tree) Resolve(slug string) (*models.Category, error) {
	var category models.Category
	err := t.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DescendantIDs returns rootID plus the id of every category reachable by
// following child links, at any depth. A visited set guards against a
// malformed parent pointer forming a cycle: traversal truncates instead of
// looping.
func (t *Tree) DescendantIDs(rootID uint) ([]uint, error) {
	index, err := t.childIndex()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, 8)
	visited := make(map[uint]bool)

	var walk func(id uint)
	walk = func(id uint) {
		if visited[id] {
			return
		}
		visited[id] = true
		ids = append(ids, id)
		for _, child := range index[id] {
			walk(child.ID)
		}
	}
	walk(rootID)

	return ids, nil
}

// ListChildren returns the immediate children of the category with the
// given slug, each carrying its full recursively assembled subtree. The
// sentinel "all" lists the top-level categories. Siblings are ordered by
// name at every level.
func (t *Tree) ListChildren(parentSlug string) ([]*Node, error) {
	index, err := t.childIndex()
	if err != nil {
		return nil, err
	}

	if parentSlug == SlugAll {
		return t.assemble(index, nil), nil
	}

	parent, err := t.Resolve(parentSlug)
	if err != nil {
		return nil, err
	}
	return t.assemble(index, &parent.ID), nil
}

// childIndex loads all categories in one pass and indexes them by parent
// id. Roots live under key 0.
func (t *Tree) childIndex() (map[uint][]models.Category, error) {
	var categories []models.Category
	if err := t.db.Find(&categories).Error; err != nil {
		return nil, err
	}

	index := make(map[uint][]models.Category)
	for _, c := range categories {
		var parent uint
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		index[parent] = append(index[parent], c)
	}
	for parent := range index {
		siblings := index[parent]
		sort.Slice(siblings, func(i, j int) bool {
			return strings.ToLower(siblings[i].Name) < strings.ToLower(siblings[j].Name)
		})
	}
	return index, nil
}

func (t *Tree) assemble(index map[uint][]models.Category, parentID *uint) []*Node {
	visited := make(map[uint]bool)

	var build func(id uint) []*Node
	build = func(id uint) []*Node {
		nodes := make([]*Node, 0, len(index[id]))
		for _, c := range index[id] {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			nodes = append(nodes, &Node{Category: c, Children: build(c.ID)})
		}
		return nodes
	}

	var root uint
	if parentID != nil {
		root = *parentID
		visited[root] = true
	}
	return build(root)
}
