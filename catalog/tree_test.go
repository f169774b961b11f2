package catalog

import (
	"testing"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh pool connection would get its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func mustCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *uint) models.Category {
	t.Helper()
	c := models.Category{Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// seedForest builds:
//
//	Produce -> Vegetables -> Root Vegetables -> Carrots
//	        -> Fruits
//	Equipment
func seedForest(t *testing.T, db *gorm.DB) map[string]models.Category {
	t.Helper()
	out := make(map[string]models.Category)

	produce := mustCategory(t, db, "Produce", "produce", nil)
	vegetables := mustCategory(t, db, "Vegetables", "vegetables", &produce.ID)
	rootVeg := mustCategory(t, db, "Root Vegetables", "root-veg", &vegetables.ID)
	carrots := mustCategory(t, db, "Carrots", "carrots", &rootVeg.ID)
	fruits := mustCategory(t, db, "Fruits", "fruits", &produce.ID)
	equipment := mustCategory(t, db, "Equipment", "equipment", nil)

	for _, c := range []models.Category{produce, vegetables, rootVeg, carrots, fruits, equipment} {
		out[c.Slug] = c
	}
	return out
}

func TestResolve(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	category, err := tree.Resolve("vegetables")
	require.NoError(t, err)
	assert.Equal(t, "Vegetables", category.Name)
}

func TestResolveUnknownSlug(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	_, err := tree.Resolve("no-such-category")
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, kind)
}

func TestDescendantIDsWalksFullDepth(t *testing.T) {
	db := testDB(t)
	cats := seedForest(t, db)
	tree := NewTree(db)

	// The chain under produce is four levels deep; every level must show up.
	ids, err := tree.DescendantIDs(cats["produce"].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{
		cats["produce"].ID,
		cats["vegetables"].ID,
		cats["root-veg"].ID,
		cats["carrots"].ID,
		cats["fruits"].ID,
	}, ids)
}

func TestDescendantIDsLeaf(t *testing.T) {
	db := testDB(t)
	cats := seedForest(t, db)
	tree := NewTree(db)

	ids, err := tree.DescendantIDs(cats["carrots"].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{cats["carrots"].ID}, ids)
}

func TestDescendantIDsCycleGuard(t *testing.T) {
	db := testDB(t)
	cats := seedForest(t, db)
	tree := NewTree(db)

	// Corrupt the forest: point produce's parent at its own deepest
	// descendant. The walk must terminate and report each id once.
	err := db.Model(&models.Category{}).
		Where("id = ?", cats["produce"].ID).
		Update("parent_id", cats["carrots"].ID).Error
	require.NoError(t, err)

	ids, err := tree.DescendantIDs(cats["produce"].ID)
	require.NoError(t, err)

	seen := make(map[uint]int)
	for _, id := range ids {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "id %d appeared %d times", id, n)
	}
}

func TestListChildrenTopLevel(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	nodes, err := tree.ListChildren(SlugAll)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Equipment", nodes[0].Name)
	assert.Equal(t, "Produce", nodes[1].Name)
}

func TestListChildrenNested(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	nodes, err := tree.ListChildren("produce")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	// Siblings ordered by name.
	assert.Equal(t, "Fruits", nodes[0].Name)
	assert.Equal(t, "Vegetables", nodes[1].Name)

	// The vegetables node carries its full subtree.
	require.Len(t, nodes[1].Children, 1)
	assert.Equal(t, "Root Vegetables", nodes[1].Children[0].Name)
	require.Len(t, nodes[1].Children[0].Children, 1)
	assert.Equal(t, "Carrots", nodes[1].Children[0].Children[0].Name)
}

func TestListChildrenUnknownSlug(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	_, err := tree.ListChildren("no-such-category")
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindNotFound, kind)
}

func TestListChildrenLeafIsEmptyNotError(t *testing.T) {
	db := testDB(t)
	seedForest(t, db)
	tree := NewTree(db)

	nodes, err := tree.ListChildren("carrots")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
