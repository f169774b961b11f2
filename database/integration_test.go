//go:build integration
// +build integration

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fahadhasan-x/AgriZoo/config"
	"github.com/fahadhasan-x/AgriZoo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// startPostgres runs a throwaway PostgreSQL container and returns config
// pointing at it.
func startPostgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("agrizoo_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return &config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "agrizoo_test",
		SSLMode:  "disable",
	}
}

func TestConnectMigrateSeed(t *testing.T) {
	cfg := startPostgres(t)

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, SeedData(db))

	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Greater(t, categories, int64(10))

	// Seeding is idempotent: running it again must not duplicate rows.
	require.NoError(t, SeedData(db))
	var again int64
	require.NoError(t, db.Model(&models.Category{}).Count(&again).Error)
	assert.Equal(t, categories, again)

	var products []models.Product
	require.NoError(t, db.Preload("User").Preload("Category").Find(&products).Error)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotNil(t, p.User)
		assert.NotNil(t, p.Category)
	}
}

func TestLikeUniqueConstraintTranslates(t *testing.T) {
	cfg := startPostgres(t)

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))

	user := models.User{Email: "dup@example.com", Password: "x", FullName: "Dup"}
	require.NoError(t, db.Create(&user).Error)
	content := "hello"
	post := models.Post{UserID: user.ID, Content: &content, MediaType: models.MediaText, Visibility: models.VisibilityPublic}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error)
	err = db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
