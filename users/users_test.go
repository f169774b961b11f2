package users

import (
	"testing"
	"time"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/feed"
	"github.com/fahadhasan-x/AgriZoo/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Remove(url string) {
	f.removed = append(f.removed, url)
}

func testService(t *testing.T) (*Service, *fakeRemover, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	remover := &fakeRemover{}
	return NewService(db, feed.NewAssembler(db), remover), remover, db
}

func mustUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", FullName: name}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestGetUnknownUser(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.Get(42)
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindNotFound, kind)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, db := testService(t)
	user := mustUser(t, db, "Amina", "amina@example.com")

	updated, err := svc.Update(user.ID, UpdateInput{
		FullName: "Amina Rahman",
		Bio:      "Grower of carrots",
		Location: "Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina Rahman", updated.FullName)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Grower of carrots", *updated.Bio)

	// Empty optional fields clear stored values.
	updated, err = svc.Update(user.ID, UpdateInput{FullName: "Amina Rahman"})
	require.NoError(t, err)
	assert.Nil(t, updated.Bio)
	assert.Nil(t, updated.Location)

	_, err = svc.Update(user.ID, UpdateInput{FullName: "  "})
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindInvalid, kind)
}

func TestUpdatePictureRemovesOldFile(t *testing.T) {
	svc, remover, db := testService(t)
	user := mustUser(t, db, "Amina", "amina@example.com")

	updated, err := svc.UpdatePicture(user.ID, "http://files/uploads/new1.png")
	require.NoError(t, err)
	require.NotNil(t, updated.ProfilePicture)
	assert.Empty(t, remover.removed)

	updated, err = svc.UpdatePicture(user.ID, "http://files/uploads/new2.png")
	require.NoError(t, err)
	assert.Equal(t, "http://files/uploads/new2.png", *updated.ProfilePicture)
	assert.Equal(t, []string{"http://files/uploads/new1.png"}, remover.removed)
}

func TestProfileShowsPublicPostsOnly(t *testing.T) {
	svc, _, db := testService(t)
	user := mustUser(t, db, "Amina", "amina@example.com")

	pub := "public words"
	priv := "private words"
	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Content: &pub, MediaType: models.MediaText, Visibility: models.VisibilityPublic, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Content: &priv, MediaType: models.MediaText, Visibility: models.VisibilityPrivate, CreatedAt: base.Add(time.Minute)}).Error)

	profile, err := svc.Profile(user.ID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina", profile.FullName)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, "public words", *profile.Posts[0].Content)
}
