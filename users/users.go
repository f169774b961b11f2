// Package users handles profile reads and updates, including profile
// picture replacement.
package users

import (
	"errors"
	"strings"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/feed"
	"github.com/fahadhasan-x/AgriZoo/models"
	"gorm.io/gorm"
)

// FileRemover removes a previously stored file, best-effort. Satisfied by
// storage.Store.
type FileRemover interface {
	Remove(url string)
}

// Service reads and updates user profiles.
type Service struct {
	db      *gorm.DB
	feed    *feed.Assembler
	remover FileRemover
}

// NewService creates a users Service.
func NewService(db *gorm.DB, assembler *feed.Assembler, remover FileRemover) *Service {
	return &Service{db: db, feed: assembler, remover: remover}
}

// Get returns one user.
func (s *Service) Get(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInput carries the editable profile fields.
type UpdateInput struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

// Update edits the profile. Full name is required; empty bio and location
// clear the stored values.
func (s *Service) Update(id uint, in UpdateInput) (*models.User, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperr.Invalid("full name is required")
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"full_name": strings.TrimSpace(in.FullName),
		"bio":       nullable(in.Bio),
		"location":  nullable(in.Location),
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// UpdatePicture stores the new picture URL and removes the old file. The
// removal is best-effort; a leftover file never fails the update.
func (s *Service) UpdatePicture(id uint, pictureURL string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if user.ProfilePicture != nil {
		s.remover.Remove(*user.ProfilePicture)
	}

	if err := s.db.Model(user).Update("profile_picture", pictureURL).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// ProfileView is a user with their public posts attached.
type ProfileView struct {
	models.User
	Posts []models.Post `json:"posts"`
}

// Profile assembles the public profile page: the user plus their public
// posts, enriched for the viewer. Private posts never appear here, not
// even for the owner; own-profile views use the posts listing instead.
func (s *Service) Profile(id uint, viewerID *uint) (*ProfileView, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	posts, err := s.feed.PublicPosts(id, viewerID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{User: *user, Posts: posts}, nil
}

func nullable(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
