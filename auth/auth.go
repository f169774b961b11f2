// Package auth issues and verifies credentials: signup, login, JWT
// issuance and the password-reset flow.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/config"
	"github.com/fahadhasan-x/AgriZoo/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetMailer delivers password-reset mail. Satisfied by mailer.Mailer.
type ResetMailer interface {
	SendPasswordReset(to, resetURL string) error
}

// Service handles signup, login and password resets.
type Service struct {
	db          *gorm.DB
	log         *logrus.Logger
	mailer      ResetMailer
	secret      []byte
	tokenTTL    time.Duration
	resetTTL    time.Duration
	frontendURL string
}

// NewService creates an auth Service.
func NewService(db *gorm.DB, log *logrus.Logger, mailer ResetMailer, cfg *config.AuthConfig, frontendURL string) *Service {
	return &Service{
		db:          db,
		log:         log,
		mailer:      mailer,
		secret:      []byte(cfg.JWTSecret),
		tokenTTL:    cfg.TokenTTL,
		resetTTL:    cfg.ResetTTL,
		frontendURL: frontendURL,
	}
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Location string `json:"location"`
}

// Signup registers a new user and returns it with a signed token.
func (s *Service) Signup(in SignupInput) (*models.User, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, "", apperr.Invalid("email, password and full name are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", apperr.Invalid("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:    in.Email,
		Password: string(hash),
		FullName: strings.TrimSpace(in.FullName),
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		user.Location = &loc
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.WithField("email", user.Email).Info("signup successful")
	return &user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	s.log.WithField("email", email).Info("login attempt")

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.WithField("email", email).Warn("login failed: user not found")
		return nil, "", apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.log.WithField("email", email).Warn("login failed: invalid password")
		return nil, "", apperr.Unauthorized("invalid password")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.WithField("email", email).Info("login successful")
	return &user, token, nil
}

// ForgotPassword stores a reset token for the account and mails the reset
// link.
func (s *Service) ForgotPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("no user found with this email")
	}
	if err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	expiry := time.Now().Add(s.resetTTL)

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		s.log.WithError(err).WithField("email", user.Email).Error("failed to send reset email")
		return err
	}
	return nil
}

// ResetPassword sets a new password for the account holding a live reset
// token and clears the token.
func (s *Service) ResetPassword(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperr.Invalid("token and new password are required")
	}

	var user models.User
	err := s.db.Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Invalid("invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password":           string(hash),
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
}

// issueToken signs an HS256 JWT carrying the user id.
func (s *Service) issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a token and returns the user id it carries.
func (s *Service) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Unauthorized("invalid token")
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, apperr.Unauthorized("invalid token")
	}
	return uint(id), nil
}
