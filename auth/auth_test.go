package auth

import (
	"io"
	"testing"
	"time"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/config"
	"github.com/fahadhasan-x/AgriZoo/models"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeMailer struct {
	to       string
	resetURL string
	fail     bool
}

func (f *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if f.fail {
		return assert.AnError
	}
	f.to = to
	f.resetURL = resetURL
	return nil
}

func testService(t *testing.T) (*Service, *fakeMailer, *gorm.DB) {
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

	log := logrus.New()
	log.SetOutput(io.Discard)

	mail := &fakeMailer{}
	cfg := &config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		ResetTTL:  time.Hour,
	}
	return NewService(db, log, mail, cfg, "http://localhost:3000"), mail, db
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := testService(t)

	user, token, err := svc.Signup(SignupInput{
		Email:    "Amina@Example.com",
		Password: "hunter22",
		FullName: "Amina Rahman",
		Location: "Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", user.Email)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter22", user.Password)

	got, loginToken, err := svc.Login("amina@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	id, err := svc.ParseToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := testService(t)

	in := SignupInput{Email: "amina@example.com", Password: "pw", FullName: "Amina"}
	_, _, err := svc.Signup(in)
	require.NoError(t, err)

	_, _, err = svc.Signup(in)
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindInvalid, kind)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := testService(t)

	_, _, err := svc.Signup(SignupInput{Email: "amina@example.com", Password: "pw", FullName: "Amina"})
	require.NoError(t, err)

	_, _, err = svc.Login("nobody@example.com", "pw")
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindNotFound, kind)

	_, _, err = svc.Login("amina@example.com", "wrong")
	kind, _ = apperr.KindOf(err)
	assert.Equal(t, apperr.KindUnauthorized, kind)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail, _ := testService(t)

	_, _, err := svc.Signup(SignupInput{Email: "amina@example.com", Password: "old", FullName: "Amina"})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword("amina@example.com"))
	assert.Equal(t, "amina@example.com", mail.to)
	require.Contains(t, mail.resetURL, "http://localhost:3000/reset-password/")

	token := mail.resetURL[len("http://localhost:3000/reset-password/"):]
	require.Len(t, token, 64)

	require.NoError(t, svc.ResetPassword(token, "newpass"))

	_, _, err = svc.Login("amina@example.com", "old")
	require.Error(t, err)
	_, _, err = svc.Login("amina@example.com", "newpass")
	require.NoError(t, err)

	// The token is single-use.
	err = svc.ResetPassword(token, "again")
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindInvalid, kind)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := testService(t)

	err := svc.ForgotPassword("nobody@example.com")
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindNotFound, kind)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, mail, db := testService(t)

	_, _, err := svc.Signup(SignupInput{Email: "amina@example.com", Password: "old", FullName: "Amina"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword("amina@example.com"))

	token := mail.resetURL[len("http://localhost:3000/reset-password/"):]

	expired := time.Now().Add(-time.Minute)
	err = db.Model(&models.User{}).
		Where("email = ?", "amina@example.com").
		Update("reset_token_expiry", expired).Error
	require.NoError(t, err)

	err = svc.ResetPassword(token, "newpass")
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindInvalid, kind)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.ParseToken("not-a-token")
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	assert.Equal(t, apperr.KindUnauthorized, kind)
}
