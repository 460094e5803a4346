package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrBadPassword  = errors.New("auth: wrong password")
	ErrUnauthorized = errors.New("auth: missing, unknown, or expired session")
)

// Service issues, validates, and expires admin session tokens. Admin access is
// a single shared secret, not per-user auth; that is a known limitation of the
// deployment, not something this layer papers over.
type Service struct {
	db           *gorm.DB
	password     string
	passwordHash string
}

func NewService(db *gorm.DB, password, passwordHash string) *Service {
	return &Service{db: db, password: password, passwordHash: passwordHash}
}

// Login checks the shared admin secret and, on match, mints a new opaque
// token valid for two hours.
func (s *Service) Login(password string) (string, error) {
	if !s.checkPassword(password) {
		return "", ErrBadPassword
	}

	token := uuid.New().String()
	sess := models.AdminSession{
		SessionToken: token,
		ExpiresAt:    time.Now().Add(config.SessionLifetime),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Authorize reports whether the token belongs to a live session. A session
// found past its expiry is deleted eagerly before Unauthorized is returned.
func (s *Service) Authorize(token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	var sess models.AdminSession
	if err := s.db.Where("session_token = ?", token).First(&sess).Error; err != nil {
		return ErrUnauthorized
	}

	if sess.Expired(time.Now()) {
		s.db.Delete(&sess)
		return ErrUnauthorized
	}
	return nil
}

// Logout deletes the session row for the token; a no-op when absent.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	s.db.Where("session_token = ?", token).Delete(&models.AdminSession{})
}

func (s *Service) checkPassword(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	return s.password != "" && password == s.password
}
