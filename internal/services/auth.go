package services

import (
	"time"

	"feedify/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthService interface {
	IssueToken(db *gorm.DB, email string) (string, models.User, error)
}

// AuthServiceImpl signs short-lived bearer tokens for a known email. There
// are no credentials here: the token is a convenience over the x-user-id
// header, not an authentication mechanism.
type AuthServiceImpl struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{secret: []byte(secret), ttl: ttl}
}

func (s *AuthServiceImpl) IssueToken(db *gorm.DB, email string) (string, models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", models.User{}, translate(err, nil, nil, ErrUserNotFound)
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.User{}, err
	}

	return token, user, nil
}
