package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domuser "example.com/adminctl/internal/domain/user"
)

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrNotAdmin      = errors.New("bootstrap tokens are issued to administrators only")
)

// JWTService signs bootstrap access tokens for freshly provisioned accounts.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(secret string, expiration time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateToken(u *domuser.User) (string, error) {
	if !u.RoleCode.IsAdmin() {
		return "", ErrNotAdmin
	}
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Role:   string(u.RoleCode),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.LoginName(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
