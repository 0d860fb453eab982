package auth

import (
	"context"
	"time"

	"bms-backend/internal/middleware"
	"bms-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service authenticates dashboard operators and issues bearer tokens.
type Service struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// Login finds the admin by email and verifies the password. Returns the
// account and a signed bearer token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.Admin, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", ErrEmailPasswordRequired
	}
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.GenerateToken(&admin)
	if err != nil {
		return nil, "", err
	}
	return &admin, token, nil
}

// GenerateToken signs a bearer token carrying the admin identity and role.
func (s *Service) GenerateToken(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := middleware.AdminClaims{
		AdminID: admin.ID.String(),
		Name:    admin.Name,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

// HashPassword produces the bcrypt hash stored on an admin account.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
