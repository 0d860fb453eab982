package middleware

import (
	"fmt"
	"strings"

	"bms-backend/internal/models"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const adminLocal = "admin"

// AdminClaims is the identity carried by a dashboard bearer token.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin verifies the Authorization bearer token, resolves it to a
// caller identity and confirms the admin role before any resource service is
// invoked. Missing/invalid token is 401; a valid token without the admin role
// is 403.
func RequireAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Not authorized, no token")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Not authorized, no token")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "Not authorized, token failed")
		}
		if claims.Role != models.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals(adminLocal, claims)
		return c.Next()
	}
}

// GetAdmin returns the authenticated admin claims (nil outside guarded routes).
func GetAdmin(c *fiber.Ctx) *AdminClaims {
	if claims, ok := c.Locals(adminLocal).(*AdminClaims); ok {
		return claims
	}
	return nil
}
