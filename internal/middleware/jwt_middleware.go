package middleware

import (
	"fmt"
	"log"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// AdminLocal is the Fiber local holding the authenticated admin's name.
const AdminLocal = "admin"

// AdminRequired is a Fiber middleware that accepts only HS256 bearer tokens
// signed with secret and carrying an "admin" role claim. Tokens are issued
// by the identity service; this side only verifies them. A token must name
// its admin through "username" or, failing that, "sub".
func AdminRequired(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := ValidateToken(parts[1], secret)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		if role, _ := claims["role"].(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin role required",
			})
		}

		username, _ := claims["username"].(string)
		if username == "" {
			username, _ = claims["sub"].(string)
		}
		// Deletion confirmations are keyed by this name.
		if username = strings.TrimSpace(username); username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token does not name an administrator",
			})
		}
		c.Locals(AdminLocal, username)

		return c.Next()
	}
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func ValidateToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Admin returns the name stored by AdminRequired.
func Admin(c *fiber.Ctx) string {
	name, _ := c.Locals(AdminLocal).(string)
	return name
}
