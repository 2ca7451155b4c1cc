package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Context locals set by the gates.
const (
	AdminIDKey = "admin_id"
	UserIDKey  = "user_id"
)

// AdminAuth gates admin routes. It verifies the bearer token (or the jwt
// cookie) against the admin secret and stores the caller id in locals.
func AdminAuth(secret string) fiber.Handler {
	return gate(secret, "admin", AdminIDKey)
}

// UserAuth gates user routes with the user secret. Because each gate has its
// own secret, a user token can never authorize an admin route.
func UserAuth(secret string) fiber.Handler {
	return gate(secret, "user", UserIDKey)
}

func gate(secret, role, localKey string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "No token provided"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
		}
		id, idOK := claims["id"].(string)
		tokenRole, roleOK := claims["role"].(string)
		if !idOK || !roleOK || tokenRole != role {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

// bearerToken reads the Authorization header first and falls back to the
// httpOnly jwt cookie, so both presentation forms work on every gated route.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("jwt")
}
