package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/pkg/jwt"
)

// Locals keys for the identity scope in Fiber.
const (
	LocalOwnerID    = "owner_id"
	LocalBusinessID = "business_id"
)

// ScopeMiddleware validates the Bearer token and puts the owner and business
// IDs into c.Locals. Every protected route resolves its data through them.
func ScopeMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		ownerID, businessID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if ownerID == "" || businessID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token missing owner or business"})
		}
		c.Locals(LocalOwnerID, ownerID)
		c.Locals(LocalBusinessID, businessID)
		return c.Next()
	}
}

// GetScope returns the identity scope set by ScopeMiddleware. The second
// return is false when the middleware did not run or the token was bad.
func GetScope(c *fiber.Ctx) (domain.Scope, bool) {
	ownerID, _ := c.Locals(LocalOwnerID).(string)
	businessID, _ := c.Locals(LocalBusinessID).(string)
	scope := domain.Scope{OwnerID: ownerID, BusinessID: businessID}
	return scope, scope.Valid()
}
