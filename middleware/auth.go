package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"travel-booking/constants"
	"travel-booking/logger"
	"travel-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth builds permission checking handlers around a token Verifier.
type Auth struct {
	verifier *Verifier
}

func NewAuth(verifier *Verifier) *Auth {
	return &Auth{verifier: verifier}
}

// RequireAdmin allows administrators only.
func (a *Auth) RequireAdmin() fiber.Handler {
	return a.IsAuthenticated(constants.AdminPermissions)
}

// RequireAuthentication only requires a valid token.
func (a *Auth) RequireAuthentication() fiber.Handler {
	return a.IsAuthenticated([]string{constants.PermAny})
}

// IsAuthenticated checks the bearer token (or the "access" cookie) and stores
// the claims in c.Locals("user") and the permission set in c.Locals("permissions").
func (a *Auth) IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if authHeader := c.Get("Authorization"); authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			logger.Warnw("JWT verification failed", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		permissions := extractUserPermissionsFromClaims(claims)
		if !hasAnyPermission(permissions, requiredPermissions) {
			logger.Warnw("Access denied - insufficient permissions", "path", c.Path(), "username", claims["username"])
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("user", claims)
		c.Locals("permissions", permissions)
		return c.Next()
	}
}

func hasAnyPermission(granted map[string]bool, required []string) bool {
	for _, p := range required {
		if p == constants.PermAny || granted[p] {
			return true
		}
	}
	return false
}

// UserID returns the numeric id of the authenticated user from the "user_id"
// claim, falling back to "sub".
func UserID(c *fiber.Ctx) (uint, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("no authenticated user")
	}
	for _, key := range []string{"user_id", "sub"} {
		switch v := claims[key].(type) {
		case float64:
			if v > 0 {
				return uint(v), nil
			}
		case string:
			if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
				return uint(id), nil
			}
		}
	}
	return 0, fmt.Errorf("user id not found in token")
}

func extractUserPermissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}
	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}
	return permissionSet
}
