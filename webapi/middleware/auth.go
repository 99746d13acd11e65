// Package middleware extracts the caller identity from a bearer JWT.
package middleware

import (
	"errors"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles carried in the "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const identityKey = "identity"

// Identity is the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// JwtProtected validates the bearer token and stores the Identity of its
// "sub" and "role" claims on the request.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	secret := ""
	if cfg != nil {
		secret = cfg.Secret
	}
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(secret)},
		ErrorHandler:   jwtError,
		SuccessHandler: storeIdentity,
	})
}

func storeIdentity(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return jwtError(c, domain.ErrUnauthorized)
	}
	id, err := identityFromToken(token)
	if err != nil {
		return jwtError(c, err)
	}
	c.Locals(identityKey, id)
	return c.Next()
}

func identityFromToken(token *jwt.Token) (Identity, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, domain.ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, domain.ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleUser
	}
	return Identity{UserID: userID, Role: role}, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ProblemDetailsJSON(c, "Bad Request", err, "Missing or malformed JWT", fiber.StatusBadRequest)
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", err, "Invalid or expired JWT", fiber.StatusUnauthorized)
}

// AdminOnly rejects callers without the admin role. It must run after
// JwtProtected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		if !id.IsAdmin() {
			return common.ProblemDetailsJSON(c, "Forbidden", domain.ErrForbidden, "Admin role required")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the Identity stored by JwtProtected.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}
