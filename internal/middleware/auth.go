package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"invoicely-backend/internal/auth"
)

// PrincipalKey is the fiber locals key the authenticated principal is
// stored under.
const PrincipalKey = "user"

// Protected guards a route: the bearer token must not be revoked, must
// verify against the access secret, and must belong to an active account.
// On success the principal is attached for downstream handlers.
func Protected(issuer *auth.Issuer, users auth.UserStore, blacklist auth.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractBearerToken(c.Get(fiber.HeaderAuthorization))

		// Revocation wins over everything else: a blacklisted token is
		// rejected even while its own expiry would still verify.
		if token != "" {
			revoked, err := blacklist.Exists(c.UserContext(), token)
			if err != nil {
				return err
			}
			if revoked {
				return unauthorized(c, "token has been revoked")
			}
		}

		claims, err := issuer.VerifyAccessToken(token)
		if err != nil {
			return unauthorized(c, "invalid token")
		}

		user, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil {
			return err
		}
		if user == nil {
			return unauthorized(c, "user not found")
		}
		if !user.IsActive {
			return unauthorized(c, "user account is inactive")
		}

		c.Locals(PrincipalKey, &auth.Principal{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			IsActive: user.IsActive,
		})
		return c.Next()
	}
}

// ExtractBearerToken pulls the token out of an Authorization header value,
// returning the empty string when the header is absent. The "Bearer "
// prefix is optional and case-insensitive.
func ExtractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return header[7:]
	}
	return header
}

// PrincipalFromContext returns the principal a Protected handler attached,
// or nil on an unguarded route.
func PrincipalFromContext(c *fiber.Ctx) *auth.Principal {
	principal, _ := c.Locals(PrincipalKey).(*auth.Principal)
	return principal
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
