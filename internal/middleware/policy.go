package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"brokersim/internal/auth"
	"brokersim/internal/domain"
)

// Policy declares who may reach a route: whether it is public and which
// roles (if any) are required. An empty role set admits any authenticated
// identity.
type Policy struct {
	Public bool
	Roles  []string
}

// Identity is the verified caller of a request. Handlers receive it
// through GetIdentity instead of re-parsing the token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	Anonymous bool
}

const identityKey = "identity"

// Guard returns middleware enforcing the given policy with two gates run
// in fixed order: authentication, then role authorization. A failed gate
// short-circuits before the handler executes, so auth failures never
// reveal whether the requested resource exists. Gate failures are domain
// errors, so they render through the same envelope handler failures use.
func Guard(codec *auth.TokenCodec, policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity{Anonymous: true}

			if !policy.Public {
				tokenString, ok := bearerToken(c.Request())
				if !ok {
					return domain.Unauthorized("Missing authentication token")
				}

				claims, err := codec.Verify(tokenString)
				if err != nil {
					return domain.Unauthorized("Invalid or expired token")
				}

				identity = Identity{
					UserID: claims.UserID,
					Email:  claims.Email,
					Role:   claims.Role,
				}
			}

			if len(policy.Roles) > 0 {
				if identity.Anonymous || !hasRole(identity.Role, policy.Roles) {
					return domain.Forbidden("Insufficient role for this resource")
				}
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. The
// Bearer header is the single supported transport; issuance and
// verification agree on it.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// GetIdentity extracts the verified identity from the echo context. It
// is only present on routes that went through Guard.
func GetIdentity(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
