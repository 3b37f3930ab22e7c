package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridehail/pkg/apierror"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "auth_token"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
	Token  string
}

// CanView reports whether the caller may see the record of the given
// participant: admins and services see everything, drivers and passengers
// only their own record.
func (p Principal) CanView(owner Role, id string) bool {
	switch p.Role {
	case RoleAdmin, RoleService:
		return true
	}
	return p.Role == owner && p.UserID == id
}

type Middleware struct {
	tokens *TokenManager
}

func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the bearer token and stores the principal in the gin context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierror.Respond(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierror.Respond(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			apierror.Respond(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, parts[1])

		c.Next()
	}
}

func (m *Middleware) RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			apierror.Respond(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		apierror.Respond(c, http.StatusForbidden, "Insufficient permissions")
	}
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return Principal{}, false
	}
	role, _ := c.Get(ContextRole)
	token, _ := c.Get(ContextToken)

	p := Principal{}
	p.UserID, _ = userID.(string)
	p.Role, _ = role.(Role)
	p.Token, _ = token.(string)
	return p, p.UserID != ""
}
