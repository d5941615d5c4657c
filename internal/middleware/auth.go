package middleware

import (
	"errors"
	"fmt"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/jwt"
	"tailorshop/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	scopeKey     = "scope"
)

// TokenVerifier is the part of the token service the gate needs.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RequireAuth verifies the bearer token and stores the principal. It never touches
// the database.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := jwt.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			response.Fail(c, apperr.Authentication(err.Error()))
			return
		}
		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			msg := "invalid or expired token"
			if !errors.Is(err, jwt.ErrInvalidToken) {
				msg = err.Error()
			}
			response.Fail(c, apperr.Authentication(msg))
			return
		}

		p := access.Principal{ID: claims.UserID, Email: claims.Email, Role: domain.UserRole(claims.Role)}
		c.Set(principalKey, p)
		c.Set("user_id", p.ID)
		c.Set("role", string(p.Role))

		ctx, _ := logger.WithIdentity(c.Request.Context(), fmt.Sprintf("user:%d", p.ID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects principals whose role is not in roles. It must run after RequireAuth.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Fail(c, apperr.Authentication("authentication required"))
			return
		}
		if !p.Is(roles...) {
			response.Fail(c, apperr.Authorization("access denied: insufficient role"))
			return
		}
		c.Next()
	}
}

// Authorize evaluates policy for (role, resource, action) and stores the resulting scope.
func Authorize(policy *access.Policy, res access.Resource, act access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Fail(c, apperr.Authentication("authentication required"))
			return
		}
		eff := policy.Evaluate(p.Role, res, act)
		if eff == access.Deny {
			response.Fail(c, apperr.Authorization(fmt.Sprintf("role %s may not %s %s", p.Role, act, res)))
			return
		}
		c.Set(scopeKey, access.Scope{Principal: p, Effect: eff})
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// ScopeFrom returns the scope set by Authorize. Without one it falls back to a
// self-only scope for the principal.
func ScopeFrom(c *gin.Context) access.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if s, ok := v.(access.Scope); ok {
			return s
		}
	}
	p, _ := PrincipalFrom(c)
	return access.Scope{Principal: p, Effect: access.SelfOnly}
}
