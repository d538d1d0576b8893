package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

const (
	CtxUserIDKey    = "userID"
	CtxPrincipalKey = "principal"
)

// UserLookup resolves the user a session token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Protect requires a valid session token, read from the Authorization
// bearer header first and the token cookie second. The token's user must
// still exist; its id and role are stored in the Gin context.
func Protect(jwt *helpers.JWTManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(helpers.SessionCookie)
		}
		if token == "" {
			_ = c.Error(apperror.Unauthorized("Not authorized to access this route"))
			c.Abort()
			return
		}
		userID, err := jwt.VerifySessionToken(token)
		if err != nil {
			_ = c.Error(apperror.Unauthorized("Not authorized to access this route"))
			c.Abort()
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if errors.Is(err, apperror.ErrNotFound) {
			_ = c.Error(apperror.Unauthorized("Not authorized to access this route"))
			c.Abort()
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxPrincipalKey, u.Principal())
		c.Next()
	}
}

// Authorize admits only principals whose role is listed. Must run after Protect.
func Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		_ = c.Error(apperror.Forbidden("User role %s is not authorized to access this route", p.Role))
		c.Abort()
	}
}

// Principal returns the authenticated caller, or the zero value on public routes.
func Principal(c *gin.Context) entity.Principal {
	if v, ok := c.Get(CtxPrincipalKey); ok {
		if p, ok := v.(entity.Principal); ok {
			return p
		}
	}
	return entity.Principal{}
}

func bearerToken(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
