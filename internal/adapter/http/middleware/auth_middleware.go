package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/infrastructure/auth"
	"gestion_comercial/pkg"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// TokenValidator resolves a bearer token into an actor.
type TokenValidator interface {
	ValidateToken(token string) (entities.Actor, error)
}

// RequireActor rejects requests without a valid "Bearer <token>" header and
// stores the resolved actor in the gin context.
func RequireActor(validator TokenValidator) gin.HandlerFunc {
	if validator == nil {
		return func(c *gin.Context) {
			appErr := pkg.NewDomainErrorSimple("AUTH_NOT_CONFIGURED", "Authentication is not configured", http.StatusInternalServerError)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authorization header is required", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Use the format 'Bearer <token>'", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		actor, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token expired"
			}
			log.Printf("[auth][middleware] token rejected path=%s err=%v", c.FullPath(), err)
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", msg, http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor stored by RequireActor.
func ActorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}

// SetActor stores actor in the gin context.
func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(actorContextKey, actor)
}
