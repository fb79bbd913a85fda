package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/pkg/web"
)

// Keys and header constants for the session auth middleware.
const (
	AuthorizationHeaderKey  = "authorization"
	AuthorizationTypeBearer = "bearer"
	SessionKey              = "session"
)

// SessionGetter resolves a session token into the live session.
type SessionGetter interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// SessionFromContext returns the session the auth middleware stored.
func SessionFromContext(gctx *gin.Context) domain.Session {
	return gctx.MustGet(SessionKey).(domain.Session)
}

// AuthMiddleware rejects requests that do not carry a live session token.
// A token whose countdown has expired is indistinguishable from an unknown
// one: the session is already gone from the registry.
func AuthMiddleware(sessions SessionGetter) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authorizationHeader := gctx.GetHeader(AuthorizationHeaderKey)
		if len(authorizationHeader) == 0 {
			err := errors.New("authorization header is not provided")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		authorizationType := strings.ToLower(fields[0])
		if authorizationType != AuthorizationTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authorizationType)
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		token, err := uuid.Parse(fields[1])
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(domain.ErrSessionNotFound))
			return
		}

		session, err := sessions.Get(gctx.Request.Context(), token)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(SessionKey, session)
		gctx.Next()
	}
}
