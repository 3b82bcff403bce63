package api

import (
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "current_user"

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (domain.UserRef, error)
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			logger.Error("Request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("Request", fields...)
	}
}

func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, domain.NewError(domain.KindUnauthenticated, "missing bearer token"))
			return
		}

		user, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			writeError(c, domain.NewError(domain.KindUnauthenticated, "invalid token"))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (domain.UserRef, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return domain.UserRef{}, false
	}
	user, ok := v.(domain.UserRef)
	return user, ok
}
