package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
		if len(c.Errors) > 0 {
			logger.Error("HTTP request failed",
				zap.String("path", path),
				zap.String("errors", c.Errors.String()),
			)
		}
	}
}

// corsMiddleware allows any origin, matching the storefront deployed on a
// separate host.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// authRequired resolves the bearer token, or the token cookie, into a
// principal stored on the context.
func authRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			token = cookie
		}
		if token == "" {
			abortWithError(c, service.NewUnauthorized("Authentication required."))
			return
		}

		p, err := auth.ParseToken(token)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !principal(c).IsAdmin() {
			abortWithError(c, service.NewForbidden("Admin access required."))
			return
		}
		c.Next()
	}
}

func principal(c *gin.Context) service.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(service.Principal); ok {
			return p
		}
	}
	return service.Principal{}
}

// resolveUser returns the user a cart or wishlist request acts for. Clients
// still send userId; it has to match the token.
func resolveUser(c *gin.Context, claimed string) (string, bool) {
	p := principal(c)
	if err := service.Authorize(p, claimed); err != nil {
		writeError(c, err)
		return "", false
	}
	return p.UserID, true
}
