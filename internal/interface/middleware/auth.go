package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/pkg/helpers"
	"github.com/explorea/countries-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth is the authorization gate for protected routes. It extracts the
// bearer token from the Authorization header, verifies it, and injects the
// verified user ID into the Gin context. Missing and invalid tokens are
// both terminal 401s; expired tokens are distinguished in logs only.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "No token provided.", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			if logger != nil && errors.Is(err, helpers.ErrTokenExpired) {
				logger.WithField("path", c.FullPath()).Debug("expired token rejected")
			}
			resp := response.Error[any](c, http.StatusUnauthorized, "Token is not valid.", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
