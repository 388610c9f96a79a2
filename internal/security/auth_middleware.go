package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"integrity-gateway/internal/middleware"
	"integrity-gateway/pkg/response"
)

// ClaimsKey is the gin context key holding validated claims
const ClaimsKey = "auth_claims"

// AuthMiddleware validates bearer tokens on protected routes
type AuthMiddleware struct {
	jwtManager *JWTManager
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtManager *JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// RequireAuth aborts requests without a valid bearer token
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := middleware.GetCorrelationID(c)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				"Missing authorization header", correlationID))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				"Authorization header must be a bearer token", correlationID))
			return
		}

		claims, err := am.jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				"Invalid or expired token", correlationID))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
