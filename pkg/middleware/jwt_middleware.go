package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"nearbite/pkg/utils"
)

// JWTAuthMiddleware requires a valid HS256 bearer token signed with secret.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("client_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}
