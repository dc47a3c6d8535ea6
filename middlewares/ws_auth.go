package middlewares

import (
	"net/http"
	"strings"

	"foodly/pkg/resp"
	"foodly/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware accepts the token from ?token= as well, browsers cannot
// set headers on a websocket handshake.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			resp.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		utils.SetIdentity(c, claims)
		c.Next()
	}
}
