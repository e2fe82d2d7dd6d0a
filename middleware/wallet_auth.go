package middleware

import (
	"net/http"
	"strings"

	"coladay/utils"

	"github.com/gin-gonic/gin"
)

// ContextWalletAddress is the gin context key carrying the authenticated
// wallet address.
const ContextWalletAddress = "walletAddress"

// WalletAuthMiddleware resolves the requester's wallet address from the
// bearer session token. A missing or invalid identity is the persistent
// 401 case the client surfaces as a banner, not a per-action notice.
func WalletAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Please connect a wallet.",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Please connect a wallet.",
			})
			return
		}

		address, err := utils.ExtractAddressFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Please connect a wallet.",
			})
			return
		}

		c.Set(ContextWalletAddress, address)
		c.Next()
	}
}
