package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/service"
)

// AuthMiddleware 是一個 Gin 中間件，透過身份提供者驗證請求的 bearer token
// 驗證失敗的請求在到達任何業務邏輯前被拒絕
func AuthMiddleware(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 檢查 Authorization 頭的格式
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		user, err := users.Authenticate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 將用戶信息設置到上下文中
		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}
