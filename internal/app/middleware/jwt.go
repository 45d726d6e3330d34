package middleware

import (
	"strings"

	"aicp-http-service/internal/domain/services"

	"github.com/gin-gonic/gin"
)

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Identify 解析登录令牌并把用户ID放入上下文
// 令牌缺失或无效时请求照常处理，接口不依赖令牌鉴权
func Identify(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || jwtService == nil {
			c.Next()
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err == nil {
			c.Set("userID", claims.UserID)
		}
		c.Next()
	}
}

// CurrentUserID 返回令牌中的用户ID
func CurrentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
