package middleware

import (
	"strings"

	"aprendo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// JWTAuth 解析 Authorization 头并把用户信息写入上下文
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			util.Unauthorized(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, secret)
		if err != nil {
			util.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}
