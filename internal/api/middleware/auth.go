package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/pkg/response"
	"github.com/d60-Lab/litreview/pkg/token"
)

const (
	// CtxUserID 认证通过后写入 gin context 的当前用户 id
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// Auth 统一登录守卫：所有需要身份的路由都挂这里，handler 只读 context
func Auth(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := maker.Parse(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID 读取认证身份；守卫之后一定存在
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
