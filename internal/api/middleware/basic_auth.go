package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/service"
	"course-catalog/pkg/response"
)

// ContextKeyUsername BasicAuth 注入的管理员用户名，Handler 通过该键读取
const ContextKeyUsername = "username"

// BasicAuth 管理端 HTTP Basic 认证中间件
// 凭据交给 Authenticator 校验，成功后把用户名注入上下文
func BasicAuth(auth service.Authenticator, realm string) gin.HandlerFunc {
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", challenge)
			response.Unauthorized(c, 10002, "缺少认证信息")
			c.Abort()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", challenge)
			response.Unauthorized(c, 10002, "用户名或密码错误")
			c.Abort()
			return
		}

		c.Set(ContextKeyUsername, identity)
		c.Next()
	}
}
