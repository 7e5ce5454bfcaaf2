package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akiblasco/SchedulerUBC/internal/api/middleware"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetTokenInfo 提取当前 Token 的 jti 与过期时间，用于登出
func MustGetTokenInfo(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.CtxTokenJTI)
	exp := c.GetTime(middleware.CtxTokenExp)
	if jti == "" || exp.IsZero() {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	return jti, exp, true
}
