package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akiblasco/SchedulerUBC/config"
	"github.com/akiblasco/SchedulerUBC/internal/api/handler"
	"github.com/akiblasco/SchedulerUBC/internal/api/middleware"
	"github.com/akiblasco/SchedulerUBC/internal/model"
	"github.com/akiblasco/SchedulerUBC/pkg/jwt"
	"github.com/akiblasco/SchedulerUBC/pkg/redis"
)

// 登录限流：每个 IP 每分钟 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时跳过黑名单检查与登录限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		checker = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", middleware.RateLimit(limiter, loginRateLimit, loginRateWindow), h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, checker))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.GET("/:id", h.Course.GetCourse)
				courses.POST("/validate", h.Course.ValidateCourse)
				courses.POST("", admin, h.Course.CreateCourse)
				courses.POST("/upload", admin, h.Course.UploadCourses)
				courses.DELETE("/:id", admin, h.Course.DeleteCourse)
			}

			// 考场模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", admin, h.Room.CreateRoom)
				rooms.PUT("/:id", admin, h.Room.UpdateRoom)
				rooms.DELETE("/:id", admin, h.Room.DeleteRoom)
			}

			// 冲突模块
			conflicts := authorized.Group("/conflicts")
			{
				conflicts.GET("", h.Conflict.ListConflicts)
				conflicts.DELETE("/:index", admin, h.Conflict.DismissConflict)
			}

			// 排期表与导出
			authorized.GET("/schedule", h.Schedule.GetSchedule)
			authorized.GET("/export/schedule", h.Export.ExportSchedule)
		}
	}

	return r
}
