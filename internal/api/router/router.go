package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/api/handler"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/api/middleware"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/jwt"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// Pinger 就绪检查使用的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps 路由层的可选依赖；未启用 Redis 时 Blacklist 与 Limiter 为 nil
type Deps struct {
	Blacklist middleware.BlacklistChecker
	Limiter   middleware.RateLimiter
	DB        Pinger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	if cfg.Observability.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger, cfg.Server.IsRelease()))
	r.Use(middleware.Logger(logger))
	if cfg.Observability.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders(cfg.Server.IsRelease()))
	if cfg.Server.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC()})
	})
	r.GET("/ready", func(c *gin.Context) {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Ping(ctx); err != nil {
				logger.Warn("就绪检查失败", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	if cfg.Observability.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	supervisorOnly := middleware.RoleAuth(model.RoleProfessor, model.RoleAdmin)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	api := r.Group("/api")
	{
		// 认证模块（无需认证，限流）
		auth := api.Group("/auth")
		{
			limit := middleware.RateLimit(deps.Limiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)
			auth.POST("/register", limit, h.Auth.Register)
			auth.POST("/login", limit, h.Auth.Login)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, deps.Blacklist))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/profile", h.Auth.UpdateProfile)
			authorized.PUT("/auth/change-password", h.Auth.ChangePassword)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户管理（教授与管理员）
			users := authorized.Group("/users", supervisorOnly)
			{
				// 固定路径需注册在 /:id 之前
				users.GET("/supervisor/dashboard", h.User.SupervisorDashboard)
				users.GET("/supervisor/activities", h.User.SupervisorActivities)
				users.GET("/supervisor/export", h.User.SupervisorExport)
				users.POST("/import", h.User.Import)

				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.PUT("/:id/assign-supervisor", adminOnly, h.User.AssignSupervisor)
				users.POST("/:id/reset-password", h.User.ResetPassword)
				users.GET("/:id/goals", h.User.Goals)
				users.GET("/:id/papers", h.User.Papers)
				users.GET("/:id/tasks", h.User.Tasks)
			}

			// 看板
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("", h.Dashboard.Shared)
				dashboard.GET("/personal", h.Dashboard.Personal)
			}

			// 目标
			goals := authorized.Group("/goals")
			{
				goals.GET("", h.Goal.List)
				goals.GET("/stats", h.Goal.Stats)
				goals.GET("/:id", h.Goal.Get)
				goals.POST("", h.Goal.Create)
				goals.PUT("/:id", h.Goal.Update)
				goals.DELETE("/:id", h.Goal.Delete)
			}

			// 论文
			papers := authorized.Group("/papers")
			{
				papers.GET("", h.Paper.List)
				papers.GET("/:id", h.Paper.Get)
				papers.POST("", h.Paper.Create)
				papers.PUT("/:id", h.Paper.Update)
				papers.DELETE("/:id", h.Paper.Delete)
				papers.POST("/:id/comments", h.Paper.AddComment)
			}

			// 任务
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.List)
				tasks.GET("/calendar", h.Task.Calendar)
				tasks.GET("/:id", h.Task.Get)
				tasks.POST("", h.Task.Create)
				tasks.PUT("/:id", h.Task.Update)
				tasks.DELETE("/:id", h.Task.Delete)
				tasks.POST("/:id/comments", h.Task.AddComment)
			}

			// 动态
			activities := authorized.Group("/activities")
			{
				activities.GET("", h.Activity.List)
				activities.DELETE("", supervisorOnly, h.Activity.Clear)
				activities.GET("/:id", h.Activity.Get)
				activities.DELETE("/:id", supervisorOnly, h.Activity.Delete)
			}

			// 通知
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Delete)
			}

			// 个人待办（教授与管理员）
			todos := authorized.Group("/personal-todos", supervisorOnly)
			{
				todos.GET("", h.PersonalTodo.List)
				todos.GET("/stats", h.PersonalTodo.Stats)
				todos.GET("/:id", h.PersonalTodo.Get)
				todos.POST("", h.PersonalTodo.Create)
				todos.PUT("/:id", h.PersonalTodo.Update)
				todos.DELETE("/:id", h.PersonalTodo.Delete)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, 40400, "Route not found")
	})

	return r
}
