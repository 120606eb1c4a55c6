package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/api/handler"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/api/router"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/database"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/jwt"
	applogger "github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/logger"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/redis"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/tracing"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("LAB_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 链路追踪（可选）
	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Observability, logger)
	if err != nil {
		logger.Warn("链路追踪初始化失败，继续运行", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	// 4. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 4.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 5. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	// 接口字段只在连接成功时赋值，避免 nil 指针被包装成非 nil 接口
	var (
		rdb         *redis.Client
		svcDeps     service.Deps
		routerDeps  router.Deps
		redisStatus = "disabled"
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单、限流与动态事件发布将不可用", zap.Error(err))
		rdb = nil
	} else {
		svcDeps = service.Deps{Blacklist: rdb, Publisher: rdb}
		routerDeps.Blacklist = rdb
		routerDeps.Limiter = rdb
		redisStatus = "enabled"
	}

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, svcDeps, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	routerDeps.DB = repo
	engine := router.Setup(cfg, h, jwtMgr, routerDeps, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr), zap.String("redis", redisStatus))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("关闭链路追踪异常", zap.Error(err))
	}

	// 关闭数据库连接
	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
