package service

import (
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Goal         GoalService
	Paper        PaperService
	Task         TaskService
	Activity     ActivityService
	Notification NotificationService
	PersonalTodo PersonalTodoService
	Dashboard    DashboardService
	Export       ExportService
	Calendar     CalendarService
}

// Deps 可选的外部依赖；未启用 Redis 时两者均为 nil
type Deps struct {
	Blacklist TokenBlacklist
	Publisher EventPublisher
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	rec := newRecorder(repo, deps.Publisher, logger.Named("recorder"))

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, deps.Blacklist, logger),
		User:         NewUserService(&cfg.Dashboard, repo, logger),
		Goal:         NewGoalService(repo, rec, logger),
		Paper:        NewPaperService(repo, rec, logger),
		Task:         NewTaskService(repo, rec, logger),
		Activity:     NewActivityService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		PersonalTodo: NewPersonalTodoService(repo, logger),
		Dashboard:    NewDashboardService(&cfg.Dashboard, repo, logger),
		Export:       NewExportService(&cfg.Dashboard, repo, logger),
		Calendar:     NewCalendarService(cfg.Server.BaseURL, repo, logger),
	}
}
