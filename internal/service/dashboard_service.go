package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// DashboardService 看板业务接口
type DashboardService interface {
	// Shared 协作看板：全体数据与最近动态，附成员总数
	Shared(ctx context.Context) (*dto.DashboardResponse, error)
	// Personal 个人看板：仅与调用者相关的数据
	Personal(ctx context.Context, actor policy.Actor) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	cfg    *config.DashboardConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(cfg *config.DashboardConfig, repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{cfg: cfg, repo: repo, logger: logger}
}

func (s *dashboardService) Shared(ctx context.Context) (*dto.DashboardResponse, error) {
	var members int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.repo.User.Count(gctx)
		return err
	})

	var snap snapshot
	g.Go(func() error {
		var err error
		snap, err = loadSnapshot(gctx, s.repo, snapshotQuery{ActivityLimit: s.cfg.SharedActivityLimit})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("加载协作看板失败", zap.Error(err))
		return nil, err
	}

	resp := buildDashboard(snap)
	resp.TeamMembers = &members
	return resp, nil
}

func (s *dashboardService) Personal(ctx context.Context, actor policy.Actor) (*dto.DashboardResponse, error) {
	snap, err := loadSnapshot(ctx, s.repo, snapshotQuery{
		UserID:        actor.UserID,
		ActivityLimit: s.cfg.PersonalActivityLimit,
	})
	if err != nil {
		s.logger.Error("加载个人看板失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return buildDashboard(snap), nil
}

// snapshotQuery 看板读取范围
type snapshotQuery struct {
	// UserID 为空读取全体；否则只读该用户的目标、署名论文、参与任务与动态
	UserID string
	// ActivityLimit 为 0 时不读取动态
	ActivityLimit int
}

// loadSnapshot 并发读取看板数据，任一查询失败即整体失败
func loadSnapshot(ctx context.Context, repo *repository.Repository, q snapshotQuery) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		goals, err := repo.Goal.List(gctx, repository.GoalFilter{UserID: q.UserID})
		snap.Goals = goals
		return err
	})
	g.Go(func() error {
		papers, err := repo.Paper.List(gctx, repository.PaperFilter{AuthorID: q.UserID})
		snap.Papers = papers
		return err
	})
	g.Go(func() error {
		tasks, err := repo.Task.List(gctx, repository.TaskFilter{ParticipantID: q.UserID})
		snap.Tasks = tasks
		return err
	})
	if q.ActivityLimit > 0 {
		g.Go(func() error {
			activities, err := repo.Activity.ListRecent(gctx, repository.ActivityFilter{
				UserID:   q.UserID,
				Limit:    q.ActivityLimit,
				WithUser: true,
			})
			snap.Activities = activities
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}
