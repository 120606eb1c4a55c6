package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

const (
	defaultActivityLimit           = 20
	defaultSupervisorActivityLimit = 50
)

// ActivityService 动态业务接口
//
// 动态只由 recorder 写入，这里只提供查询与删除
type ActivityService interface {
	// ListMine 本人动态，默认最近 20 条
	ListMine(ctx context.Context, actor policy.Actor, req *dto.ActivityListRequest) ([]model.Activity, error)
	// ListAll 导师查看全体动态，默认最近 50 条，展开操作者
	ListAll(ctx context.Context, req *dto.SupervisorActivityRequest) ([]model.Activity, error)
	GetByID(ctx context.Context, actor policy.Actor, id string) (*model.Activity, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	// Clear 清空本人动态，返回删除条数
	Clear(ctx context.Context, actor policy.Actor) (int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) ListMine(ctx context.Context, actor policy.Actor, req *dto.ActivityListRequest) ([]model.Activity, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	activities, err := s.repo.Activity.ListRecent(ctx, repository.ActivityFilter{
		UserID: actor.UserID,
		Type:   req.Type,
		Limit:  limit,
	})
	if err != nil {
		s.logger.Error("查询动态失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return activities, nil
}

func (s *activityService) ListAll(ctx context.Context, req *dto.SupervisorActivityRequest) ([]model.Activity, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSupervisorActivityLimit
	}

	activities, err := s.repo.Activity.ListRecent(ctx, repository.ActivityFilter{
		UserID:   req.UserID,
		Type:     req.Type,
		Limit:    limit,
		WithUser: true,
	})
	if err != nil {
		s.logger.Error("查询全体动态失败", zap.Error(err))
		return nil, err
	}
	return activities, nil
}

func (s *activityService) GetByID(ctx context.Context, actor policy.Actor, id string) (*model.Activity, error) {
	activity, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewActivity(actor, activity) {
		return nil, ErrActivityForbidden
	}
	return activity, nil
}

func (s *activityService) find(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrActivityNotFound)
		if err != ErrActivityNotFound {
			s.logger.Error("查询动态失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	activity, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteActivity(actor, activity) {
		return ErrActivityForbidden
	}

	if err := s.repo.Activity.Delete(ctx, id); err != nil {
		s.logger.Error("删除动态失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *activityService) Clear(ctx context.Context, actor policy.Actor) (int64, error) {
	if !actor.IsSupervisor() {
		return 0, ErrActivityForbidden
	}

	n, err := s.repo.Activity.DeleteByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("清空动态失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return 0, err
	}
	return n, nil
}
