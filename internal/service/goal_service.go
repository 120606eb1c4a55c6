package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// GoalService 目标业务接口
//
// 列表对所有登录用户开放；单条读取与写操作限创建者或导师
type GoalService interface {
	List(ctx context.Context, req *dto.GoalListRequest) ([]model.Goal, error)
	GetByID(ctx context.Context, actor policy.Actor, id string) (*model.Goal, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateGoalRequest) (*model.Goal, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateGoalRequest) (*model.Goal, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	Stats(ctx context.Context, actor policy.Actor) ([]dto.GoalTypeStats, error)
}

type goalService struct {
	repo   *repository.Repository
	rec    *recorder
	logger *zap.Logger
}

// NewGoalService 创建 GoalService 实例
func NewGoalService(repo *repository.Repository, rec *recorder, logger *zap.Logger) GoalService {
	return &goalService{repo: repo, rec: rec, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *goalService) List(ctx context.Context, req *dto.GoalListRequest) ([]model.Goal, error) {
	startFrom, err := parseDateFilter(req.StartDate)
	if err != nil {
		return nil, err
	}
	endTo, err := parseDateFilter(req.EndDate)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.Goal.List(ctx, repository.GoalFilter{
		Type:      req.Type,
		Status:    req.Status,
		StartFrom: startFrom,
		EndTo:     endTo,
	})
	if err != nil {
		s.logger.Error("查询目标列表失败", zap.Error(err))
		return nil, err
	}
	return goals, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *goalService) GetByID(ctx context.Context, actor policy.Actor, id string) (*model.Goal, error) {
	goal, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewGoal(actor, goal) {
		return nil, ErrGoalForbidden
	}
	return goal, nil
}

func (s *goalService) find(ctx context.Context, id string) (*model.Goal, error) {
	goal, err := s.repo.Goal.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrGoalNotFound)
		if err != ErrGoalNotFound {
			s.logger.Error("查询目标失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return goal, nil
}

// ────────────────────── Create ──────────────────────

func (s *goalService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateGoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:      actor.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    orDefault(req.Priority, model.PriorityMedium),
		Status:      orDefault(req.Status, model.GoalStatusNotStarted),
		StartDate:   req.StartDate.Ptr(),
		EndDate:     req.EndDate.Ptr(),
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if assignee := emptyToNil(req.AssignedTo); assignee != nil {
		if err := s.checkAssignee(ctx, *assignee); err != nil {
			return nil, err
		}
		assignedBy := actor.UserID
		goal.AssignedToID = assignee
		goal.AssignedByID = &assignedBy
	}
	if goal.Status == model.GoalStatusCompleted {
		completeGoal(goal)
	}

	err := s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Goal.Create(ctx, goal); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeGoal,
			fmt.Sprintf("Created %s goal", goal.Type), goal.Title, goal.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("创建目标失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	return s.find(ctx, goal.ID)
}

// ────────────────────── Update ──────────────────────

func (s *goalService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditGoal(actor, goal) {
		return nil, ErrGoalForbidden
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" && !sameID(goal.AssignedToID, *req.AssignedTo) {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	completing := enteringCompleted(goal.Status, req.Status)
	applyGoalUpdate(goal, actor, req)
	if completing {
		completeGoal(goal)
	}

	action := "Updated goal"
	if req.Status != nil && *req.Status == model.GoalStatusCompleted {
		action = "Completed goal"
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Goal.Update(ctx, goal); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeGoal, action, goal.Title, goal.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("更新目标失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.find(ctx, id)
}

func (s *goalService) checkAssignee(ctx context.Context, userID string) error {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		err = notFound(err, ErrGoalAssignee)
		if err != ErrGoalAssignee {
			s.logger.Error("查询指派用户失败", zap.String("user_id", userID), zap.Error(err))
		}
		return err
	}
	return nil
}

func sameID(cur *string, id string) bool {
	return cur != nil && *cur == id
}

// applyGoalUpdate assignedTo 为 "" 时清除指派；改派时指派人记为操作者
func applyGoalUpdate(goal *model.Goal, actor policy.Actor, req *dto.UpdateGoalRequest) {
	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Type != nil {
		goal.Type = *req.Type
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if req.StartDate.Set {
		goal.StartDate = req.StartDate.Ptr()
	}
	if req.EndDate.Set {
		goal.EndDate = req.EndDate.Ptr()
	}
	switch {
	case req.AssignedTo == nil:
	case *req.AssignedTo == "":
		goal.AssignedToID = nil
		goal.AssignedByID = nil
		goal.AssignedTo = nil
		goal.AssignedBy = nil
	case !sameID(goal.AssignedToID, *req.AssignedTo):
		assignee, assignedBy := *req.AssignedTo, actor.UserID
		goal.AssignedToID = &assignee
		goal.AssignedByID = &assignedBy
		goal.AssignedTo = nil
		goal.AssignedBy = nil
	}
}

// completeGoal 进入 completed 时写入派生字段
func completeGoal(goal *model.Goal) {
	now := nowUTC()
	goal.CompletedAt = &now
	goal.Progress = 100
}

// ────────────────────── Delete ──────────────────────

func (s *goalService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	goal, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanEditGoal(actor, goal) {
		return ErrGoalForbidden
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Goal.Delete(ctx, id); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeGoal, "Deleted goal", goal.Title, model.GoalRef{})
		return nil
	})
	if err != nil {
		s.logger.Error("删除目标失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *goalService) Stats(ctx context.Context, actor policy.Actor) ([]dto.GoalTypeStats, error) {
	rows, err := s.repo.Goal.StatsByType(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("统计目标失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	stats := make([]dto.GoalTypeStats, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, dto.GoalTypeStats{
			Type:        r.Type,
			Total:       r.Total,
			Completed:   r.Completed,
			InProgress:  r.InProgress,
			AvgProgress: r.AvgProgress,
		})
	}
	return stats, nil
}
