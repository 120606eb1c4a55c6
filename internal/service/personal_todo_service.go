package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// PersonalTodoService 个人待办业务接口
//
// 仅教授和管理员可用，学生一律拒绝；每条待办只有所有者可见
type PersonalTodoService interface {
	List(ctx context.Context, actor policy.Actor, req *dto.TodoListRequest) ([]model.PersonalTodo, error)
	GetByID(ctx context.Context, actor policy.Actor, id string) (*model.PersonalTodo, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateTodoRequest) (*model.PersonalTodo, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateTodoRequest) (*model.PersonalTodo, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	Stats(ctx context.Context, actor policy.Actor) (*dto.TodoStats, error)
}

type personalTodoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonalTodoService 创建 PersonalTodoService 实例
func NewPersonalTodoService(repo *repository.Repository, logger *zap.Logger) PersonalTodoService {
	return &personalTodoService{repo: repo, logger: logger}
}

// ────────────────────── Query ──────────────────────

func (s *personalTodoService) List(ctx context.Context, actor policy.Actor, req *dto.TodoListRequest) ([]model.PersonalTodo, error) {
	if !policy.CanUsePersonalTodos(actor) {
		return nil, ErrTodoRoleDenied
	}

	todos, err := s.repo.PersonalTodo.ListByUser(ctx, actor.UserID, repository.TodoFilter{
		Type:     req.Type,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		s.logger.Error("查询个人待办失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return todos, nil
}

func (s *personalTodoService) GetByID(ctx context.Context, actor policy.Actor, id string) (*model.PersonalTodo, error) {
	if !policy.CanUsePersonalTodos(actor) {
		return nil, ErrTodoRoleDenied
	}

	todo, err := s.repo.PersonalTodo.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrTodoNotFound)
		if err != ErrTodoNotFound {
			s.logger.Error("查询个人待办失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	if !policy.CanAccessTodo(actor, todo) {
		return nil, ErrTodoForbidden
	}
	return todo, nil
}

func (s *personalTodoService) Stats(ctx context.Context, actor policy.Actor) (*dto.TodoStats, error) {
	todos, err := s.List(ctx, actor, &dto.TodoListRequest{})
	if err != nil {
		return nil, err
	}
	stats := countTodos(todos)
	return &stats, nil
}

// ────────────────────── Create ──────────────────────

func (s *personalTodoService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateTodoRequest) (*model.PersonalTodo, error) {
	if !policy.CanUsePersonalTodos(actor) {
		return nil, ErrTodoRoleDenied
	}

	todo := &model.PersonalTodo{
		UserID:      actor.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      orDefault(req.Status, model.TodoStatusPending),
		Priority:    orDefault(req.Priority, model.PriorityMedium),
		DueDate:     req.DueDate.Ptr(),
		Notes:       req.Notes,
	}
	if todo.Status == model.TodoStatusCompleted {
		now := nowUTC()
		todo.CompletedAt = &now
	}

	if err := s.repo.PersonalTodo.Create(ctx, todo); err != nil {
		s.logger.Error("创建个人待办失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return todo, nil
}

// ────────────────────── Update ──────────────────────

func (s *personalTodoService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateTodoRequest) (*model.PersonalTodo, error) {
	todo, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	completing := enteringCompleted(todo.Status, req.Status)

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Type != nil {
		todo.Type = *req.Type
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.DueDate.Set {
		todo.DueDate = req.DueDate.Ptr()
	}
	if req.Notes != nil {
		todo.Notes = *req.Notes
	}
	if completing {
		now := nowUTC()
		todo.CompletedAt = &now
	}

	if err := s.repo.PersonalTodo.Update(ctx, todo); err != nil {
		s.logger.Error("更新个人待办失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return todo, nil
}

// ────────────────────── Delete ──────────────────────

func (s *personalTodoService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.PersonalTodo.Delete(ctx, id); err != nil {
		s.logger.Error("删除个人待办失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
