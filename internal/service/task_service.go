package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// TaskService 任务业务接口
//
// 列表与详情对所有登录用户开放；修改、删除限指派人、被指派人或导师
type TaskService interface {
	List(ctx context.Context, req *dto.TaskListRequest) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateTaskRequest) (*model.Task, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	AddComment(ctx context.Context, actor policy.Actor, id string, req *dto.CommentRequest) (*model.Task, error)
}

type taskService struct {
	repo   *repository.Repository
	rec    *recorder
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, rec *recorder, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, rec: rec, logger: logger}
}

// ────────────────────── Query ──────────────────────

func (s *taskService) List(ctx context.Context, req *dto.TaskListRequest) ([]model.Task, error) {
	tasks, err := s.repo.Task.List(ctx, repository.TaskFilter{
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrTaskNotFound)
		if err != ErrTaskNotFound {
			s.logger.Error("查询任务失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return task, nil
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateTaskRequest) (*model.Task, error) {
	if req.DueDate == nil || req.DueDate.IsZero() {
		return nil, ErrTaskDueDateRequired
	}

	// 1. 未指定时指派给自己；指派他人需确认用户存在
	assignee := orDefault(req.AssignedTo, actor.UserID)
	if assignee != actor.UserID {
		if err := s.checkAssignee(ctx, assignee); err != nil {
			return nil, err
		}
	}
	if err := s.checkRelatedPaper(ctx, req.RelatedPaper); err != nil {
		return nil, err
	}

	now := nowUTC()
	task := &model.Task{
		Title:          req.Title,
		Description:    req.Description,
		AssignedByID:   actor.UserID,
		AssignedToID:   assignee,
		Status:         orDefault(req.Status, model.TaskStatusPending),
		Priority:       orDefault(req.Priority, model.PriorityMedium),
		DueDate:        req.DueDate.Time,
		EstimatedHours: req.EstimatedHours,
		RelatedPaperID: emptyToNil(req.RelatedPaper),
		Attachments:    toAttachments(req.Attachments, now),
		Tags:           req.Tags,
	}
	if task.Status == model.TaskStatusCompleted {
		task.CompletedAt = &now
	}

	// 2. 写入任务、动态，指派他人时通知被指派人
	err := s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Task.Create(ctx, task); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeTask, "Created new task", task.Title, task.Ref())
		if task.AssignedToID != actor.UserID {
			fx.notify(task.AssignedToID, model.NotificationTypeTask, "新任务指派",
				fmt.Sprintf("您被指派了任务: %s", task.Title), task.Ref())
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建任务失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, task.ID)
}

func (s *taskService) checkAssignee(ctx context.Context, userID string) error {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		return notFound(err, ErrAssigneeNotFound)
	}
	return nil
}

func (s *taskService) checkRelatedPaper(ctx context.Context, paperID *string) error {
	if paperID == nil || *paperID == "" {
		return nil
	}
	if _, err := s.repo.Paper.GetByID(ctx, *paperID); err != nil {
		return notFound(err, ErrRelatedPaperNotFound)
	}
	return nil
}

func toAttachments(in []dto.AttachmentInput, uploadedAt time.Time) []model.Attachment {
	out := make([]model.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, model.Attachment{Name: a.Name, URL: a.URL, UploadedAt: uploadedAt})
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditTask(actor, task) {
		return nil, ErrTaskForbidden
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" && *req.AssignedTo != task.AssignedToID {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
	}
	if err := s.checkRelatedPaper(ctx, req.RelatedPaper); err != nil {
		return nil, err
	}

	completing := enteringCompleted(task.Status, req.Status)
	applyTaskUpdate(task, req)
	if completing {
		now := nowUTC()
		task.CompletedAt = &now
	}

	action := "Updated task"
	if req.Status != nil && *req.Status == model.TaskStatusCompleted {
		action = "Completed task"
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Task.Update(ctx, task); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeTask, action, task.Title, task.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("更新任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func applyTaskUpdate(task *model.Task, req *dto.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		task.AssignedToID = *req.AssignedTo
		task.AssignedTo = nil
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		task.DueDate = req.DueDate.Time
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}
	if req.RelatedPaper != nil {
		task.RelatedPaperID = emptyToNil(req.RelatedPaper)
		task.RelatedPaper = nil
	}
	if req.Attachments != nil {
		task.Attachments = toAttachments(*req.Attachments, nowUTC())
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanEditTask(actor, task) {
		return ErrTaskForbidden
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Task.Delete(ctx, id); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeTask, "Deleted task", task.Title, model.TaskRef{})
		return nil
	})
	if err != nil {
		s.logger.Error("删除任务失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Comment ──────────────────────

func (s *taskService) AddComment(ctx context.Context, actor policy.Actor, id string, req *dto.CommentRequest) (*model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Comments = append(task.Comments, newComment(actor.UserID, req.Text))

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Task.Update(ctx, task); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypeTask, "Commented on task", task.Title, task.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("追加任务评论失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}
