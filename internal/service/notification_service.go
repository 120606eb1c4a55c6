package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

const notificationListLimit = 50

// NotificationService 通知业务接口，所有操作仅限接收人本人
type NotificationService interface {
	List(ctx context.Context, actor policy.Actor) ([]model.Notification, error)
	UnreadCount(ctx context.Context, actor policy.Actor) (int64, error)
	MarkRead(ctx context.Context, actor policy.Actor, id string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, actor policy.Actor) ([]model.Notification, error) {
	list, err := s.repo.Notification.ListByUser(ctx, actor.UserID, notificationListLimit)
	if err != nil {
		s.logger.Error("查询通知失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, actor policy.Actor) (int64, error) {
	n, err := s.repo.Notification.CountUnread(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("统计未读通知失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor policy.Actor, id string) (*model.Notification, error) {
	n, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}

	now := nowUTC()
	n.IsRead = true
	n.ReadAt = &now
	if err := s.repo.Notification.Update(ctx, n); err != nil {
		s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error) {
	n, err := s.repo.Notification.MarkAllRead(ctx, actor.UserID, nowUTC())
	if err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Notification.Delete(ctx, id); err != nil {
		s.logger.Error("删除通知失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// owned 查询通知并校验接收人
func (s *notificationService) owned(ctx context.Context, actor policy.Actor, id string) (*model.Notification, error) {
	n, err := s.repo.Notification.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrNotificationNotFound)
		if err != ErrNotificationNotFound {
			s.logger.Error("查询通知失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	if !policy.CanManageNotification(actor, n) {
		return nil, ErrNotificationForbidden
	}
	return n, nil
}
