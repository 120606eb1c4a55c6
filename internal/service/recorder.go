package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/metrics"
)

// EventPublisher 动态事件发布（Redis Pub/Sub），未配置 Redis 时为 nil
type EventPublisher interface {
	PublishEvent(ctx context.Context, payload []byte) error
}

// sideEffects 一次写操作附带产生的动态与通知
// 由 recorder.commit 在主写入所在事务内落库
type sideEffects struct {
	activities    []*model.Activity
	notifications []*model.Notification
}

// activity 追加一条动态；ref 为 nil 表示不关联资源
func (fx *sideEffects) activity(userID, activityType, action, description string, ref model.RelatedRef) {
	a := &model.Activity{
		UserID:      userID,
		Type:        activityType,
		Action:      action,
		Description: description,
	}
	a.SetRelated(ref)
	fx.activities = append(fx.activities, a)
}

// notify 追加一条通知
func (fx *sideEffects) notify(userID, notificationType, title, message string, ref model.RelatedRef) {
	n := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}
	n.SetRelated(ref)
	fx.notifications = append(fx.notifications, n)
}

// recorder 统一处理资源写入与其动态、通知
//
//   - 主写入、动态、通知在同一事务内提交，任何一步失败整体回滚
//   - 提交后更新指标并发布动态事件，失败只记日志
type recorder struct {
	repo      *repository.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

func newRecorder(repo *repository.Repository, publisher EventPublisher, logger *zap.Logger) *recorder {
	return &recorder{repo: repo, publisher: publisher, logger: logger}
}

// commit 在事务中执行 write，随后写入 write 登记的动态与通知
func (r *recorder) commit(ctx context.Context, write func(tx *repository.Repository, fx *sideEffects) error) error {
	fx := &sideEffects{}

	err := r.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := write(tx, fx); err != nil {
			return err
		}
		for _, a := range fx.activities {
			if err := tx.Activity.Create(ctx, a); err != nil {
				return fmt.Errorf("记录动态失败: %w", err)
			}
		}
		for _, n := range fx.notifications {
			if err := tx.Notification.Create(ctx, n); err != nil {
				return fmt.Errorf("创建通知失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.afterCommit(ctx, fx)
	return nil
}

func (r *recorder) afterCommit(ctx context.Context, fx *sideEffects) {
	for _, a := range fx.activities {
		metrics.ActivitiesRecorded.WithLabelValues(a.Type).Inc()
	}
	metrics.NotificationsCreated.Add(float64(len(fx.notifications)))

	if r.publisher == nil {
		return
	}
	for _, a := range fx.activities {
		payload, err := json.Marshal(a)
		if err != nil {
			r.logger.Warn("序列化动态事件失败", zap.String("activity_id", a.ID), zap.Error(err))
			continue
		}
		if err := r.publisher.PublishEvent(ctx, payload); err != nil {
			r.logger.Warn("发布动态事件失败", zap.String("activity_id", a.ID), zap.Error(err))
		}
	}
}
