package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

const (
	calendarProductID = "-//lab-tracker//tasks//ZH"
	calendarUIDDomain = "lab-tracker"
	// 截止时间前一小时作为日历事件的时间段
	taskEventDuration = time.Hour
)

// CalendarService 任务日历导出
type CalendarService interface {
	// TaskFeed 调用者被指派的未取消任务，序列化为 iCalendar 文本
	TaskFeed(ctx context.Context, actor policy.Actor) (string, error)
}

type calendarService struct {
	baseURL string
	repo    *repository.Repository
	logger  *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例；baseURL 用于生成任务链接
func NewCalendarService(baseURL string, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{baseURL: strings.TrimRight(baseURL, "/"), repo: repo, logger: logger}
}

func (s *calendarService) TaskFeed(ctx context.Context, actor policy.Actor) (string, error) {
	tasks, err := s.repo.Task.List(ctx, repository.TaskFilter{AssignedToID: actor.UserID})
	if err != nil {
		s.logger.Error("查询日历任务失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Lab Tasks")

	stamp := nowUTC()
	for i := range tasks {
		t := &tasks[i]
		if t.Status == model.TaskStatusCancelled {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@%s", t.ID, calendarUIDDomain))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(t.CreatedAt)
		event.SetModifiedAt(t.UpdatedAt)
		event.SetStartAt(t.DueDate.Add(-taskEventDuration))
		event.SetEndAt(t.DueDate)
		event.SetSummary(taskSummary(t))
		if t.Description != "" {
			event.SetDescription(t.Description)
		}
		if s.baseURL != "" {
			event.SetURL(s.baseURL + model.RelatedPath(t.Ref()))
		}
		event.SetPriority(icsPriority(t.Priority))
	}

	return cal.Serialize(), nil
}

func taskSummary(t *model.Task) string {
	if t.Status == model.TaskStatusCompleted {
		return "✓ " + t.Title
	}
	return t.Title
}

// icsPriority RFC 5545 优先级：1 最高，9 最低
func icsPriority(priority string) int {
	switch priority {
	case model.PriorityUrgent:
		return 1
	case model.PriorityHigh:
		return 3
	case model.PriorityLow:
		return 9
	default:
		return 5
	}
}
