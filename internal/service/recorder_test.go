package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

type mockPublisher struct {
	payloads [][]byte
	err      error
}

func (m *mockPublisher) PublishEvent(_ context.Context, payload []byte) error {
	if m.err != nil {
		return m.err
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

func newTestRecorder(repo *repository.Repository) *recorder {
	return newRecorder(repo, nil, zap.NewNop())
}

func TestRecorder_Commit_WritesSideEffects(t *testing.T) {
	repo, m := newMockRepository()
	pub := &mockPublisher{}
	rec := newRecorder(repo, pub, zap.NewNop())

	goal := &model.Goal{UserID: "u1", Title: "读论文", Type: model.GoalTypeDaily, Status: model.GoalStatusNotStarted}
	err := rec.commit(context.Background(), func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Goal.Create(context.Background(), goal); err != nil {
			return err
		}
		fx.activity("u1", model.ActivityTypeGoal, "Created daily goal", goal.Title, goal.Ref())
		fx.notify("u2", model.NotificationTypeGoal, "新目标", "有新目标", goal.Ref())
		return nil
	})
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}

	acts := m.activity.byUser("u1")
	if len(acts) != 1 {
		t.Fatalf("期望 1 条动态，实际: %d", len(acts))
	}
	ref, ok := acts[0].Related().(model.GoalRef)
	if !ok || ref.ID != goal.ID {
		t.Errorf("动态应关联目标 %s，实际: %+v", goal.ID, acts[0].Related())
	}

	notes, _ := m.notification.ListByUser(context.Background(), "u2", 0)
	if len(notes) != 1 {
		t.Fatalf("期望 1 条通知，实际: %d", len(notes))
	}
	if notes[0].ActionURL != "/goals/"+goal.ID {
		t.Errorf("通知跳转地址不符: %s", notes[0].ActionURL)
	}

	if len(pub.payloads) != 1 {
		t.Fatalf("期望发布 1 条事件，实际: %d", len(pub.payloads))
	}
	var event model.Activity
	if err := json.Unmarshal(pub.payloads[0], &event); err != nil {
		t.Fatalf("事件不是合法 JSON: %v", err)
	}
	if event.Action != "Created daily goal" {
		t.Errorf("事件内容不符: %+v", event)
	}
}

func TestRecorder_Commit_WriteError(t *testing.T) {
	repo, m := newMockRepository()
	pub := &mockPublisher{}
	rec := newRecorder(repo, pub, zap.NewNop())
	boom := errors.New("write failed")

	err := rec.commit(context.Background(), func(_ *repository.Repository, fx *sideEffects) error {
		fx.activity("u1", model.ActivityTypeOther, "noop", "", nil)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("期望透传写入错误，实际: %v", err)
	}
	if len(m.activity.activities) != 0 {
		t.Error("主写入失败时不应写入动态")
	}
	if len(pub.payloads) != 0 {
		t.Error("失败的提交不应发布事件")
	}
}

func TestRecorder_Commit_ActivityError(t *testing.T) {
	repo, m := newMockRepository()
	m.activity.createErr = errors.New("insert failed")
	pub := &mockPublisher{}
	rec := newRecorder(repo, pub, zap.NewNop())

	err := rec.commit(context.Background(), func(_ *repository.Repository, fx *sideEffects) error {
		fx.activity("u1", model.ActivityTypeOther, "noop", "", nil)
		return nil
	})
	if err == nil {
		t.Fatal("动态写入失败时提交应失败")
	}
	if !errors.Is(err, m.activity.createErr) {
		t.Errorf("期望包装原始错误，实际: %v", err)
	}
	if len(pub.payloads) != 0 {
		t.Error("失败的提交不应发布事件")
	}
}

func TestRecorder_PublishErrorIgnored(t *testing.T) {
	repo, m := newMockRepository()
	rec := newRecorder(repo, &mockPublisher{err: errors.New("redis down")}, zap.NewNop())

	err := rec.commit(context.Background(), func(_ *repository.Repository, fx *sideEffects) error {
		fx.activity("u1", model.ActivityTypeMeeting, "Weekly meeting", "", nil)
		return nil
	})
	if err != nil {
		t.Fatalf("发布失败不应影响提交: %v", err)
	}
	acts := m.activity.byUser("u1")
	if len(acts) != 1 {
		t.Fatalf("期望 1 条动态，实际: %d", len(acts))
	}
	if acts[0].Related() != nil {
		t.Error("未关联资源的动态 Related 应为 nil")
	}
}
