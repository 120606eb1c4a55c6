package service

import (
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

func TestCalendarService_TaskFeed(t *testing.T) {
	repo, m := newMockRepository()
	svc := NewCalendarService("https://lab.example.com/", repo, zap.NewNop())
	ctx := context.Background()

	prof := m.addUser("prof", model.RoleProfessor)
	stu := m.addUser("alice", model.RoleStudent)
	due := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	open := &model.Task{Title: "写实验报告", AssignedByID: prof.ID, AssignedToID: stu.ID,
		Status: model.TaskStatusPending, Priority: model.PriorityUrgent, DueDate: due}
	done := &model.Task{Title: "整理数据", AssignedByID: prof.ID, AssignedToID: stu.ID,
		Status: model.TaskStatusCompleted, Priority: model.PriorityLow, DueDate: due}
	cancelled := &model.Task{Title: "已取消", AssignedByID: prof.ID, AssignedToID: stu.ID,
		Status: model.TaskStatusCancelled, DueDate: due}
	others := &model.Task{Title: "别人的任务", AssignedByID: stu.ID, AssignedToID: prof.ID,
		Status: model.TaskStatusPending, DueDate: due}
	for _, task := range []*model.Task{open, done, cancelled, others} {
		m.task.Create(ctx, task)
	}

	feed, err := svc.TaskFeed(ctx, actorOf(stu))
	if err != nil {
		t.Fatalf("生成日历失败: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("日历无法解析: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件（排除已取消与他人任务），实际: %d", len(events))
	}

	byUID := make(map[string]*ics.VEvent, len(events))
	for _, e := range events {
		byUID[e.Id()] = e
	}

	e := byUID[open.ID+"@lab-tracker"]
	if e == nil {
		t.Fatal("缺少未完成任务的事件")
	}
	if got := e.GetProperty(ics.ComponentPropertySummary).Value; got != "写实验报告" {
		t.Errorf("标题不符: %s", got)
	}
	if got := e.GetProperty(ics.ComponentPropertyPriority).Value; got != "1" {
		t.Errorf("urgent 应映射为优先级 1，实际: %s", got)
	}
	if got := e.GetProperty(ics.ComponentPropertyUrl).Value; got != "https://lab.example.com/tasks/"+open.ID {
		t.Errorf("链接不符: %s", got)
	}
	end, err := e.GetEndAt()
	if err != nil || !end.Equal(due) {
		t.Errorf("结束时间应为截止时间，实际: %v (%v)", end, err)
	}

	d := byUID[done.ID+"@lab-tracker"]
	if d == nil || d.GetProperty(ics.ComponentPropertySummary).Value != "✓ 整理数据" {
		t.Error("已完成任务标题应带完成标记")
	}
}

func TestICSPriority(t *testing.T) {
	tests := map[string]int{
		model.PriorityUrgent: 1,
		model.PriorityHigh:   3,
		model.PriorityMedium: 5,
		model.PriorityLow:    9,
		"":                   5,
	}
	for in, want := range tests {
		if got := icsPriority(in); got != want {
			t.Errorf("icsPriority(%q) 期望 %d，实际 %d", in, want, got)
		}
	}
}
