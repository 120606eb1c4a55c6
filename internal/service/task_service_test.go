package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

func setupTestTaskService() (TaskService, *mockRepos) {
	repo, m := newMockRepository()
	return NewTaskService(repo, newTestRecorder(repo), zap.NewNop()), m
}

func dueIn(days int) *dto.Date {
	return &dto.Date{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, days)}
}

// ── Create 测试 ──

func TestTaskService_Create_SelfAssigned(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)

	task, err := svc.Create(context.Background(), actorOf(stu), &dto.CreateTaskRequest{
		Title:   "跑实验",
		DueDate: dueIn(3),
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if task.AssignedToID != stu.ID || task.AssignedByID != stu.ID {
		t.Errorf("未指定被指派人时应指派给自己，实际: %s -> %s", task.AssignedByID, task.AssignedToID)
	}
	if task.Status != model.TaskStatusPending || task.Priority != model.PriorityMedium {
		t.Errorf("默认值不符: status=%s priority=%s", task.Status, task.Priority)
	}
	if len(m.notification.items) != 0 {
		t.Error("指派给自己不应产生通知")
	}

	acts := m.activity.byUser(stu.ID)
	if len(acts) != 1 || acts[0].Action != "Created new task" {
		t.Errorf("动态不符: %+v", acts)
	}
}

func TestTaskService_Create_NotifiesAssignee(t *testing.T) {
	svc, m := setupTestTaskService()
	prof := m.addUser("prof", model.RoleProfessor)
	stu := m.addUser("alice", model.RoleStudent)

	task, err := svc.Create(context.Background(), actorOf(prof), &dto.CreateTaskRequest{
		Title:      "整理数据集",
		AssignedTo: stu.ID,
		Priority:   model.PriorityHigh,
		DueDate:    dueIn(7),
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	notes, _ := m.notification.ListByUser(context.Background(), stu.ID, 0)
	if len(notes) != 1 {
		t.Fatalf("被指派人应收到 1 条通知，实际: %d", len(notes))
	}
	n := notes[0]
	if n.Type != model.NotificationTypeTask || n.IsRead {
		t.Errorf("通知类型或状态不符: %+v", n)
	}
	if n.Message != "您被指派了任务: 整理数据集" {
		t.Errorf("通知内容不符: %s", n.Message)
	}
	if ref, ok := n.Related().(model.TaskRef); !ok || ref.ID != task.ID {
		t.Errorf("通知应关联任务，实际: %+v", n.Related())
	}
	if n.ActionURL != "/tasks/"+task.ID {
		t.Errorf("跳转地址不符: %s", n.ActionURL)
	}

	if len(m.activity.byUser(prof.ID)) != 1 {
		t.Error("动态应记在指派人名下")
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)
	missing := "00000000-0000-0000-0000-000000000000"

	_, err := svc.Create(context.Background(), actorOf(stu), &dto.CreateTaskRequest{
		Title: "t", AssignedTo: missing, DueDate: dueIn(1),
	})
	if !errors.Is(err, ErrAssigneeNotFound) {
		t.Errorf("期望 ErrAssigneeNotFound，实际: %v", err)
	}

	_, err = svc.Create(context.Background(), actorOf(stu), &dto.CreateTaskRequest{
		Title: "t", RelatedPaper: &missing, DueDate: dueIn(1),
	})
	if !errors.Is(err, ErrRelatedPaperNotFound) {
		t.Errorf("期望 ErrRelatedPaperNotFound，实际: %v", err)
	}

	for _, due := range []*dto.Date{nil, {}} {
		_, err = svc.Create(context.Background(), actorOf(stu), &dto.CreateTaskRequest{Title: "t", DueDate: due})
		if !errors.Is(err, ErrTaskDueDateRequired) {
			t.Errorf("缺少截止时间期望 ErrTaskDueDateRequired，实际: %v", err)
		}
	}

	if len(m.task.tasks) != 0 || len(m.activity.activities) != 0 {
		t.Error("校验失败时不应写入任何数据")
	}
}

func TestTaskService_Create_Completed(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)

	task, err := svc.Create(context.Background(), actorOf(stu), &dto.CreateTaskRequest{
		Title: "t", Status: model.TaskStatusCompleted, DueDate: dueIn(1),
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if task.CompletedAt == nil {
		t.Error("以 completed 创建应写入完成时间")
	}
}

// ── Update 测试 ──

func TestTaskService_Update_Permissions(t *testing.T) {
	svc, m := setupTestTaskService()
	prof := m.addUser("prof", model.RoleProfessor)
	assignee := m.addUser("alice", model.RoleStudent)
	outsider := m.addUser("bob", model.RoleStudent)
	ctx := context.Background()

	task, _ := svc.Create(ctx, actorOf(prof), &dto.CreateTaskRequest{Title: "t", AssignedTo: assignee.ID, DueDate: dueIn(2)})

	if _, err := svc.Update(ctx, actorOf(outsider), task.ID, &dto.UpdateTaskRequest{Title: strPtr("x")}); !errors.Is(err, ErrTaskForbidden) {
		t.Errorf("非参与者期望 ErrTaskForbidden，实际: %v", err)
	}
	if err := svc.Delete(ctx, actorOf(outsider), task.ID); !errors.Is(err, ErrTaskForbidden) {
		t.Errorf("非参与者删除期望 ErrTaskForbidden，实际: %v", err)
	}

	updated, err := svc.Update(ctx, actorOf(assignee), task.ID, &dto.UpdateTaskRequest{Status: strPtr(model.TaskStatusInProgress)})
	if err != nil {
		t.Fatalf("被指派人应可修改: %v", err)
	}
	if updated.Status != model.TaskStatusInProgress {
		t.Errorf("期望状态 in-progress，实际: %s", updated.Status)
	}

	if _, err := svc.Update(ctx, actorOf(assignee), "missing", &dto.UpdateTaskRequest{}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestTaskService_Update_CompletionTransition(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)
	ctx := context.Background()

	task, _ := svc.Create(ctx, actorOf(stu), &dto.CreateTaskRequest{Title: "t", DueDate: dueIn(2)})

	done, err := svc.Update(ctx, actorOf(stu), task.ID, &dto.UpdateTaskRequest{Status: strPtr(model.TaskStatusCompleted)})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("进入 completed 应写入完成时间")
	}
	if acts := m.activity.byUser(stu.ID); acts[0].Action != "Completed task" {
		t.Errorf("期望动作 Completed task，实际: %s", acts[0].Action)
	}

	reviewed, err := svc.Update(ctx, actorOf(stu), task.ID, &dto.UpdateTaskRequest{Status: strPtr(model.TaskStatusReview)})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if reviewed.CompletedAt == nil {
		t.Error("离开 completed 时不应清空完成时间")
	}
}

func TestTaskService_Update_Reassign(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)
	ctx := context.Background()

	task, _ := svc.Create(ctx, actorOf(stu), &dto.CreateTaskRequest{Title: "t", DueDate: dueIn(2)})

	_, err := svc.Update(ctx, actorOf(stu), task.ID, &dto.UpdateTaskRequest{AssignedTo: strPtr("00000000-0000-0000-0000-000000000000")})
	if !errors.Is(err, ErrAssigneeNotFound) {
		t.Errorf("期望 ErrAssigneeNotFound，实际: %v", err)
	}

	// 空 assignedTo 视为未修改
	updated, err := svc.Update(ctx, actorOf(stu), task.ID, &dto.UpdateTaskRequest{AssignedTo: strPtr(""), Title: strPtr("t2")})
	if err != nil {
		t.Fatalf("空 assignedTo 不应报错: %v", err)
	}
	if updated.AssignedToID != stu.ID || updated.Title != "t2" {
		t.Errorf("被指派人应保持不变，实际: %s", updated.AssignedToID)
	}
}

// ── Comment / Delete 测试 ──

func TestTaskService_AddComment_AnyUser(t *testing.T) {
	svc, m := setupTestTaskService()
	owner := m.addUser("alice", model.RoleStudent)
	other := m.addUser("bob", model.RoleStudent)
	ctx := context.Background()

	task, _ := svc.Create(ctx, actorOf(owner), &dto.CreateTaskRequest{Title: "t", DueDate: dueIn(2)})

	commented, err := svc.AddComment(ctx, actorOf(other), task.ID, &dto.CommentRequest{Text: "需要帮忙吗"})
	if err != nil {
		t.Fatalf("评论失败: %v", err)
	}
	if len(commented.Comments) != 1 || commented.Comments[0].UserID != other.ID {
		t.Errorf("评论内容不符: %+v", commented.Comments)
	}
	if commented.Comments[0].ID == "" {
		t.Error("评论应分配 ID")
	}
	if acts := m.activity.byUser(other.ID); len(acts) != 1 || acts[0].Action != "Commented on task" {
		t.Errorf("动态不符: %+v", acts)
	}
}

func TestTaskService_Delete(t *testing.T) {
	svc, m := setupTestTaskService()
	stu := m.addUser("alice", model.RoleStudent)
	ctx := context.Background()

	task, _ := svc.Create(ctx, actorOf(stu), &dto.CreateTaskRequest{Title: "t", DueDate: dueIn(2)})
	if err := svc.Delete(ctx, actorOf(stu), task.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.GetByID(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("删除后期望 ErrTaskNotFound，实际: %v", err)
	}
	if acts := m.activity.byUser(stu.ID); acts[0].Action != "Deleted task" {
		t.Errorf("期望动作 Deleted task，实际: %s", acts[0].Action)
	}
}
