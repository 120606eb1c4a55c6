package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

var testDashboardConfig = &config.DashboardConfig{
	SharedActivityLimit:     10,
	PersonalActivityLimit:   5,
	SupervisorActivityLimit: 20,
}

func setupTestDashboardService() (DashboardService, *mockRepos) {
	repo, m := newMockRepository()
	return NewDashboardService(testDashboardConfig, repo, zap.NewNop()), m
}

// seedLab 两名学生、一名教授，各自带有目标、论文、任务
func seedLab(m *mockRepos) (alice, bob, prof *model.User) {
	ctx := context.Background()
	alice = m.addUser("alice", model.RoleStudent)
	bob = m.addUser("bob", model.RoleStudent)
	prof = m.addUser("prof", model.RoleProfessor)

	m.goal.Create(ctx, &model.Goal{UserID: alice.ID, Title: "a1", Type: model.GoalTypeDaily, Status: model.GoalStatusCompleted})
	m.goal.Create(ctx, &model.Goal{UserID: alice.ID, Title: "a2", Type: model.GoalTypeWeekly, Status: model.GoalStatusInProgress})
	m.goal.Create(ctx, &model.Goal{UserID: bob.ID, Title: "b1", Type: model.GoalTypeDaily, Status: model.GoalStatusNotStarted})

	m.paper.Create(ctx, &model.Paper{Title: "p1", Status: model.PaperStatusUnderReview,
		Authors: []model.PaperAuthor{{UserID: &alice.ID, Role: model.AuthorRoleLead}}})
	m.paper.Create(ctx, &model.Paper{Title: "p2", Status: model.PaperStatusAccepted,
		Authors: []model.PaperAuthor{{UserID: &bob.ID, Role: model.AuthorRoleLead}, {UserID: &alice.ID, Role: model.AuthorRoleCoAuthor}}})
	m.paper.Create(ctx, &model.Paper{Title: "p3", Status: model.PaperStatusPublished,
		Authors: []model.PaperAuthor{{UserID: &bob.ID, Role: model.AuthorRoleLead}}})

	m.task.Create(ctx, &model.Task{Title: "t1", AssignedByID: prof.ID, AssignedToID: alice.ID, Status: model.TaskStatusPending})
	m.task.Create(ctx, &model.Task{Title: "t2", AssignedByID: bob.ID, AssignedToID: bob.ID, Status: model.TaskStatusCompleted})

	seedActivities(m, alice.ID, model.ActivityTypeGoal, 8)
	seedActivities(m, bob.ID, model.ActivityTypePaper, 8)
	return alice, bob, prof
}

func TestDashboardService_Shared(t *testing.T) {
	svc, m := setupTestDashboardService()
	seedLab(m)

	resp, err := svc.Shared(context.Background())
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if resp.TeamMembers == nil || *resp.TeamMembers != 3 {
		t.Errorf("期望成员数 3，实际: %v", resp.TeamMembers)
	}

	st := resp.Stats
	if st.Goals.Total != 3 || st.Goals.Completed != 1 || st.Goals.InProgress != 1 || st.Goals.NotStarted != 1 {
		t.Errorf("目标统计不符: %+v", st.Goals)
	}
	// 看板口径：under-review 计入 submitted，accepted 计入 published
	if st.Papers.Total != 3 || st.Papers.Submitted != 1 || st.Papers.Published != 2 {
		t.Errorf("论文统计不符: %+v", st.Papers)
	}
	if st.Tasks.Total != 2 || st.Tasks.Pending != 1 || st.Tasks.Completed != 1 {
		t.Errorf("任务统计不符: %+v", st.Tasks)
	}
	if len(resp.Activities) != testDashboardConfig.SharedActivityLimit {
		t.Errorf("期望 %d 条动态，实际: %d", testDashboardConfig.SharedActivityLimit, len(resp.Activities))
	}
}

func TestDashboardService_Personal(t *testing.T) {
	svc, m := setupTestDashboardService()
	alice, _, prof := seedLab(m)

	resp, err := svc.Personal(context.Background(), actorOf(alice))
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if resp.TeamMembers != nil {
		t.Error("个人看板不返回成员数")
	}
	if resp.Stats.Goals.Total != 2 {
		t.Errorf("期望 2 个目标，实际: %d", resp.Stats.Goals.Total)
	}
	// 合著的论文同样计入
	if resp.Stats.Papers.Total != 2 {
		t.Errorf("期望 2 篇署名论文，实际: %d", resp.Stats.Papers.Total)
	}
	if resp.Stats.Tasks.Total != 1 {
		t.Errorf("期望 1 个任务，实际: %d", resp.Stats.Tasks.Total)
	}
	if len(resp.Activities) != testDashboardConfig.PersonalActivityLimit {
		t.Errorf("期望 %d 条动态，实际: %d", testDashboardConfig.PersonalActivityLimit, len(resp.Activities))
	}
	for _, a := range resp.Activities {
		if a.UserID != alice.ID {
			t.Fatal("个人看板只应包含本人动态")
		}
	}

	// 指派人视角：作为 assignedBy 参与的任务也计入
	profDash, _ := svc.Personal(context.Background(), actorOf(prof))
	if profDash.Stats.Tasks.Total != 1 {
		t.Errorf("指派人期望 1 个任务，实际: %d", profDash.Stats.Tasks.Total)
	}
}

func TestDashboardService_EmptyCollections(t *testing.T) {
	svc, m := setupTestDashboardService()
	stu := m.addUser("alice", model.RoleStudent)

	resp, err := svc.Personal(context.Background(), actorOf(stu))
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if resp.Goals == nil || resp.Papers == nil || resp.Tasks == nil || resp.Activities == nil {
		t.Error("空集合应为 [] 而非 nil")
	}
}
