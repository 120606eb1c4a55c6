package service

import (
	"testing"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

func papersWithStatus(statuses ...string) []model.Paper {
	papers := make([]model.Paper, len(statuses))
	for i, s := range statuses {
		papers[i].Status = s
	}
	return papers
}

func TestPaperCounts_TwoViews(t *testing.T) {
	papers := papersWithStatus(
		model.PaperStatusInProgress,
		model.PaperStatusSubmitted,
		model.PaperStatusUnderReview,
		model.PaperStatusAccepted,
		model.PaperStatusPublished,
		model.PaperStatusRejected,
		model.PaperStatusRevisionNeeded,
	)

	pipeline := countPaperPipeline(papers)
	if pipeline.Total != 7 || pipeline.InProgress != 1 || pipeline.Submitted != 2 || pipeline.Published != 2 {
		t.Errorf("看板口径统计不符: %+v", pipeline)
	}

	status := countPaperStatus(papers)
	if status.Total != 7 || status.InProgress != 1 || status.UnderReview != 1 || status.Published != 1 {
		t.Errorf("导师口径统计不符: %+v", status)
	}
}

func TestCountUsers(t *testing.T) {
	users := []model.User{{IsActive: true}, {IsActive: false}, {IsActive: true}}
	c := countUsers(users)
	if c.Total != 3 || c.Active != 2 {
		t.Errorf("成员统计不符: %+v", c)
	}
}

func TestCountTasks_IgnoresOtherStatuses(t *testing.T) {
	tasks := []model.Task{
		{Status: model.TaskStatusPending},
		{Status: model.TaskStatusReview},
		{Status: model.TaskStatusCancelled},
		{Status: model.TaskStatusCompleted},
	}
	c := countTasks(tasks)
	if c.Total != 4 || c.Pending != 1 || c.InProgress != 0 || c.Completed != 1 {
		t.Errorf("任务统计不符: %+v", c)
	}
}

func TestBuildSupervisorDashboard_NonNil(t *testing.T) {
	dash := buildSupervisorDashboard(nil, snapshot{})
	if dash.Users == nil || dash.RecentActivities == nil {
		t.Error("空集合应为 [] 而非 nil")
	}
	if dash.Stats.Users.Total != 0 {
		t.Errorf("期望 0 名成员，实际: %d", dash.Stats.Users.Total)
	}
}
