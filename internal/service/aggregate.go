package service

import (
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// snapshot 看板所需数据的一次性读取结果
// 下面的统计函数只依赖 snapshot，不做任何 I/O
type snapshot struct {
	Goals      []model.Goal
	Papers     []model.Paper
	Tasks      []model.Task
	Activities []model.Activity
}

func countGoals(goals []model.Goal) dto.GoalCounts {
	c := dto.GoalCounts{Total: len(goals)}
	for i := range goals {
		switch goals[i].Status {
		case model.GoalStatusCompleted:
			c.Completed++
		case model.GoalStatusInProgress:
			c.InProgress++
		case model.GoalStatusNotStarted:
			c.NotStarted++
		}
	}
	return c
}

// countPaperPipeline 看板口径：submitted 含审稿中，published 含已录用
func countPaperPipeline(papers []model.Paper) dto.PaperPipelineCounts {
	c := dto.PaperPipelineCounts{Total: len(papers)}
	for i := range papers {
		switch papers[i].Status {
		case model.PaperStatusInProgress:
			c.InProgress++
		case model.PaperStatusSubmitted, model.PaperStatusUnderReview:
			c.Submitted++
		case model.PaperStatusPublished, model.PaperStatusAccepted:
			c.Published++
		}
	}
	return c
}

// countPaperStatus 导师口径：各状态单独计数
func countPaperStatus(papers []model.Paper) dto.PaperStatusCounts {
	c := dto.PaperStatusCounts{Total: len(papers)}
	for i := range papers {
		switch papers[i].Status {
		case model.PaperStatusPublished:
			c.Published++
		case model.PaperStatusUnderReview:
			c.UnderReview++
		case model.PaperStatusInProgress:
			c.InProgress++
		}
	}
	return c
}

func countTasks(tasks []model.Task) dto.TaskCounts {
	c := dto.TaskCounts{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case model.TaskStatusPending:
			c.Pending++
		case model.TaskStatusInProgress:
			c.InProgress++
		case model.TaskStatusCompleted:
			c.Completed++
		}
	}
	return c
}

func countUsers(users []model.User) dto.UserCounts {
	c := dto.UserCounts{Total: len(users)}
	for i := range users {
		if users[i].IsActive {
			c.Active++
		}
	}
	return c
}

func countTodos(todos []model.PersonalTodo) dto.TodoStats {
	s := dto.TodoStats{Total: len(todos)}
	for i := range todos {
		t := &todos[i]
		switch t.Type {
		case model.TodoTypeDaily:
			s.ByType.Daily++
		case model.TodoTypeWeekly:
			s.ByType.Weekly++
		case model.TodoTypeMonthly:
			s.ByType.Monthly++
		case model.TodoTypeYearly:
			s.ByType.Yearly++
		}
		switch t.Status {
		case model.TodoStatusPending:
			s.ByStatus.Pending++
		case model.TodoStatusInProgress:
			s.ByStatus.InProgress++
		case model.TodoStatusCompleted:
			s.ByStatus.Completed++
		}
		switch t.Priority {
		case model.PriorityLow:
			s.ByPriority.Low++
		case model.PriorityMedium:
			s.ByPriority.Medium++
		case model.PriorityHigh:
			s.ByPriority.High++
		case model.PriorityUrgent:
			s.ByPriority.Urgent++
		}
	}
	return s
}

// buildDashboard 协作 / 个人看板；空集合输出 []
func buildDashboard(s snapshot) *dto.DashboardResponse {
	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			Goals:  countGoals(s.Goals),
			Papers: countPaperPipeline(s.Papers),
			Tasks:  countTasks(s.Tasks),
		},
		Goals:      nonNil(s.Goals),
		Papers:     nonNil(s.Papers),
		Tasks:      nonNil(s.Tasks),
		Activities: nonNil(s.Activities),
	}
}

// buildSupervisorDashboard 导师看板
func buildSupervisorDashboard(students []model.User, s snapshot) *dto.SupervisorDashboardResponse {
	return &dto.SupervisorDashboardResponse{
		Stats: dto.SupervisorStats{
			Users:  countUsers(students),
			Goals:  countGoals(s.Goals),
			Papers: countPaperStatus(s.Papers),
			Tasks:  countTasks(s.Tasks),
		},
		Users:            nonNil(students),
		RecentActivities: nonNil(s.Activities),
	}
}

// buildUserStats 单个成员详情统计
func buildUserStats(s snapshot) dto.UserStats {
	return dto.UserStats{
		Goals:  countGoals(s.Goals),
		Papers: countPaperStatus(s.Papers),
		Tasks:  countTasks(s.Tasks),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
