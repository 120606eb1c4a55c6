package dto

import "github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"

// ── 看板模块 DTO ──

// GoalCounts 目标按状态计数
type GoalCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// PaperPipelineCounts 看板论文计数：submitted 含审稿中，published 含已录用
type PaperPipelineCounts struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Submitted  int `json:"submitted"`
	Published  int `json:"published"`
}

// PaperStatusCounts 导师视角的论文计数，各状态单独统计
type PaperStatusCounts struct {
	Total       int `json:"total"`
	Published   int `json:"published"`
	UnderReview int `json:"underReview"`
	InProgress  int `json:"inProgress"`
}

// TaskCounts 任务按状态计数
type TaskCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// UserCounts 成员计数
type UserCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DashboardStats 协作 / 个人看板统计
type DashboardStats struct {
	Goals  GoalCounts          `json:"goals"`
	Papers PaperPipelineCounts `json:"papers"`
	Tasks  TaskCounts          `json:"tasks"`
}

// DashboardResponse 协作 / 个人看板
// TeamMembers 仅协作看板返回
type DashboardResponse struct {
	Stats       DashboardStats   `json:"stats"`
	TeamMembers *int64           `json:"teamMembers,omitempty"`
	Goals       []model.Goal     `json:"goals"`
	Papers      []model.Paper    `json:"papers"`
	Tasks       []model.Task     `json:"tasks"`
	Activities  []model.Activity `json:"activities"`
}

// SupervisorStats 导师看板统计
type SupervisorStats struct {
	Users  UserCounts        `json:"users"`
	Goals  GoalCounts        `json:"goals"`
	Papers PaperStatusCounts `json:"papers"`
	Tasks  TaskCounts        `json:"tasks"`
}

// SupervisorDashboardResponse 导师看板
type SupervisorDashboardResponse struct {
	Stats            SupervisorStats  `json:"stats"`
	Users            []model.User     `json:"users"`
	RecentActivities []model.Activity `json:"recentActivities"`
}

// UserStats 单个成员的统计
type UserStats struct {
	Goals  GoalCounts        `json:"goals"`
	Papers PaperStatusCounts `json:"papers"`
	Tasks  TaskCounts        `json:"tasks"`
}

// UserDetailResponse 成员详情
type UserDetailResponse struct {
	User  *model.User `json:"user"`
	Stats UserStats   `json:"stats"`
}
