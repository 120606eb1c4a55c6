package handler

import "github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Goal         *GoalHandler
	Paper        *PaperHandler
	Task         *TaskHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
	PersonalTodo *PersonalTodoHandler
	Dashboard    *DashboardHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User, svc.Activity, svc.Export),
		Goal:         NewGoalHandler(svc.Goal),
		Paper:        NewPaperHandler(svc.Paper),
		Task:         NewTaskHandler(svc.Task, svc.Calendar),
		Activity:     NewActivityHandler(svc.Activity),
		Notification: NewNotificationHandler(svc.Notification),
		PersonalTodo: NewPersonalTodoHandler(svc.PersonalTodo),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
	}
}
