package service

import (
	apperrors "github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/errors"
)

// 业务码约定：1xxxx 认证，2xxxx 资源模块，4xxxx 通用参数

// ── 认证 ──

var (
	ErrInvalidCredentials = apperrors.New(apperrors.ErrUnauthorized, 11001, "邮箱或密码错误")
	ErrEmailExists        = apperrors.New(apperrors.ErrConflict, 11002, "该邮箱已被注册")
	ErrUserInactive       = apperrors.New(apperrors.ErrForbidden, 11003, "账号已停用")
	ErrWrongPassword      = apperrors.New(apperrors.ErrValidation, 11004, "当前密码错误")
)

// ── 用户 ──

var (
	ErrUserNotFound       = apperrors.New(apperrors.ErrNotFound, 20001, "用户不存在")
	ErrSelfDelete         = apperrors.New(apperrors.ErrConflict, 20002, "不能删除自己的账号")
	ErrInvalidSupervisor  = apperrors.New(apperrors.ErrValidation, 20003, "导师必须是教授或管理员")
	ErrUserForbidden      = apperrors.New(apperrors.ErrForbidden, 20004, "无权管理用户")
	ErrSupervisorNotFound = apperrors.New(apperrors.ErrValidation, 20005, "指定的导师不存在")
	ErrUserSelfRoleChange = apperrors.New(apperrors.ErrConflict, 20006, "不能修改自己的角色")
	ErrSelfSupervisor     = apperrors.New(apperrors.ErrValidation, 20007, "不能将自己设为导师")
)

// ── 目标 ──

var (
	ErrGoalNotFound  = apperrors.New(apperrors.ErrNotFound, 21001, "目标不存在")
	ErrGoalForbidden = apperrors.New(apperrors.ErrForbidden, 21002, "无权操作该目标")
	ErrGoalAssignee  = apperrors.New(apperrors.ErrValidation, 21003, "目标指派的用户不存在")
)

// ── 论文 ──

var (
	ErrPaperNotFound     = apperrors.New(apperrors.ErrNotFound, 22001, "论文不存在")
	ErrPaperForbidden    = apperrors.New(apperrors.ErrForbidden, 22002, "只有作者或导师可以修改论文")
	ErrAuthorNotFound    = apperrors.New(apperrors.ErrValidation, 22003, "作者对应的用户不存在")
	ErrPaperAuthorsEmpty = apperrors.New(apperrors.ErrValidation, 22004, "论文至少需要一位作者")
)

// ── 任务 ──

var (
	ErrTaskNotFound         = apperrors.New(apperrors.ErrNotFound, 23001, "任务不存在")
	ErrTaskForbidden        = apperrors.New(apperrors.ErrForbidden, 23002, "只有任务相关人或导师可以修改任务")
	ErrAssigneeNotFound     = apperrors.New(apperrors.ErrValidation, 23003, "被指派的用户不存在")
	ErrRelatedPaperNotFound = apperrors.New(apperrors.ErrValidation, 23004, "关联的论文不存在")
	ErrTaskDueDateRequired  = apperrors.New(apperrors.ErrValidation, 23005, "任务必须设置截止时间")
)

// ── 动态 ──

var (
	ErrActivityNotFound  = apperrors.New(apperrors.ErrNotFound, 24001, "动态不存在")
	ErrActivityForbidden = apperrors.New(apperrors.ErrForbidden, 24002, "无权操作该动态")
)

// ── 通知 ──

var (
	ErrNotificationNotFound  = apperrors.New(apperrors.ErrNotFound, 25001, "通知不存在")
	ErrNotificationForbidden = apperrors.New(apperrors.ErrForbidden, 25002, "无权操作该通知")
)

// ── 个人待办 ──

var (
	ErrTodoNotFound   = apperrors.New(apperrors.ErrNotFound, 26001, "待办不存在")
	ErrTodoForbidden  = apperrors.New(apperrors.ErrForbidden, 26002, "无权操作该待办")
	ErrTodoRoleDenied = apperrors.New(apperrors.ErrForbidden, 26003, "个人待办仅对教授和管理员开放")
)

// ── 通用 ──

var (
	ErrInvalidDate = apperrors.New(apperrors.ErrValidation, 40002, "日期格式错误")
)
