// Package policy 集中定义资源访问规则。
//
// 所有函数均为 (Actor, 资源) 的纯函数，不访问存储；调用方负责先查询资源
// （不存在返回 404），再调用这里的规则判断权限（拒绝返回 403）。
package policy

import "github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"

// Actor 当前请求的操作者
type Actor struct {
	UserID string
	Role   string
}

// IsSupervisor professor / admin 视为导师
func (a Actor) IsSupervisor() bool {
	return model.IsSupervisorRole(a.Role)
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// ────────────────────── 目标 ──────────────────────

// CanViewGoal 单条目标：创建者或导师可见
func CanViewGoal(a Actor, g *model.Goal) bool {
	return a.IsSupervisor() || g.UserID == a.UserID
}

// CanEditGoal 修改 / 删除目标：创建者或导师
func CanEditGoal(a Actor, g *model.Goal) bool {
	return a.IsSupervisor() || g.UserID == a.UserID
}

// ────────────────────── 论文 ──────────────────────

// IsPaperAuthor 用户是否在论文作者列表中（按归一化后的用户 ID 匹配）
func IsPaperAuthor(userID string, p *model.Paper) bool {
	if userID == "" {
		return false
	}
	for i := range p.Authors {
		if p.Authors[i].AuthorUserID() == userID {
			return true
		}
	}
	return false
}

// CanEditPaper 修改 / 删除论文：任一作者或导师
func CanEditPaper(a Actor, p *model.Paper) bool {
	return a.IsSupervisor() || IsPaperAuthor(a.UserID, p)
}

// ────────────────────── 任务 ──────────────────────

// IsTaskParticipant 用户是否为任务的指派人或被指派人
func IsTaskParticipant(userID string, t *model.Task) bool {
	if userID == "" {
		return false
	}
	return taskUserID(t.AssignedToID, t.AssignedTo) == userID ||
		taskUserID(t.AssignedByID, t.AssignedBy) == userID
}

// CanEditTask 修改 / 删除任务：指派人、被指派人或导师
func CanEditTask(a Actor, t *model.Task) bool {
	return a.IsSupervisor() || IsTaskParticipant(a.UserID, t)
}

// taskUserID 优先取已展开的关联记录，其次取外键
func taskUserID(id string, u *model.User) string {
	if u != nil && u.ID != "" {
		return u.ID
	}
	return id
}

// ────────────────────── 个人待办 ──────────────────────

// CanUsePersonalTodos 个人待办仅对导师角色开放
func CanUsePersonalTodos(a Actor) bool {
	return a.IsSupervisor()
}

// CanAccessTodo 个人待办的任何操作：导师角色且为所有者
func CanAccessTodo(a Actor, t *model.PersonalTodo) bool {
	return CanUsePersonalTodos(a) && t.UserID == a.UserID
}

// ────────────────────── 动态 ──────────────────────

// CanViewActivity 单条动态：本人或导师
func CanViewActivity(a Actor, act *model.Activity) bool {
	return a.IsSupervisor() || act.UserID == a.UserID
}

// CanDeleteActivity 删除动态：仅导师，导师可删除任意成员的动态
func CanDeleteActivity(a Actor, _ *model.Activity) bool {
	return a.IsSupervisor()
}

// ────────────────────── 通知 ──────────────────────

// CanManageNotification 通知的读取、标记与删除：仅接收人
func CanManageNotification(a Actor, n *model.Notification) bool {
	return n.UserID == a.UserID
}

// ────────────────────── 用户 ──────────────────────

// CanManageUsers 用户列表 / 详情 / 修改 / 删除及导师看板：仅导师
func CanManageUsers(a Actor) bool {
	return a.IsSupervisor()
}

// CanAssignSupervisor 指定导师：仅管理员
func CanAssignSupervisor(a Actor) bool {
	return a.IsAdmin()
}

// CanDeleteUser 删除用户：导师，且不能删除自己
func CanDeleteUser(a Actor, targetID string) bool {
	return CanManageUsers(a) && !IsSelf(a, targetID)
}

// IsSelf 目标是否为操作者本人
func IsSelf(a Actor, targetID string) bool {
	return a.UserID == targetID
}

// CanBeSupervisor 被指定为导师的用户必须是 professor / admin
func CanBeSupervisor(u *model.User) bool {
	return model.IsSupervisorRole(u.Role)
}
