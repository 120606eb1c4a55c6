package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 通用主键与时间戳字段（所有业务模型嵌入）
// 主键在应用侧生成，PostgreSQL 与 SQLite 行为一致
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index"       json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null"             json:"updatedAt"`
}

// BeforeCreate 未指定主键时生成 UUID
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ── 角色 ──

const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

// IsSupervisorRole professor 与 admin 视为导师角色
func IsSupervisorRole(role string) bool {
	return role == RoleProfessor || role == RoleAdmin
}

// ── 目标 ──

const (
	GoalTypeDaily   = "daily"
	GoalTypeWeekly  = "weekly"
	GoalTypeMonthly = "monthly"
)

const (
	GoalStatusNotStarted = "not-started"
	GoalStatusInProgress = "in-progress"
	GoalStatusCompleted  = "completed"
	GoalStatusCancelled  = "cancelled"
)

// ── 优先级（目标 / 任务 / 个人待办共用） ──

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ── 论文 ──

const (
	PaperStatusInProgress     = "in-progress"
	PaperStatusSubmitted      = "submitted"
	PaperStatusUnderReview    = "under-review"
	PaperStatusRevisionNeeded = "revision-needed"
	PaperStatusAccepted       = "accepted"
	PaperStatusPublished      = "published"
	PaperStatusRejected       = "rejected"
)

const (
	AuthorRoleLead        = "lead"
	AuthorRoleCoAuthor    = "co-author"
	AuthorRoleContributor = "contributor"
)

// ── 任务 ──

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusReview     = "review"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// ── 动态类型 ──

const (
	ActivityTypeGoal        = "goal"
	ActivityTypePaper       = "paper"
	ActivityTypeTask        = "task"
	ActivityTypeMeeting     = "meeting"
	ActivityTypePublication = "publication"
	ActivityTypeOther       = "other"
)

// ── 通知类型 ──

const (
	NotificationTypeTask     = "task"
	NotificationTypeDeadline = "deadline"
	NotificationTypePaper    = "paper"
	NotificationTypeGoal     = "goal"
	NotificationTypeSystem   = "system"
	NotificationTypeOther    = "other"
)

// ── 个人待办 ──

const (
	TodoTypeDaily   = "daily"
	TodoTypeWeekly  = "weekly"
	TodoTypeMonthly = "monthly"
	TodoTypeYearly  = "yearly"
)

const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in-progress"
	TodoStatusCompleted  = "completed"
	TodoStatusCancelled  = "cancelled"
)
