package model

import "time"

// Goal 目标表：对应 goals
type Goal struct {
	BaseModel
	UserID       string     `gorm:"type:uuid;not null;index"                     json:"userId"`
	Title        string     `gorm:"type:varchar(200);not null"                   json:"title"`
	Description  string     `gorm:"type:text"                                    json:"description"`
	Type         string     `gorm:"type:varchar(20);not null"                    json:"type"`
	Priority     string     `gorm:"type:varchar(20);not null;default:'medium'"   json:"priority"`
	Status       string     `gorm:"type:varchar(20);not null;index"              json:"status"`
	Progress     int        `gorm:"not null"                                     json:"progress"`
	StartDate    *time.Time `                                                    json:"startDate,omitempty"`
	EndDate      *time.Time `                                                    json:"endDate,omitempty"`
	CompletedAt  *time.Time `                                                    json:"completedAt,omitempty"`
	AssignedByID *string    `gorm:"type:uuid"                                    json:"assignedById,omitempty"`
	AssignedToID *string    `gorm:"type:uuid"                                    json:"assignedToId,omitempty"`

	// 关联
	User       *User `gorm:"foreignKey:UserID"       json:"user,omitempty"`
	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assignedBy,omitempty"`
	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}

// TableName 指定表名
func (Goal) TableName() string { return "goals" }

// Ref 目标的弱引用
func (g *Goal) Ref() RelatedRef { return GoalRef{ID: g.ID} }
