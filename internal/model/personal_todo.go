package model

import "time"

// PersonalTodo 个人待办表：对应 personal_todos，仅所有者可见
type PersonalTodo struct {
	BaseModel
	UserID      string     `gorm:"type:uuid;not null;index"   json:"userId"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text"                  json:"description"`
	Type        string     `gorm:"type:varchar(20);not null"  json:"type"`
	Status      string     `gorm:"type:varchar(20);not null"  json:"status"`
	Priority    string     `gorm:"type:varchar(20);not null"  json:"priority"`
	DueDate     *time.Time `gorm:"index"                      json:"dueDate,omitempty"`
	CompletedAt *time.Time `                                  json:"completedAt,omitempty"`
	Notes       string     `gorm:"type:text"                  json:"notes"`
}

// TableName 指定表名
func (PersonalTodo) TableName() string { return "personal_todos" }
