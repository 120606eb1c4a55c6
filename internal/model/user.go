package model

import "time"

// User 用户表：对应 users
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(100);not null"            json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"            json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;index"       json:"role"`
	Department   string     `gorm:"type:varchar(100)"                     json:"department"`
	LabGroup     string     `gorm:"type:varchar(100)"                     json:"labGroup"`
	IsActive     bool       `gorm:"not null"                              json:"isActive"`
	SupervisorID *string    `gorm:"type:uuid"                             json:"supervisorId,omitempty"`
	LastLogin    *time.Time `                                             json:"lastLogin,omitempty"`

	// 关联
	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// UserSummary 展开引用时返回的用户摘要
type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// Summary 生成用户摘要
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Department: u.Department}
}
