package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment 任务附件
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Task 任务表：对应 tasks
type Task struct {
	BaseModel
	Title          string                          `gorm:"type:varchar(200);not null"       json:"title"`
	Description    string                          `gorm:"type:text"                        json:"description"`
	AssignedByID   string                          `gorm:"type:uuid;not null;index"         json:"assignedById"`
	AssignedToID   string                          `gorm:"type:uuid;not null;index"         json:"assignedToId"`
	Status         string                          `gorm:"type:varchar(20);not null;index"  json:"status"`
	Priority       string                          `gorm:"type:varchar(20);not null"        json:"priority"`
	DueDate        time.Time                       `gorm:"not null"                         json:"dueDate"`
	CompletedAt    *time.Time                      `                                        json:"completedAt,omitempty"`
	EstimatedHours *float64                        `                                        json:"estimatedHours,omitempty"`
	ActualHours    *float64                        `                                        json:"actualHours,omitempty"`
	RelatedPaperID *string                         `gorm:"type:uuid"                        json:"relatedPaperId,omitempty"`
	Attachments    datatypes.JSONSlice[Attachment] `                                        json:"attachments"`
	Comments       datatypes.JSONSlice[Comment]    `                                        json:"comments"`
	Tags           datatypes.JSONSlice[string]     `                                        json:"tags"`

	// 关联
	AssignedBy   *User  `gorm:"foreignKey:AssignedByID"   json:"assignedBy,omitempty"`
	AssignedTo   *User  `gorm:"foreignKey:AssignedToID"   json:"assignedTo,omitempty"`
	RelatedPaper *Paper `gorm:"foreignKey:RelatedPaperID" json:"relatedPaper,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// Ref 任务的弱引用
func (t *Task) Ref() RelatedRef { return TaskRef{ID: t.ID} }

// BeforeSave 空数组落库为 []
func (t *Task) BeforeSave(_ *gorm.DB) error {
	t.normalize()
	return nil
}

// AfterFind 读出的空数组统一为 []
func (t *Task) AfterFind(_ *gorm.DB) error {
	t.normalize()
	return nil
}

func (t *Task) normalize() {
	if t.Attachments == nil {
		t.Attachments = datatypes.JSONSlice[Attachment]{}
	}
	if t.Comments == nil {
		t.Comments = datatypes.JSONSlice[Comment]{}
	}
	if t.Tags == nil {
		t.Tags = datatypes.JSONSlice[string]{}
	}
}
