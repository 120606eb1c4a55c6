package model

import "time"

// Notification 通知表：对应 notifications
type Notification struct {
	BaseModel
	UserID       string     `gorm:"type:uuid;not null;index"   json:"userId"`
	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Message      string     `gorm:"type:text;not null"         json:"message"`
	Type         string     `gorm:"type:varchar(20);not null"  json:"type"`
	IsRead       bool       `gorm:"not null;index"             json:"isRead"`
	ReadAt       *time.Time `                                  json:"readAt,omitempty"`
	RelatedModel *string    `gorm:"type:varchar(20)"           json:"relatedModel,omitempty"`
	RelatedID    *string    `gorm:"type:uuid"                  json:"relatedId,omitempty"`
	ActionURL    string     `gorm:"type:varchar(255)"          json:"actionUrl,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// Related 还原弱引用；未关联资源时返回 nil
func (n *Notification) Related() RelatedRef {
	return parseRelated(n.RelatedModel, n.RelatedID)
}

// SetRelated 写入弱引用并同步跳转地址
func (n *Notification) SetRelated(ref RelatedRef) {
	n.RelatedModel, n.RelatedID = relatedColumns(ref)
	n.ActionURL = RelatedPath(ref)
}
