package model

import "gorm.io/datatypes"

// Activity 动态（审计）表：对应 activities，写入后不再修改
type Activity struct {
	BaseModel
	UserID       string            `gorm:"type:uuid;not null;index"  json:"userId"`
	Type         string            `gorm:"type:varchar(20);not null" json:"type"`
	Action       string            `gorm:"type:varchar(200);not null" json:"action"`
	Description  string            `gorm:"type:text"                 json:"description"`
	RelatedModel *string           `gorm:"type:varchar(20)"          json:"relatedModel,omitempty"`
	RelatedID    *string           `gorm:"type:uuid"                 json:"relatedId,omitempty"`
	Metadata     datatypes.JSONMap `                                 json:"metadata,omitempty"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

// Related 还原弱引用；未关联资源时返回 nil
func (a *Activity) Related() RelatedRef {
	return parseRelated(a.RelatedModel, a.RelatedID)
}

// SetRelated 写入弱引用
func (a *Activity) SetRelated(ref RelatedRef) {
	a.RelatedModel, a.RelatedID = relatedColumns(ref)
}
