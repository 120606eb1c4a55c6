package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	VenueJournal    = "journal"
	VenueConference = "conference"
	VenueWorkshop   = "workshop"
	VenueArxiv      = "arxiv"
)

// Venue 投稿渠道（内嵌于 papers 表）
type Venue struct {
	Name string `gorm:"column:venue_name;type:varchar(200)" json:"name"`
	Type string `gorm:"column:venue_type;type:varchar(20)"  json:"type"`
}

// Comment 内嵌评论（论文 / 任务共用）
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaperVersion 论文版本记录
type PaperVersion struct {
	Version    string    `json:"version"`
	FileURL    string    `json:"fileUrl,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
	Notes      string    `json:"notes,omitempty"`
}

// Paper 论文表：对应 papers
type Paper struct {
	BaseModel
	Title           string                            `gorm:"type:varchar(300);not null"     json:"title"`
	Abstract        string                            `gorm:"type:text"                      json:"abstract"`
	Status          string                            `gorm:"type:varchar(20);not null;index" json:"status"`
	Venue           Venue                             `gorm:"embedded"                       json:"venue"`
	SubmissionDate  *time.Time                        `                                      json:"submissionDate,omitempty"`
	ReviewDeadline  *time.Time                        `                                      json:"reviewDeadline,omitempty"`
	AcceptanceDate  *time.Time                        `                                      json:"acceptanceDate,omitempty"`
	PublicationDate *time.Time                        `                                      json:"publicationDate,omitempty"`
	DOI             string                            `gorm:"column:doi;type:varchar(100)"   json:"doi,omitempty"`
	ArxivID         string                            `gorm:"type:varchar(50)"               json:"arxivId,omitempty"`
	IsPublic        bool                              `gorm:"not null"                       json:"isPublic"`
	Keywords        datatypes.JSONSlice[string]       `                                      json:"keywords"`
	Versions        datatypes.JSONSlice[PaperVersion] `                                      json:"versions"`
	Comments        datatypes.JSONSlice[Comment]      `                                      json:"comments"`

	// 关联（按 position 排序）
	Authors []PaperAuthor `gorm:"foreignKey:PaperID" json:"authors"`
}

// TableName 指定表名
func (Paper) TableName() string { return "papers" }

// Ref 论文的弱引用
func (p *Paper) Ref() RelatedRef { return PaperRef{ID: p.ID} }

// BeforeSave 空数组落库为 []
func (p *Paper) BeforeSave(_ *gorm.DB) error {
	p.normalize()
	return nil
}

// AfterFind 读出的空数组统一为 []
func (p *Paper) AfterFind(_ *gorm.DB) error {
	p.normalize()
	return nil
}

func (p *Paper) normalize() {
	if p.Keywords == nil {
		p.Keywords = datatypes.JSONSlice[string]{}
	}
	if p.Versions == nil {
		p.Versions = datatypes.JSONSlice[PaperVersion]{}
	}
	if p.Comments == nil {
		p.Comments = datatypes.JSONSlice[Comment]{}
	}
	if p.Authors == nil {
		p.Authors = []PaperAuthor{}
	}
}

// PaperAuthor 论文作者表：对应 paper_authors
// UserID 为空表示外部作者（仅有署名）
type PaperAuthor struct {
	ID       string  `gorm:"type:uuid;primaryKey"      json:"id"`
	PaperID  string  `gorm:"type:uuid;not null;index"  json:"-"`
	UserID   *string `gorm:"type:uuid;index"           json:"userId,omitempty"`
	Name     string  `gorm:"type:varchar(100)"         json:"name"`
	Role     string  `gorm:"type:varchar(20);not null" json:"role"`
	Position int     `gorm:"not null"                  json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (PaperAuthor) TableName() string { return "paper_authors" }

// BeforeCreate 未指定主键时生成 UUID
func (a *PaperAuthor) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AuthorUserID 作者对应的用户 ID，无论关联是否已展开；外部作者返回空串
func (a *PaperAuthor) AuthorUserID() string {
	if a.User != nil && a.User.ID != "" {
		return a.User.ID
	}
	if a.UserID != nil {
		return *a.UserID
	}
	return ""
}
