package dto

// ── 论文模块 DTO ──

// PaperListRequest 论文列表查询参数
type PaperListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=in-progress submitted under-review revision-needed accepted published rejected"`
}

// AuthorInput 作者输入；UserID 为空表示外部作者
type AuthorInput struct {
	UserID *string `json:"user"  binding:"omitempty,uuid"`
	Name   string  `json:"name"  binding:"omitempty,max=100"`
	Role   string  `json:"role"  binding:"omitempty,oneof=lead co-author contributor"`
}

// VenueInput 投稿渠道
type VenueInput struct {
	Name string `json:"name" binding:"omitempty,max=200"`
	Type string `json:"type" binding:"omitempty,oneof=journal conference workshop arxiv"`
}

// VersionInput 版本记录
type VersionInput struct {
	Version string `json:"version" binding:"required,max=50"`
	FileURL string `json:"fileUrl" binding:"omitempty,url"`
	Notes   string `json:"notes"   binding:"omitempty,max=1000"`
}

// CreatePaperRequest 创建论文
type CreatePaperRequest struct {
	Title           string         `json:"title"           binding:"required,max=300"`
	Abstract        string         `json:"abstract"        binding:"omitempty,max=10000"`
	Status          string         `json:"status"          binding:"omitempty,oneof=in-progress submitted under-review revision-needed accepted published rejected"`
	Authors         []AuthorInput  `json:"authors"         binding:"omitempty,dive"`
	Venue           *VenueInput    `json:"venue"`
	SubmissionDate  *Date          `json:"submissionDate"`
	ReviewDeadline  *Date          `json:"reviewDeadline"`
	AcceptanceDate  *Date          `json:"acceptanceDate"`
	PublicationDate *Date          `json:"publicationDate"`
	Keywords        []string       `json:"keywords"        binding:"omitempty,max=30,dive,max=50"`
	Versions        []VersionInput `json:"versions"        binding:"omitempty,dive"`
	DOI             string         `json:"doi"             binding:"omitempty,max=100"`
	ArxivID         string         `json:"arxivId"         binding:"omitempty,max=50"`
	IsPublic        bool           `json:"isPublic"`
}

// UpdatePaperRequest 更新论文（仅覆盖提供的字段；authors 提供时整体替换）
type UpdatePaperRequest struct {
	Title           *string         `json:"title"           binding:"omitempty,max=300"`
	Abstract        *string         `json:"abstract"        binding:"omitempty,max=10000"`
	Status          *string         `json:"status"          binding:"omitempty,oneof=in-progress submitted under-review revision-needed accepted published rejected"`
	Authors         *[]AuthorInput  `json:"authors"`
	Venue           *VenueInput     `json:"venue"`
	SubmissionDate  OptionalDate    `json:"submissionDate"`
	ReviewDeadline  OptionalDate    `json:"reviewDeadline"`
	AcceptanceDate  OptionalDate    `json:"acceptanceDate"`
	PublicationDate OptionalDate    `json:"publicationDate"`
	Keywords        *[]string       `json:"keywords"`
	Versions        *[]VersionInput `json:"versions"`
	DOI             *string         `json:"doi"             binding:"omitempty,max=100"`
	ArxivID         *string         `json:"arxivId"         binding:"omitempty,max=50"`
	IsPublic        *bool           `json:"isPublic"`
}

// CommentRequest 追加评论（论文 / 任务共用）
type CommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}
