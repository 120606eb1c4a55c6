package model

// RelatedKind 弱引用指向的资源类别
type RelatedKind string

const (
	RelatedGoal  RelatedKind = "Goal"
	RelatedPaper RelatedKind = "Paper"
	RelatedTask  RelatedKind = "Task"
)

// RelatedRef 指向 Goal / Paper / Task 之一的弱引用
// 仅 GoalRef、PaperRef、TaskRef 实现该接口，解析时对三者做类型分支即可穷尽
type RelatedRef interface {
	Kind() RelatedKind
	RefID() string
	isRelatedRef()
}

// GoalRef 指向目标
type GoalRef struct{ ID string }

// PaperRef 指向论文
type PaperRef struct{ ID string }

// TaskRef 指向任务
type TaskRef struct{ ID string }

func (GoalRef) Kind() RelatedKind  { return RelatedGoal }
func (PaperRef) Kind() RelatedKind { return RelatedPaper }
func (TaskRef) Kind() RelatedKind  { return RelatedTask }

func (r GoalRef) RefID() string  { return r.ID }
func (r PaperRef) RefID() string { return r.ID }
func (r TaskRef) RefID() string  { return r.ID }

func (GoalRef) isRelatedRef()  {}
func (PaperRef) isRelatedRef() {}
func (TaskRef) isRelatedRef()  {}

// RelatedPath 弱引用对应的前端路由
func RelatedPath(ref RelatedRef) string {
	switch r := ref.(type) {
	case GoalRef:
		return "/goals/" + r.ID
	case PaperRef:
		return "/papers/" + r.ID
	case TaskRef:
		return "/tasks/" + r.ID
	default:
		return ""
	}
}

// relatedColumns 弱引用落库为 (related_model, related_id)
// 资源已删除时 id 为空，只保留类别
func relatedColumns(ref RelatedRef) (*string, *string) {
	if ref == nil {
		return nil, nil
	}
	kind := string(ref.Kind())
	if ref.RefID() == "" {
		return &kind, nil
	}
	id := ref.RefID()
	return &kind, &id
}

// parseRelated 由 (related_model, related_id) 还原弱引用；类别未知时返回 nil
func parseRelated(kind, id *string) RelatedRef {
	if kind == nil {
		return nil
	}
	var refID string
	if id != nil {
		refID = *id
	}
	switch RelatedKind(*kind) {
	case RelatedGoal:
		return GoalRef{ID: refID}
	case RelatedPaper:
		return PaperRef{ID: refID}
	case RelatedTask:
		return TaskRef{ID: refID}
	default:
		return nil
	}
}
