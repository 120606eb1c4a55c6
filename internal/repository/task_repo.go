package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// TaskFilter 任务列表筛选条件
type TaskFilter struct {
	Status        string
	Priority      string
	AssignedToID  string
	ParticipantID string     // 指派人或被指派人
	DueAfter      *time.Time // due_date >= DueAfter
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TaskFilter) ([]model.Task, error)
	DeleteByParticipant(ctx context.Context, userID string) (int64, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedBy").
		Preload("AssignedTo").
		Preload("RelatedPaper").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}

func (r *taskRepo) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	db := r.db.WithContext(ctx).Model(&model.Task{})

	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		db = db.Where("priority = ?", f.Priority)
	}
	if f.AssignedToID != "" {
		db = db.Where("assigned_to_id = ?", f.AssignedToID)
	}
	if f.ParticipantID != "" {
		db = db.Where("assigned_to_id = ? OR assigned_by_id = ?", f.ParticipantID, f.ParticipantID)
	}
	if f.DueAfter != nil {
		db = db.Where("due_date >= ?", *f.DueAfter)
	}

	err := db.Preload("AssignedBy").
		Preload("AssignedTo").
		Preload("RelatedPaper").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) DeleteByParticipant(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("assigned_to_id = ? OR assigned_by_id = ?", userID, userID).
		Delete(&model.Task{})
	return result.RowsAffected, result.Error
}
