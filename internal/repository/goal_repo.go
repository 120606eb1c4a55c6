package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// GoalFilter 目标列表筛选条件，零值字段不参与过滤
type GoalFilter struct {
	UserID    string
	Type      string
	Status    string
	StartFrom *time.Time // start_date >= StartFrom
	EndTo     *time.Time // end_date <= EndTo
}

// GoalTypeStat 按目标类型聚合的统计行
type GoalTypeStat struct {
	Type        string
	Total       int64
	Completed   int64
	InProgress  int64
	AvgProgress float64
}

// GoalRepository 目标数据访问接口
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f GoalFilter) ([]model.Goal, error)
	StatsByType(ctx context.Context, userID string) ([]GoalTypeStat, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo 创建 GoalRepository 实例
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(goal).Error
}

func (r *goalRepo) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("AssignedBy").
		Preload("AssignedTo").
		Where("id = ?", id).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) Update(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(goal).Error
}

func (r *goalRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Goal{}).Error
}

func (r *goalRepo) List(ctx context.Context, f GoalFilter) ([]model.Goal, error) {
	var goals []model.Goal
	db := r.db.WithContext(ctx).Model(&model.Goal{})

	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.StartFrom != nil {
		db = db.Where("start_date >= ?", *f.StartFrom)
	}
	if f.EndTo != nil {
		db = db.Where("end_date <= ?", *f.EndTo)
	}

	err := db.Preload("User").
		Preload("AssignedBy").
		Preload("AssignedTo").
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) StatsByType(ctx context.Context, userID string) ([]GoalTypeStat, error) {
	var rows []GoalTypeStat
	err := r.db.WithContext(ctx).
		Model(&model.Goal{}).
		Select(`type,
			COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_progress,
			AVG(progress) AS avg_progress`,
			model.GoalStatusCompleted, model.GoalStatusInProgress).
		Where("user_id = ?", userID).
		Group("type").
		Order("type").
		Scan(&rows).Error
	return rows, err
}

func (r *goalRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Goal{})
	return result.RowsAffected, result.Error
}
