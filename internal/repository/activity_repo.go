package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// ActivityFilter 动态列表筛选条件；Limit <= 0 表示不限制条数
type ActivityFilter struct {
	UserID   string
	Type     string
	Limit    int
	WithUser bool // 展开操作者信息
}

// ActivityRepository 动态数据访问接口
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	Delete(ctx context.Context, id string) error
	ListRecent(ctx context.Context, f ActivityFilter) ([]model.Activity, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Activity{}).Error
}

// ListRecent 按创建时间倒序返回动态
func (r *activityRepo) ListRecent(ctx context.Context, f ActivityFilter) ([]model.Activity, error) {
	var activities []model.Activity
	db := r.db.WithContext(ctx).Model(&model.Activity{})

	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.WithUser {
		db = db.Preload("User")
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	err := db.Order("created_at DESC").Find(&activities).Error
	return activities, err
}

func (r *activityRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}
