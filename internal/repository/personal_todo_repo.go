package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// TodoFilter 个人待办筛选条件
type TodoFilter struct {
	Type     string
	Status   string
	Priority string
}

// PersonalTodoRepository 个人待办数据访问接口，所有查询均限定所有者
type PersonalTodoRepository interface {
	Create(ctx context.Context, todo *model.PersonalTodo) error
	GetByID(ctx context.Context, id string) (*model.PersonalTodo, error)
	Update(ctx context.Context, todo *model.PersonalTodo) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, f TodoFilter) ([]model.PersonalTodo, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type personalTodoRepo struct {
	db *gorm.DB
}

// NewPersonalTodoRepo 创建 PersonalTodoRepository 实例
func NewPersonalTodoRepo(db *gorm.DB) PersonalTodoRepository {
	return &personalTodoRepo{db: db}
}

func (r *personalTodoRepo) Create(ctx context.Context, todo *model.PersonalTodo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *personalTodoRepo) GetByID(ctx context.Context, id string) (*model.PersonalTodo, error) {
	var todo model.PersonalTodo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *personalTodoRepo) Update(ctx context.Context, todo *model.PersonalTodo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

func (r *personalTodoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PersonalTodo{}).Error
}

// ListByUser 按截止日期升序、创建时间倒序；无截止日期的排在最后
func (r *personalTodoRepo) ListByUser(ctx context.Context, userID string, f TodoFilter) ([]model.PersonalTodo, error) {
	var todos []model.PersonalTodo
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		db = db.Where("priority = ?", f.Priority)
	}

	err := db.
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

func (r *personalTodoRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.PersonalTodo{})
	return result.RowsAffected, result.Error
}
