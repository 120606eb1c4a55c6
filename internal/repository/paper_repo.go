package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
)

// PaperFilter 论文列表筛选条件
type PaperFilter struct {
	Status   string
	AuthorID string // 仅返回该用户署名的论文
}

// PaperRepository 论文数据访问接口
// 作者列表存放在 paper_authors，写入论文时一并维护
type PaperRepository interface {
	Create(ctx context.Context, paper *model.Paper) error
	GetByID(ctx context.Context, id string) (*model.Paper, error)
	Update(ctx context.Context, paper *model.Paper) error
	ReplaceAuthors(ctx context.Context, paperID string, authors []model.PaperAuthor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PaperFilter) ([]model.Paper, error)
	DeleteByAuthor(ctx context.Context, userID string) (int64, error)
}

type paperRepo struct {
	db *gorm.DB
}

// NewPaperRepo 创建 PaperRepository 实例
func NewPaperRepo(db *gorm.DB) PaperRepository {
	return &paperRepo{db: db}
}

// preloadAuthors 按署名顺序加载作者及其用户信息
func preloadAuthors(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Authors.User")
}

// Create 写入论文与作者；需要原子性时由调用方包裹事务
func (r *paperRepo) Create(ctx context.Context, paper *model.Paper) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(paper).Error; err != nil {
		return err
	}
	return r.insertAuthors(db, paper.ID, paper.Authors)
}

func (r *paperRepo) GetByID(ctx context.Context, id string) (*model.Paper, error) {
	var paper model.Paper
	err := preloadAuthors(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepo) Update(ctx context.Context, paper *model.Paper) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(paper).Error
}

func (r *paperRepo) ReplaceAuthors(ctx context.Context, paperID string, authors []model.PaperAuthor) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("paper_id = ?", paperID).Delete(&model.PaperAuthor{}).Error; err != nil {
		return err
	}
	return r.insertAuthors(db, paperID, authors)
}

func (r *paperRepo) insertAuthors(db *gorm.DB, paperID string, authors []model.PaperAuthor) error {
	if len(authors) == 0 {
		return nil
	}
	rows := make([]model.PaperAuthor, len(authors))
	for i, a := range authors {
		rows[i] = model.PaperAuthor{
			PaperID:  paperID,
			UserID:   a.UserID,
			Name:     a.Name,
			Role:     a.Role,
			Position: i,
		}
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

func (r *paperRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("paper_id = ?", id).Delete(&model.PaperAuthor{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Paper{}).Error
}

func (r *paperRepo) List(ctx context.Context, f PaperFilter) ([]model.Paper, error) {
	var papers []model.Paper
	db := r.db.WithContext(ctx).Model(&model.Paper{})

	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.AuthorID != "" {
		db = db.Where("id IN (?)", authoredBy(r.db.WithContext(ctx), f.AuthorID))
	}

	err := preloadAuthors(db).
		Order("created_at DESC").
		Find(&papers).Error
	return papers, err
}

// DeleteByAuthor 删除该用户署名的全部论文及其作者记录
func (r *paperRepo) DeleteByAuthor(ctx context.Context, userID string) (int64, error) {
	db := r.db.WithContext(ctx)

	var ids []string
	if err := authoredBy(db, userID).Scan(&ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := db.Where("paper_id IN ?", ids).Delete(&model.PaperAuthor{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id IN ?", ids).Delete(&model.Paper{})
	return result.RowsAffected, result.Error
}

// authoredBy 用户署名论文 ID 的子查询
func authoredBy(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&model.PaperAuthor{}).
		Distinct("paper_id").
		Where("user_id = ?", userID)
}
