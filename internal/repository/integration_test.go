//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=lab password=lab_password dbname=lab_tracker_test sslmode=disable TimeZone=UTC"
	}

	var err error
	pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}

	// 使用与生产一致的迁移脚本建表
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func pgUser(t *testing.T, repo *repository.Repository, role string) *model.User {
	t.Helper()
	u := &model.User{
		Name:         "测试用户",
		Email:        fmt.Sprintf("user%d@lab.edu", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         role,
		IsActive:     true,
	}
	if err := repo.User.Create(context.Background(), u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback
// ═══════════════════════════════════════════════════════════

func TestPG_TransactionRollback(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	u := pgUser(t, repo, model.RoleStudent)
	defer pgDB.Where("id = ?", u.ID).Delete(&model.User{})

	goal := &model.Goal{UserID: u.ID, Title: "回滚", Type: model.GoalTypeDaily, Status: model.GoalStatusNotStarted, Priority: model.PriorityMedium}
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Goal.Create(ctx, goal); err != nil {
			return err
		}
		return fmt.Errorf("强制回滚")
	})
	if err == nil {
		t.Fatal("期望事务返回错误")
	}

	if _, err := repo.Goal.GetByID(ctx, goal.ID); err == nil {
		t.Fatal("期望回滚后查不到目标，但实际查到了")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Cascade 相关约束
// ═══════════════════════════════════════════════════════════

// 论文被删除时，其他成员任务上的 related_paper_id 置空而非阻止删除
func TestPG_DeletePaperNullsTaskReference(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	author := pgUser(t, repo, model.RoleStudent)
	other := pgUser(t, repo, model.RoleStudent)

	paper := &model.Paper{Title: "待删除论文", Status: model.PaperStatusInProgress, Authors: []model.PaperAuthor{
		{UserID: &author.ID, Name: author.Name, Role: model.AuthorRoleLead},
	}}
	if err := repo.Paper.Create(ctx, paper); err != nil {
		t.Fatalf("创建论文失败: %v", err)
	}

	task := &model.Task{Title: "关联任务", AssignedByID: other.ID, AssignedToID: other.ID,
		Status: model.TaskStatusPending, Priority: model.PriorityMedium, DueDate: time.Now().UTC(),
		RelatedPaperID: &paper.ID}
	if err := repo.Task.Create(ctx, task); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	defer func() {
		pgDB.Where("id = ?", task.ID).Delete(&model.Task{})
		pgDB.Where("id IN ?", []string{author.ID, other.ID}).Delete(&model.User{})
	}()

	if _, err := repo.Paper.DeleteByAuthor(ctx, author.ID); err != nil {
		t.Fatalf("按作者删除论文失败: %v", err)
	}

	got, err := repo.Task.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if got.RelatedPaperID != nil {
		t.Errorf("期望 related_paper_id 被置空，实际: %v", *got.RelatedPaperID)
	}
}

func TestPG_GoalStatsByType(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	u := pgUser(t, repo, model.RoleStudent)
	defer func() {
		pgDB.Where("user_id = ?", u.ID).Delete(&model.Goal{})
		pgDB.Where("id = ?", u.ID).Delete(&model.User{})
	}()

	for _, status := range []string{model.GoalStatusCompleted, model.GoalStatusInProgress} {
		g := &model.Goal{UserID: u.ID, Title: status, Type: model.GoalTypeMonthly, Status: status, Priority: model.PriorityMedium}
		if status == model.GoalStatusCompleted {
			g.Progress = 100
		}
		if err := repo.Goal.Create(ctx, g); err != nil {
			t.Fatalf("创建目标失败: %v", err)
		}
	}

	stats, err := repo.Goal.StatsByType(ctx, u.ID)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if len(stats) != 1 || stats[0].Total != 2 || stats[0].Completed != 1 {
		t.Errorf("统计结果不符合预期: %+v", stats)
	}
	if stats[0].AvgProgress != 50 {
		t.Errorf("期望平均进度 50，实际: %v", stats[0].AvgProgress)
	}
}
