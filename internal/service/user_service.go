package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/metrics"
)

// UserService 用户管理业务接口（教授与管理员）
type UserService interface {
	List(ctx context.Context, actor policy.Actor, req *dto.UserListRequest) ([]model.User, error)
	GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.UserDetailResponse, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateUserRequest) (*model.User, error)
	// Delete 删除用户及其全部关联数据，返回被删除的用户与各类数据的删除条数
	Delete(ctx context.Context, actor policy.Actor, id string) (*model.User, *dto.DeleteUserResponse, error)
	AssignSupervisor(ctx context.Context, actor policy.Actor, id string, req *dto.AssignSupervisorRequest) (*model.User, error)
	ResetPassword(ctx context.Context, actor policy.Actor, id string) (*dto.ResetPasswordResponse, error)

	Goals(ctx context.Context, actor policy.Actor, id string) ([]model.Goal, error)
	Papers(ctx context.Context, actor policy.Actor, id string) ([]model.Paper, error)
	Tasks(ctx context.Context, actor policy.Actor, id string) ([]model.Task, error)
	SupervisorDashboard(ctx context.Context, actor policy.Actor) (*dto.SupervisorDashboardResponse, error)

	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, actor policy.Actor, rows []ImportUserRow) (*dto.ImportUserResponse, error)
}

type userService struct {
	cfg    *config.DashboardConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.DashboardConfig, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, actor policy.Actor, req *dto.UserListRequest) ([]model.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	users, err := s.repo.User.List(ctx, repository.UserFilter{
		Role:       req.Role,
		Department: req.Department,
		LabGroup:   req.LabGroup,
		Search:     req.Search,
	})
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.UserDetailResponse, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, s.repo, snapshotQuery{UserID: id})
	if err != nil {
		s.logger.Error("统计用户数据失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{User: user, Stats: buildUserStats(snap)}, nil
}

func (s *userService) find(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrUserNotFound)
		if err != ErrUserNotFound {
			s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return user, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateUserRequest) (*model.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != user.Role {
		if policy.IsSelf(actor, id) {
			return nil, ErrUserSelfRoleChange
		}
		// 只有管理员可以授予或撤销管理员角色
		if (*req.Role == model.RoleAdmin || user.Role == model.RoleAdmin) && !actor.IsAdmin() {
			return nil, ErrUserForbidden
		}
		user.Role = *req.Role
	}
	if req.SupervisorID != nil {
		if err := s.checkSupervisor(ctx, id, *req.SupervisorID); err != nil {
			return nil, err
		}
		user.SupervisorID = req.SupervisorID
		user.Supervisor = nil
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.LabGroup != nil {
		user.LabGroup = *req.LabGroup
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.find(ctx, id)
}

// checkSupervisor 导师必须存在且为教授或管理员
func (s *userService) checkSupervisor(ctx context.Context, userID, supervisorID string) error {
	if userID == supervisorID {
		return ErrSelfSupervisor
	}
	supervisor, err := s.repo.User.GetByID(ctx, supervisorID)
	if err != nil {
		return notFound(err, ErrSupervisorNotFound)
	}
	if !policy.CanBeSupervisor(supervisor) {
		return ErrInvalidSupervisor
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, actor policy.Actor, id string) (*model.User, *dto.DeleteUserResponse, error) {
	// 自删校验先于任何查询
	if policy.IsSelf(actor, id) {
		return nil, nil, ErrSelfDelete
	}
	if !policy.CanDeleteUser(actor, id) {
		return nil, nil, ErrUserForbidden
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var result *dto.DeleteUserResponse
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		result, err = cascadeDeleteUser(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Error("级联删除用户失败", zap.String("id", id), zap.Error(err))
		return nil, nil, err
	}

	metrics.CascadeDeletes.Inc()
	s.logger.Info("用户及关联数据已删除",
		zap.String("id", id),
		zap.String("operator", actor.UserID),
		zap.Int64("goals", result.Goals),
		zap.Int64("papers", result.Papers),
		zap.Int64("tasks", result.Tasks),
		zap.Int64("activities", result.Activities),
	)
	return user, result, nil
}

// cascadeDeleteUser 依次删除用户的目标、署名论文、参与任务、动态、通知、个人待办，最后删除用户
// 调用方负责提供事务
func cascadeDeleteUser(ctx context.Context, tx *repository.Repository, userID string) (*dto.DeleteUserResponse, error) {
	var (
		res dto.DeleteUserResponse
		err error
	)
	if res.Goals, err = tx.Goal.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除目标失败: %w", err)
	}
	if res.Papers, err = tx.Paper.DeleteByAuthor(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除论文失败: %w", err)
	}
	if res.Tasks, err = tx.Task.DeleteByParticipant(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除任务失败: %w", err)
	}
	if res.Activities, err = tx.Activity.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除动态失败: %w", err)
	}
	if res.Notifications, err = tx.Notification.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除通知失败: %w", err)
	}
	if res.PersonalTodos, err = tx.PersonalTodo.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除个人待办失败: %w", err)
	}
	if err := tx.User.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("删除用户失败: %w", err)
	}
	return &res, nil
}

// ────────────────────── AssignSupervisor ──────────────────────

func (s *userService) AssignSupervisor(ctx context.Context, actor policy.Actor, id string, req *dto.AssignSupervisorRequest) (*model.User, error) {
	if !policy.CanAssignSupervisor(actor) {
		return nil, ErrUserForbidden
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSupervisor(ctx, id, req.SupervisorID); err != nil {
		return nil, err
	}

	supervisorID := req.SupervisorID
	user.SupervisorID = &supervisorID
	user.Supervisor = nil

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("指定导师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.find(ctx, id)
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, actor policy.Actor, id string) (*dto.ResetPasswordResponse, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == model.RoleAdmin && !actor.IsAdmin() {
		return nil, ErrUserForbidden
	}

	tempPassword, hash, err := newTempPassword()
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ────────────────────── Per-user views ──────────────────────

func (s *userService) Goals(ctx context.Context, actor policy.Actor, id string) ([]model.Goal, error) {
	if err := s.checkViewable(ctx, actor, id); err != nil {
		return nil, err
	}
	goals, err := s.repo.Goal.List(ctx, repository.GoalFilter{UserID: id})
	if err != nil {
		s.logger.Error("查询用户目标失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return goals, nil
}

func (s *userService) Papers(ctx context.Context, actor policy.Actor, id string) ([]model.Paper, error) {
	if err := s.checkViewable(ctx, actor, id); err != nil {
		return nil, err
	}
	papers, err := s.repo.Paper.List(ctx, repository.PaperFilter{AuthorID: id})
	if err != nil {
		s.logger.Error("查询用户论文失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return papers, nil
}

func (s *userService) Tasks(ctx context.Context, actor policy.Actor, id string) ([]model.Task, error) {
	if err := s.checkViewable(ctx, actor, id); err != nil {
		return nil, err
	}
	tasks, err := s.repo.Task.List(ctx, repository.TaskFilter{AssignedToID: id})
	if err != nil {
		s.logger.Error("查询用户任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

func (s *userService) checkViewable(ctx context.Context, actor policy.Actor, id string) error {
	if !policy.CanManageUsers(actor) {
		return ErrUserForbidden
	}
	_, err := s.find(ctx, id)
	return err
}

// ────────────────────── SupervisorDashboard ──────────────────────

func (s *userService) SupervisorDashboard(ctx context.Context, actor policy.Actor) (*dto.SupervisorDashboardResponse, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	students, snap, err := loadSupervisorData(ctx, s.repo, s.cfg.SupervisorActivityLimit)
	if err != nil {
		s.logger.Error("加载导师看板失败", zap.Error(err))
		return nil, err
	}
	return buildSupervisorDashboard(students, snap), nil
}

// loadSupervisorData 并发读取全体学生与全量看板数据
func loadSupervisorData(ctx context.Context, repo *repository.Repository, activityLimit int) ([]model.User, snapshot, error) {
	var (
		students []model.User
		snap     snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = repo.User.List(gctx, repository.UserFilter{Role: model.RoleStudent})
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = loadSnapshot(gctx, repo, snapshotQuery{ActivityLimit: activityLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, snapshot{}, err
	}
	return students, snap, nil
}

// ── 内部辅助方法 ──

// newTempPassword 生成 8 位临时密码（保证包含字母和数字）及其哈希
func newTempPassword() (string, []byte, error) {
	pwd, err := generateTempPassword(8)
	if err != nil {
		return "", nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	return pwd, hash, nil
}

// generateTempPassword 生成指定长度的临时密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}

	result := make([]byte, length)

	// 保证至少1个字母+1个数字
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// 打乱顺序
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
