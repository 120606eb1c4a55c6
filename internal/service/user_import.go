package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	apperrors "github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/errors"
)

const maxImportRows = 500

var (
	ErrImportNoData      = apperrors.New(apperrors.ErrValidation, 20101, "Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = apperrors.New(apperrors.ErrValidation, 20102, fmt.Sprintf("数据行数超过上限 %d 行", maxImportRows))
	ErrImportBadHeader   = apperrors.New(apperrors.ErrValidation, 20103, "Excel表头缺少必要列（姓名/邮箱）")
	ErrImportBadFile     = apperrors.New(apperrors.ErrValidation, 20104, "无法解析Excel文件")
)

// ImportUserRow Excel 导入解析后的单行数据
type ImportUserRow struct {
	Row        int
	Name       string
	Email      string
	Role       string
	Department string
	LabGroup   string
}

// ────────────────────── ParseImportFile ──────────────────────

// ParseImportFile 解析成员名单，第一行为表头，列顺序不限
func (s *userService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		s.logger.Warn("解析导入文件失败", zap.Error(err))
		return nil, ErrImportBadFile
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	cell := func(row []string, key string) string {
		if idx := colIndex[key]; idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportUserRow{
			Row:        i + 1,
			Name:       cell(row, "name"),
			Email:      normalizeEmail(cell(row, "email")),
			Role:       strings.ToLower(cell(row, "role")),
			Department: cell(row, "department"),
			LabGroup:   cell(row, "lab_group"),
		}

		// 跳过全空行
		if item.Name == "" && item.Email == "" && item.Department == "" && item.LabGroup == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseHeaderIndex 解析表头，返回列名 -> 列索引映射，缺失的列为 -1
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":       -1,
		"email":      -1,
		"role":       -1,
		"department": -1,
		"lab_group":  -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "姓名", "name":
			idx["name"] = i
		case "邮箱", "email":
			idx["email"] = i
		case "角色", "role":
			idx["role"] = i
		case "院系", "department":
			idx["department"] = i
		case "课题组", "lab_group", "labgroup", "lab group":
			idx["lab_group"] = i
		}
	}
	return idx
}

// ────────────────────── ImportUsers ──────────────────────

// ImportUsers 批量创建成员账号
// 逐行预校验，失败行记入 Errors；通过校验的行在同一事务中写入，任一写入失败全部回滚
func (s *userService) ImportUsers(ctx context.Context, actor policy.Actor, rows []ImportUserRow) (*dto.ImportUserResponse, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrUserForbidden
	}

	resp := &dto.ImportUserResponse{
		Total:   len(rows),
		Errors:  make([]dto.ImportUserError, 0),
		Created: make([]dto.ImportedUser, 0),
	}
	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportUserError{Row: row, Reason: reason})
	}

	// 第一阶段：数据预校验（不接触数据库写操作）
	type validatedRow struct {
		user     *model.User
		password string
	}
	var validRows []validatedRow
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		if row.Name == "" || row.Email == "" {
			fail(row.Row, "必填字段为空")
			continue
		}
		if _, err := mail.ParseAddress(row.Email); err != nil {
			fail(row.Row, fmt.Sprintf("邮箱格式错误: %s", row.Email))
			continue
		}
		role := orDefault(row.Role, model.RoleStudent)
		if role != model.RoleStudent && role != model.RoleProfessor {
			fail(row.Row, fmt.Sprintf("角色无效: %s", row.Role))
			continue
		}
		if seen[row.Email] {
			fail(row.Row, fmt.Sprintf("文件内邮箱重复: %s", row.Email))
			continue
		}
		if _, err := s.repo.User.GetByEmail(ctx, row.Email); err == nil {
			fail(row.Row, fmt.Sprintf("邮箱已存在: %s", row.Email))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询用户失败", zap.String("email", row.Email), zap.Error(err))
			return nil, err
		}

		pwd, hash, err := newTempPassword()
		if err != nil {
			fail(row.Row, "密码生成失败")
			continue
		}

		seen[row.Email] = true
		validRows = append(validRows, validatedRow{
			user: &model.User{
				Name:         row.Name,
				Email:        row.Email,
				PasswordHash: string(hash),
				Role:         role,
				Department:   row.Department,
				LabGroup:     row.LabGroup,
				IsActive:     true,
			},
			password: pwd,
		})
	}

	if len(validRows) == 0 {
		return resp, nil
	}

	// 第二阶段：在事务中批量创建所有通过校验的用户
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, vr := range validRows {
			if err := tx.User.Create(ctx, vr.user); err != nil {
				return fmt.Errorf("写入用户 %s 失败，已回滚全部导入: %w", vr.user.Email, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导入用户写入失败，事务回滚", zap.Error(err))
		return nil, err
	}

	for _, vr := range validRows {
		resp.Success++
		resp.Created = append(resp.Created, dto.ImportedUser{
			ID:           vr.user.ID,
			Name:         vr.user.Name,
			Email:        vr.user.Email,
			TempPassword: vr.password,
		})
	}

	s.logger.Info("批量导入用户完成",
		zap.String("operator", actor.UserID),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}
