package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
	apperrors "github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/errors"
)

var ErrExportGenerateFail = apperrors.New(apperrors.ErrInternal, 27001, "生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// SupervisorReport 导出导师看板为 Excel，包含概览、学生、最近动态三个 Sheet
	SupervisorReport(ctx context.Context, actor policy.Actor) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.DashboardConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.DashboardConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// studentRow 学生 Sheet 的一行
type studentRow struct {
	user            *model.User
	goals           int
	goalsCompleted  int
	papers          int
	papersPublished int
	tasks           int
	tasksCompleted  int
}

// ═══════════════════════════════════════════════════════════
// SupervisorReport — 导出导师看板
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "概览"：成员 / 目标 / 论文 / 任务统计
//   - Sheet "学生"：每名学生一行，目标、署名论文、被指派任务的计数
//   - Sheet "最近动态"：时间、成员、类型、操作、描述
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) SupervisorReport(ctx context.Context, actor policy.Actor) (*bytes.Buffer, string, error) {
	if !policy.CanManageUsers(actor) {
		return nil, "", ErrUserForbidden
	}

	// 1. 读取数据
	students, snap, err := loadSupervisorData(ctx, s.repo, s.cfg.SupervisorActivityLimit)
	if err != nil {
		s.logger.Error("加载导师看板失败", zap.Error(err))
		return nil, "", err
	}
	dash := buildSupervisorDashboard(students, snap)

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 概览
	overview := "概览"
	idx, _ := f.NewSheet(overview)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.SetColWidth(overview, "A", "A", 16)
	f.SetColWidth(overview, "B", "E", 12)

	writeRow(f, overview, 1, "类别", "总数", "已完成/已发表", "进行中", "其他")
	f.SetCellStyle(overview, "A1", "E1", headerStyle)
	st := dash.Stats
	writeRow(f, overview, 2, "学生", st.Users.Total, st.Users.Active, "", "")
	writeRow(f, overview, 3, "目标", st.Goals.Total, st.Goals.Completed, st.Goals.InProgress, st.Goals.NotStarted)
	writeRow(f, overview, 4, "论文", st.Papers.Total, st.Papers.Published, st.Papers.InProgress, st.Papers.UnderReview)
	writeRow(f, overview, 5, "任务", st.Tasks.Total, st.Tasks.Completed, st.Tasks.InProgress, st.Tasks.Pending)

	// 学生
	sheet := "学生"
	f.NewSheet(sheet)
	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 16)
	f.SetColWidth(sheet, "E", "K", 12)
	writeRow(f, sheet, 1, "姓名", "邮箱", "院系", "课题组", "状态",
		"目标", "已完成目标", "论文", "已发表论文", "任务", "已完成任务")
	f.SetCellStyle(sheet, "A1", "K1", headerStyle)
	for i, r := range studentRows(dash.Users, snap) {
		status := "停用"
		if r.user.IsActive {
			status = "正常"
		}
		writeRow(f, sheet, i+2, r.user.Name, r.user.Email, r.user.Department, r.user.LabGroup, status,
			r.goals, r.goalsCompleted, r.papers, r.papersPublished, r.tasks, r.tasksCompleted)
	}

	// 最近动态
	sheet = "最近动态"
	f.NewSheet(sheet)
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "C", 14)
	f.SetColWidth(sheet, "D", "E", 30)
	writeRow(f, sheet, 1, "时间", "成员", "类型", "操作", "描述")
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	for i, a := range dash.RecentActivities {
		name := a.UserID
		if a.User != nil {
			name = a.User.Name
		}
		writeRow(f, sheet, i+2, a.CreatedAt.Format("2006-01-02 15:04"), name, a.Type, a.Action, a.Description)
	}

	// 3. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("lab_report_%s.xlsx", nowUTC().Format("20060102"))
	return buf, filename, nil
}

// studentRows 按学生汇总目标、署名论文与被指派任务
func studentRows(students []model.User, snap snapshot) []studentRow {
	rows := make([]studentRow, len(students))
	index := make(map[string]*studentRow, len(students))
	for i := range students {
		rows[i].user = &students[i]
		index[students[i].ID] = &rows[i]
	}

	for i := range snap.Goals {
		if r, ok := index[snap.Goals[i].UserID]; ok {
			r.goals++
			if snap.Goals[i].Status == model.GoalStatusCompleted {
				r.goalsCompleted++
			}
		}
	}
	for i := range snap.Papers {
		p := &snap.Papers[i]
		counted := make(map[string]bool, len(p.Authors))
		for j := range p.Authors {
			uid := p.Authors[j].AuthorUserID()
			r, ok := index[uid]
			if !ok || counted[uid] {
				continue
			}
			counted[uid] = true
			r.papers++
			if p.Status == model.PaperStatusPublished {
				r.papersPublished++
			}
		}
	}
	for i := range snap.Tasks {
		if r, ok := index[snap.Tasks[i].AssignedToID]; ok {
			r.tasks++
			if snap.Tasks[i].Status == model.TaskStatusCompleted {
				r.tasksCompleted++
			}
		}
	}
	return rows
}

// ── 辅助函数 ──

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
