package service

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// mock 仓储不会触发 GORM 钩子，主键与时间戳在 Create 中手工补齐
// 时间戳单调递增，保证倒序列表的顺序稳定

var mockClock int64

func stamp(b *model.BaseModel) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	n := atomic.AddInt64(&mockClock, 1)
	b.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second)
	b.UpdatedAt = b.CreatedAt
}

// mockRepos 测试中直接访问各 mock 仓储的句柄
type mockRepos struct {
	user         *mockUserRepo
	goal         *mockGoalRepo
	paper        *mockPaperRepo
	task         *mockTaskRepo
	activity     *mockActivityRepo
	notification *mockNotificationRepo
	todo         *mockTodoRepo
}

// newMockRepository 组装未绑定数据库的 Repository 聚合；Transaction 直接执行回调
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:         &mockUserRepo{users: make(map[string]*model.User)},
		goal:         &mockGoalRepo{goals: make(map[string]*model.Goal)},
		paper:        &mockPaperRepo{papers: make(map[string]*model.Paper)},
		task:         &mockTaskRepo{tasks: make(map[string]*model.Task)},
		activity:     &mockActivityRepo{activities: make(map[string]*model.Activity)},
		notification: &mockNotificationRepo{items: make(map[string]*model.Notification)},
		todo:         &mockTodoRepo{todos: make(map[string]*model.PersonalTodo)},
	}
	repo := &repository.Repository{
		User:         m.user,
		Goal:         m.goal,
		Paper:        m.paper,
		Task:         m.task,
		Activity:     m.activity,
		Notification: m.notification,
		PersonalTodo: m.todo,
	}
	return repo, m
}

// addUser 预置用户
func (m *mockRepos) addUser(name, role string) *model.User {
	u := &model.User{
		Name:     name,
		Email:    strings.ToLower(name) + "@lab.test",
		Role:     role,
		IsActive: true,
	}
	_ = m.user.Create(context.Background(), u)
	return u
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	stamp(&user.BaseModel)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, f repository.UserFilter) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Department != "" && u.Department != f.Department {
			continue
		}
		if f.LabGroup != "" && u.LabGroup != f.LabGroup {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock GoalRepository ──

type mockGoalRepo struct {
	goals map[string]*model.Goal
}

func (m *mockGoalRepo) Create(_ context.Context, goal *model.Goal) error {
	stamp(&goal.BaseModel)
	m.goals[goal.ID] = goal
	return nil
}

func (m *mockGoalRepo) GetByID(_ context.Context, id string) (*model.Goal, error) {
	if g, ok := m.goals[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGoalRepo) Update(_ context.Context, goal *model.Goal) error {
	m.goals[goal.ID] = goal
	return nil
}

func (m *mockGoalRepo) Delete(_ context.Context, id string) error {
	delete(m.goals, id)
	return nil
}

func (m *mockGoalRepo) List(_ context.Context, f repository.GoalFilter) ([]model.Goal, error) {
	var result []model.Goal
	for _, g := range m.goals {
		if f.UserID != "" && g.UserID != f.UserID {
			continue
		}
		if f.Type != "" && g.Type != f.Type {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		if f.StartFrom != nil && (g.StartDate == nil || g.StartDate.Before(*f.StartFrom)) {
			continue
		}
		if f.EndTo != nil && (g.EndDate == nil || g.EndDate.After(*f.EndTo)) {
			continue
		}
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockGoalRepo) StatsByType(_ context.Context, userID string) ([]repository.GoalTypeStat, error) {
	byType := make(map[string]*repository.GoalTypeStat)
	sum := make(map[string]int)
	for _, g := range m.goals {
		if g.UserID != userID {
			continue
		}
		st, ok := byType[g.Type]
		if !ok {
			st = &repository.GoalTypeStat{Type: g.Type}
			byType[g.Type] = st
		}
		st.Total++
		switch g.Status {
		case model.GoalStatusCompleted:
			st.Completed++
		case model.GoalStatusInProgress:
			st.InProgress++
		}
		sum[g.Type] += g.Progress
	}

	result := make([]repository.GoalTypeStat, 0, len(byType))
	for t, st := range byType {
		st.AvgProgress = float64(sum[t]) / float64(st.Total)
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result, nil
}

func (m *mockGoalRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, g := range m.goals {
		if g.UserID == userID {
			delete(m.goals, id)
			n++
		}
	}
	return n, nil
}

// ── Mock PaperRepository ──

type mockPaperRepo struct {
	papers map[string]*model.Paper
}

func (m *mockPaperRepo) Create(_ context.Context, paper *model.Paper) error {
	stamp(&paper.BaseModel)
	m.setAuthors(paper, paper.Authors)
	m.papers[paper.ID] = paper
	return nil
}

func (m *mockPaperRepo) setAuthors(paper *model.Paper, authors []model.PaperAuthor) {
	for i := range authors {
		if authors[i].ID == "" {
			authors[i].ID = uuid.NewString()
		}
		authors[i].PaperID = paper.ID
		authors[i].Position = i
	}
	paper.Authors = authors
}

func (m *mockPaperRepo) GetByID(_ context.Context, id string) (*model.Paper, error) {
	if p, ok := m.papers[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaperRepo) Update(_ context.Context, paper *model.Paper) error {
	m.papers[paper.ID] = paper
	return nil
}

func (m *mockPaperRepo) ReplaceAuthors(_ context.Context, paperID string, authors []model.PaperAuthor) error {
	p, ok := m.papers[paperID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.setAuthors(p, authors)
	return nil
}

func (m *mockPaperRepo) Delete(_ context.Context, id string) error {
	delete(m.papers, id)
	return nil
}

func (m *mockPaperRepo) List(_ context.Context, f repository.PaperFilter) ([]model.Paper, error) {
	var result []model.Paper
	for _, p := range m.papers {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.AuthorID != "" && !hasAuthor(p, f.AuthorID) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockPaperRepo) DeleteByAuthor(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, p := range m.papers {
		if hasAuthor(p, userID) {
			delete(m.papers, id)
			n++
		}
	}
	return n, nil
}

func hasAuthor(p *model.Paper, userID string) bool {
	for i := range p.Authors {
		if p.Authors[i].AuthorUserID() == userID {
			return true
		}
	}
	return false
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	stamp(&task.BaseModel)
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) List(_ context.Context, f repository.TaskFilter) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.AssignedToID != "" && t.AssignedToID != f.AssignedToID {
			continue
		}
		if f.ParticipantID != "" && t.AssignedToID != f.ParticipantID && t.AssignedByID != f.ParticipantID {
			continue
		}
		if f.DueAfter != nil && t.DueDate.Before(*f.DueAfter) {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockTaskRepo) DeleteByParticipant(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range m.tasks {
		if t.AssignedToID == userID || t.AssignedByID == userID {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities map[string]*model.Activity
	createErr  error // 非 nil 时 Create 返回该错误
}

func (m *mockActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	if m.createErr != nil {
		return m.createErr
	}
	stamp(&activity.BaseModel)
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) Delete(_ context.Context, id string) error {
	delete(m.activities, id)
	return nil
}

func (m *mockActivityRepo) ListRecent(_ context.Context, f repository.ActivityFilter) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result, nil
}

func (m *mockActivityRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, a := range m.activities {
		if a.UserID == userID {
			delete(m.activities, id)
			n++
		}
	}
	return n, nil
}

// byUser 某用户的全部动态，按时间倒序
func (m *mockActivityRepo) byUser(userID string) []model.Activity {
	list, _ := m.ListRecent(context.Background(), repository.ActivityFilter{UserID: userID})
	return list
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items map[string]*model.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	stamp(&n.BaseModel)
	m.items[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.items[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) Update(_ context.Context, n *model.Notification) error {
	m.items[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, item := range m.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string, at time.Time) (int64, error) {
	var n int64
	for _, item := range m.items {
		if item.UserID == userID && !item.IsRead {
			item.IsRead = true
			readAt := at
			item.ReadAt = &readAt
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// ── Mock PersonalTodoRepository ──

type mockTodoRepo struct {
	todos map[string]*model.PersonalTodo
}

func (m *mockTodoRepo) Create(_ context.Context, todo *model.PersonalTodo) error {
	stamp(&todo.BaseModel)
	m.todos[todo.ID] = todo
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id string) (*model.PersonalTodo, error) {
	if t, ok := m.todos[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTodoRepo) Update(_ context.Context, todo *model.PersonalTodo) error {
	m.todos[todo.ID] = todo
	return nil
}

func (m *mockTodoRepo) Delete(_ context.Context, id string) error {
	delete(m.todos, id)
	return nil
}

func (m *mockTodoRepo) ListByUser(_ context.Context, userID string, f repository.TodoFilter) ([]model.PersonalTodo, error) {
	var result []model.PersonalTodo
	for _, t := range m.todos {
		if t.UserID != userID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return result, nil
}

func (m *mockTodoRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range m.todos {
		if t.UserID == userID {
			delete(m.todos, id)
			n++
		}
	}
	return n, nil
}
