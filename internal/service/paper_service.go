package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/repository"
)

// PaperService 论文业务接口
//
// 列表与详情对所有登录用户开放；修改、删除限作者或导师；评论任何登录用户可追加
type PaperService interface {
	List(ctx context.Context, req *dto.PaperListRequest) ([]model.Paper, error)
	GetByID(ctx context.Context, id string) (*model.Paper, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CreatePaperRequest) (*model.Paper, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdatePaperRequest) (*model.Paper, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	AddComment(ctx context.Context, actor policy.Actor, id string, req *dto.CommentRequest) (*model.Paper, error)
}

type paperService struct {
	repo   *repository.Repository
	rec    *recorder
	logger *zap.Logger
}

// NewPaperService 创建 PaperService 实例
func NewPaperService(repo *repository.Repository, rec *recorder, logger *zap.Logger) PaperService {
	return &paperService{repo: repo, rec: rec, logger: logger}
}

// ────────────────────── Query ──────────────────────

func (s *paperService) List(ctx context.Context, req *dto.PaperListRequest) ([]model.Paper, error) {
	papers, err := s.repo.Paper.List(ctx, repository.PaperFilter{Status: req.Status})
	if err != nil {
		s.logger.Error("查询论文列表失败", zap.Error(err))
		return nil, err
	}
	return papers, nil
}

func (s *paperService) GetByID(ctx context.Context, id string) (*model.Paper, error) {
	paper, err := s.repo.Paper.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrPaperNotFound)
		if err != ErrPaperNotFound {
			s.logger.Error("查询论文失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return paper, nil
}

// ────────────────────── Create ──────────────────────

func (s *paperService) Create(ctx context.Context, actor policy.Actor, req *dto.CreatePaperRequest) (*model.Paper, error) {
	creator, err := s.repo.User.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	authors, err := s.resolveAuthors(ctx, req.Authors)
	if err != nil {
		return nil, err
	}
	authors = withCreator(authors, creator)

	now := nowUTC()
	paper := &model.Paper{
		Title:           req.Title,
		Abstract:        req.Abstract,
		Status:          orDefault(req.Status, model.PaperStatusInProgress),
		SubmissionDate:  req.SubmissionDate.Ptr(),
		ReviewDeadline:  req.ReviewDeadline.Ptr(),
		AcceptanceDate:  req.AcceptanceDate.Ptr(),
		PublicationDate: req.PublicationDate.Ptr(),
		DOI:             req.DOI,
		ArxivID:         req.ArxivID,
		IsPublic:        req.IsPublic,
		Keywords:        req.Keywords,
		Versions:        toVersions(req.Versions, now),
		Authors:         authors,
	}
	if req.Venue != nil {
		paper.Venue = model.Venue{Name: req.Venue.Name, Type: req.Venue.Type}
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Paper.Create(ctx, paper); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypePaper, "Created new paper", paper.Title, paper.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("创建论文失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, paper.ID)
}

// withCreator 作者列表为空或未包含创建者时，将创建者作为 lead 作者加入
func withCreator(authors []model.PaperAuthor, creator *model.User) []model.PaperAuthor {
	for _, a := range authors {
		if a.AuthorUserID() == creator.ID {
			return authors
		}
	}
	creatorID := creator.ID
	return append(authors, model.PaperAuthor{
		UserID: &creatorID,
		Name:   creator.Name,
		Role:   model.AuthorRoleLead,
	})
}

// resolveAuthors 校验作者对应的用户存在，并补全署名
func (s *paperService) resolveAuthors(ctx context.Context, in []dto.AuthorInput) ([]model.PaperAuthor, error) {
	authors := make([]model.PaperAuthor, 0, len(in)+1)
	for _, a := range in {
		author := model.PaperAuthor{
			Name: a.Name,
			Role: orDefault(a.Role, model.AuthorRoleCoAuthor),
		}
		if a.UserID != nil && *a.UserID != "" {
			user, err := s.repo.User.GetByID(ctx, *a.UserID)
			if err != nil {
				return nil, notFound(err, ErrAuthorNotFound)
			}
			userID := user.ID
			author.UserID = &userID
			if author.Name == "" {
				author.Name = user.Name
			}
		}
		authors = append(authors, author)
	}
	return authors, nil
}

func toVersions(in []dto.VersionInput, uploadedAt time.Time) []model.PaperVersion {
	out := make([]model.PaperVersion, 0, len(in))
	for _, v := range in {
		out = append(out, model.PaperVersion{
			Version:    v.Version,
			FileURL:    v.FileURL,
			UploadedAt: uploadedAt,
			Notes:      v.Notes,
		})
	}
	return out
}

// keepUploadTimes 已存在的版本号沿用原上传时间
func keepUploadTimes(prev, next []model.PaperVersion) []model.PaperVersion {
	uploaded := make(map[string]time.Time, len(prev))
	for _, v := range prev {
		uploaded[v.Version] = v.UploadedAt
	}
	for i := range next {
		if t, ok := uploaded[next[i].Version]; ok {
			next[i].UploadedAt = t
		}
	}
	return next
}

// ────────────────────── Update ──────────────────────

func (s *paperService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdatePaperRequest) (*model.Paper, error) {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditPaper(actor, paper) {
		return nil, ErrPaperForbidden
	}

	var authors []model.PaperAuthor
	if req.Authors != nil {
		if len(*req.Authors) == 0 {
			return nil, ErrPaperAuthorsEmpty
		}
		if authors, err = s.resolveAuthors(ctx, *req.Authors); err != nil {
			return nil, err
		}
	}

	applyPaperUpdate(paper, req)

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Paper.Update(ctx, paper); err != nil {
			return err
		}
		if authors != nil {
			if err := tx.Paper.ReplaceAuthors(ctx, paper.ID, authors); err != nil {
				return err
			}
		}
		fx.activity(actor.UserID, model.ActivityTypePaper, "Updated paper", paper.Title, paper.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("更新论文失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func applyPaperUpdate(paper *model.Paper, req *dto.UpdatePaperRequest) {
	if req.Title != nil {
		paper.Title = *req.Title
	}
	if req.Abstract != nil {
		paper.Abstract = *req.Abstract
	}
	if req.Status != nil {
		paper.Status = *req.Status
	}
	if req.Venue != nil {
		paper.Venue = model.Venue{Name: req.Venue.Name, Type: req.Venue.Type}
	}
	if req.SubmissionDate.Set {
		paper.SubmissionDate = req.SubmissionDate.Ptr()
	}
	if req.ReviewDeadline.Set {
		paper.ReviewDeadline = req.ReviewDeadline.Ptr()
	}
	if req.AcceptanceDate.Set {
		paper.AcceptanceDate = req.AcceptanceDate.Ptr()
	}
	if req.PublicationDate.Set {
		paper.PublicationDate = req.PublicationDate.Ptr()
	}
	if req.Keywords != nil {
		paper.Keywords = *req.Keywords
	}
	if req.Versions != nil {
		paper.Versions = keepUploadTimes(paper.Versions, toVersions(*req.Versions, nowUTC()))
	}
	if req.DOI != nil {
		paper.DOI = *req.DOI
	}
	if req.ArxivID != nil {
		paper.ArxivID = *req.ArxivID
	}
	if req.IsPublic != nil {
		paper.IsPublic = *req.IsPublic
	}
}

// ────────────────────── Delete ──────────────────────

func (s *paperService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanEditPaper(actor, paper) {
		return ErrPaperForbidden
	}

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Paper.Delete(ctx, id); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypePaper, "Deleted paper", paper.Title, model.PaperRef{})
		return nil
	})
	if err != nil {
		s.logger.Error("删除论文失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Comment ──────────────────────

func (s *paperService) AddComment(ctx context.Context, actor policy.Actor, id string, req *dto.CommentRequest) (*model.Paper, error) {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	paper.Comments = append(paper.Comments, newComment(actor.UserID, req.Text))

	err = s.rec.commit(ctx, func(tx *repository.Repository, fx *sideEffects) error {
		if err := tx.Paper.Update(ctx, paper); err != nil {
			return err
		}
		fx.activity(actor.UserID, model.ActivityTypePaper, "Commented on paper", paper.Title, paper.Ref())
		return nil
	})
	if err != nil {
		s.logger.Error("追加论文评论失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func newComment(userID, text string) model.Comment {
	return model.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: nowUTC(),
	}
}
