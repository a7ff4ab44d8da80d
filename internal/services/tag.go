package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/repos"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

type TagInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TagService interface {
	Create(ctx context.Context, input TagInput) (*types.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Tag, error)
	List(ctx context.Context, page, pageSize int) (types.Page[*types.Tag], error)
	Update(ctx context.Context, id uuid.UUID, patch types.TagPatch) (*types.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagService(db *gorm.DB, baseLog *logger.Logger, tagRepo repos.TagRepo) TagService {
	return &tagService{
		db:      db,
		log:     baseLog.With("service", "TagService"),
		tagRepo: tagRepo,
	}
}

func (ts *tagService) Create(ctx context.Context, input TagInput) (*types.Tag, error) {
	return ts.tagRepo.Create(ctx, nil, &types.Tag{
		Name:        input.Name,
		Description: input.Description,
	})
}

func (ts *tagService) GetByID(ctx context.Context, id uuid.UUID) (*types.Tag, error) {
	return ts.tagRepo.GetByID(ctx, nil, id)
}

func (ts *tagService) List(ctx context.Context, page, pageSize int) (types.Page[*types.Tag], error) {
	return ts.tagRepo.Paginate(ctx, nil, page, pageSize)
}

func (ts *tagService) Update(ctx context.Context, id uuid.UUID, patch types.TagPatch) (*types.Tag, error) {
	return ts.tagRepo.Update(ctx, nil, id, patch)
}

func (ts *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := ts.tagRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("tag")
	}
	return nil
}
