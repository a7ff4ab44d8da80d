package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
	"github.com/gaaferHajji2/go-blog-api/internal/validation"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tag *types.Tag) (*types.Tag, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Tag, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.TagPatch) (*types.Tag, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int) (types.Page[*types.Tag], error)
}

type tagRepo struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validation.Validator
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger, validate *validation.Validator) TagRepo {
	return &tagRepo{
		db:       db,
		log:      baseLog.With("repo", "TagRepo"),
		validate: validate,
	}
}

func (tr *tagRepo) Create(ctx context.Context, tx *gorm.DB, tag *types.Tag) (*types.Tag, error) {
	transaction := resolve(tr.db, tx)

	if err := tr.validate.Struct("tag", tag); err != nil {
		return nil, err
	}
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, apperr.FromDB("tag", err)
	}
	return tag, nil
}

func (tr *tagRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tag, error) {
	transaction := resolve(tr.db, tx)

	var tag types.Tag
	if err := transaction.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, notFound("tag", err)
	}
	return &tag, nil
}

func (tr *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Tag, error) {
	transaction := resolve(tr.db, tx)

	var tags []*types.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&tags).Error; err != nil {
		return nil, apperr.FromDB("tag", err)
	}
	return tags, nil
}

func (tr *tagRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.TagPatch) (*types.Tag, error) {
	transaction := resolve(tr.db, tx)

	var tag types.Tag
	if err := transaction.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, notFound("tag", err)
	}

	changed := patch.Apply(&tag)
	if len(changed) == 0 {
		return &tag, nil
	}
	if err := tr.validate.StructPartial("tag", &tag, changed...); err != nil {
		return nil, err
	}

	if err := transaction.WithContext(ctx).Save(&tag).Error; err != nil {
		return nil, apperr.FromDB("tag", err)
	}
	return &tag, nil
}

// Delete removes the tag and, through the join-table cascade, its
// assignments. Posts themselves are untouched.
func (tr *tagRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := resolve(tr.db, tx)

	result := transaction.WithContext(ctx).Delete(&types.Tag{}, "id = ?", id)
	if result.Error != nil {
		return false, apperr.FromDB("tag", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (tr *tagRepo) Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int) (types.Page[*types.Tag], error) {
	var empty types.Page[*types.Tag]
	if err := checkPage("tag", page, pageSize); err != nil {
		return empty, err
	}
	transaction := resolve(tr.db, tx)

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Tag{}).
		Count(&total).Error; err != nil {
		return empty, apperr.FromDB("tag", err)
	}

	var tags []*types.Tag
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&tags).Error; err != nil {
		return empty, apperr.FromDB("tag", err)
	}
	return types.NewPage(tags, total, pageSize), nil
}
