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

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *types.Post) (*types.Post, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, projection types.Projection) (*types.Post, error)
	ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.Post, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.PostPatch) (*types.Post, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int, filter types.PostFilter) (types.Page[*types.Post], error)
}

type postRepo struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validation.Validator
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger, validate *validation.Validator) PostRepo {
	return &postRepo{
		db:       db,
		log:      baseLog.With("repo", "PostRepo"),
		validate: validate,
	}
}

func applyPostFilter(query *gorm.DB, filter types.PostFilter) *gorm.DB {
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	return query
}

func (pr *postRepo) Create(ctx context.Context, tx *gorm.DB, post *types.Post) (*types.Post, error) {
	transaction := resolve(pr.db, tx)

	if err := pr.validate.Struct("post", post); err != nil {
		return nil, err
	}
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Omit("Tags", "Account").Create(post).Error; err != nil {
		return nil, apperr.FromDB("post", err)
	}
	return post, nil
}

func (pr *postRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, projection types.Projection) (*types.Post, error) {
	transaction := resolve(pr.db, tx)

	query := transaction.WithContext(ctx)
	switch projection {
	case types.ProjectionFull:
		query = query.
			Preload("Tags", func(db *gorm.DB) *gorm.DB {
				return db.Order("name ASC")
			}).
			Preload("Account", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "handle", "email")
			})
	default:
		query = query.Omit("body")
	}

	var post types.Post
	if err := query.First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound("post", err)
	}
	return &post, nil
}

// ListByAccount returns the account's posts in the light shape, newest
// first. Existence of the account is the caller's concern.
func (pr *postRepo) ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.Post, error) {
	transaction := resolve(pr.db, tx)

	var posts []*types.Post
	if err := transaction.WithContext(ctx).
		Omit("body").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, apperr.FromDB("post", err)
	}
	return posts, nil
}

func (pr *postRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.PostPatch) (*types.Post, error) {
	transaction := resolve(pr.db, tx)

	var post types.Post
	if err := transaction.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound("post", err)
	}

	changed := patch.Apply(&post)
	if len(changed) == 0 {
		return &post, nil
	}
	if err := pr.validate.StructPartial("post", &post, changed...); err != nil {
		return nil, err
	}

	if err := transaction.WithContext(ctx).Omit("Tags", "Account").Save(&post).Error; err != nil {
		return nil, apperr.FromDB("post", err)
	}
	return &post, nil
}

func (pr *postRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := resolve(pr.db, tx)

	result := transaction.WithContext(ctx).Delete(&types.Post{}, "id = ?", id)
	if result.Error != nil {
		return false, apperr.FromDB("post", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Paginate lists posts in the light shape with the author summary
// preloaded. The count runs on the base post table before any preload, so
// tag fan-out cannot inflate it.
func (pr *postRepo) Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int, filter types.PostFilter) (types.Page[*types.Post], error) {
	var empty types.Page[*types.Post]
	if err := checkPage("post", page, pageSize); err != nil {
		return empty, err
	}
	transaction := resolve(pr.db, tx)

	var total int64
	if err := applyPostFilter(transaction.WithContext(ctx).Model(&types.Post{}), filter).
		Distinct("id").
		Count(&total).Error; err != nil {
		return empty, apperr.FromDB("post", err)
	}

	var posts []*types.Post
	if err := applyPostFilter(transaction.WithContext(ctx), filter).
		Omit("body").
		Preload("Account", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "handle", "email")
		}).
		Order("created_at DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&posts).Error; err != nil {
		return empty, apperr.FromDB("post", err)
	}
	return types.NewPage(posts, total, pageSize), nil
}
