package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

// PostTagRepo manages the join rows directly so tag-set replacement can
// leave unchanged pairs untouched instead of rewriting the whole set.
type PostTagRepo interface {
	ListTagIDs(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]uuid.UUID, error)
	Add(ctx context.Context, tx *gorm.DB, pairs []*types.PostTag) error
	Remove(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tagIDs []uuid.UUID) error
}

type postTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostTagRepo(db *gorm.DB, baseLog *logger.Logger) PostTagRepo {
	return &postTagRepo{db: db, log: baseLog.With("repo", "PostTagRepo")}
}

func (ptr *postTagRepo) ListTagIDs(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]uuid.UUID, error) {
	transaction := resolve(ptr.db, tx)

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.PostTag{}).
		Where("post_id = ?", postID).
		Pluck("tag_id", &ids).Error; err != nil {
		return nil, apperr.FromDB("post_tag", err)
	}
	return ids, nil
}

func (ptr *postTagRepo) Add(ctx context.Context, tx *gorm.DB, pairs []*types.PostTag) error {
	transaction := resolve(ptr.db, tx)

	if len(pairs) == 0 {
		return nil
	}
	for _, pair := range pairs {
		if pair.ID == uuid.Nil {
			pair.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&pairs).Error; err != nil {
		return apperr.FromDB("post_tag", err)
	}
	return nil
}

func (ptr *postTagRepo) Remove(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tagIDs []uuid.UUID) error {
	transaction := resolve(ptr.db, tx)

	if len(tagIDs) == 0 {
		return nil
	}
	if err := transaction.WithContext(ctx).
		Where("post_id = ? AND tag_id IN ?", postID, tagIDs).
		Delete(&types.PostTag{}).Error; err != nil {
		return apperr.FromDB("post_tag", err)
	}
	return nil
}
