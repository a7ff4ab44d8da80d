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

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, projection types.Projection) (*types.Account, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	HandleOrEmailExists(ctx context.Context, tx *gorm.DB, handle, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.AccountPatch) (*types.Account, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int) (types.Page[*types.Account], error)
}

type accountRepo struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validation.Validator
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger, validate *validation.Validator) AccountRepo {
	return &accountRepo{
		db:       db,
		log:      baseLog.With("repo", "AccountRepo"),
		validate: validate,
	}
}

func (ar *accountRepo) Create(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error) {
	transaction := resolve(ar.db, tx)

	if err := ar.validate.Struct("account", account); err != nil {
		return nil, err
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(account).Error; err != nil {
		return nil, apperr.FromDB("account", err)
	}
	return account, nil
}

func (ar *accountRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, projection types.Projection) (*types.Account, error) {
	transaction := resolve(ar.db, tx)

	query := transaction.WithContext(ctx)
	if projection == types.ProjectionFull {
		query = query.
			Preload("Profile").
			Preload("Posts", func(db *gorm.DB) *gorm.DB {
				return db.Omit("body").Order("created_at DESC")
			})
	}

	var account types.Account
	if err := query.First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound("account", err)
	}
	return &account, nil
}

func (ar *accountRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := resolve(ar.db, tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, apperr.FromDB("account", err)
	}
	return count > 0, nil
}

func (ar *accountRepo) HandleOrEmailExists(ctx context.Context, tx *gorm.DB, handle, email string) (bool, error) {
	transaction := resolve(ar.db, tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("handle = ? OR email = ?", handle, email).
		Count(&count).Error; err != nil {
		return false, apperr.FromDB("account", err)
	}
	return count > 0, nil
}

func (ar *accountRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.AccountPatch) (*types.Account, error) {
	transaction := resolve(ar.db, tx)

	var account types.Account
	if err := transaction.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound("account", err)
	}

	changed := patch.Apply(&account)
	if len(changed) == 0 {
		return &account, nil
	}
	if err := ar.validate.StructPartial("account", &account, changed...); err != nil {
		return nil, err
	}

	if err := transaction.WithContext(ctx).Save(&account).Error; err != nil {
		return nil, apperr.FromDB("account", err)
	}
	return &account, nil
}

func (ar *accountRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := resolve(ar.db, tx)

	result := transaction.WithContext(ctx).Delete(&types.Account{}, "id = ?", id)
	if result.Error != nil {
		return false, apperr.FromDB("account", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (ar *accountRepo) Paginate(ctx context.Context, tx *gorm.DB, page, pageSize int) (types.Page[*types.Account], error) {
	var empty types.Page[*types.Account]
	if err := checkPage("account", page, pageSize); err != nil {
		return empty, err
	}
	transaction := resolve(ar.db, tx)

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Account{}).
		Count(&total).Error; err != nil {
		return empty, apperr.FromDB("account", err)
	}

	var accounts []*types.Account
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&accounts).Error; err != nil {
		return empty, apperr.FromDB("account", err)
	}
	return types.NewPage(accounts, total, pageSize), nil
}
