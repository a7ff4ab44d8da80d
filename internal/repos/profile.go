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

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error)
	GetByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) (*types.Profile, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.ProfilePatch) (*types.Profile, error)
}

type profileRepo struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validation.Validator
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger, validate *validation.Validator) ProfileRepo {
	return &profileRepo{
		db:       db,
		log:      baseLog.With("repo", "ProfileRepo"),
		validate: validate,
	}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
	transaction := resolve(pr.db, tx)

	if err := pr.validate.Struct("profile", profile); err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, apperr.FromDB("profile", err)
	}
	return profile, nil
}

func (pr *profileRepo) GetByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) (*types.Profile, error) {
	transaction := resolve(pr.db, tx)

	var profile types.Profile
	if err := transaction.WithContext(ctx).
		First(&profile, "account_id = ?", accountID).Error; err != nil {
		return nil, notFound("profile", err)
	}
	return &profile, nil
}

func (pr *profileRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch types.ProfilePatch) (*types.Profile, error) {
	transaction := resolve(pr.db, tx)

	var profile types.Profile
	if err := transaction.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound("profile", err)
	}

	changed := patch.Apply(&profile)
	if len(changed) == 0 {
		return &profile, nil
	}
	if err := pr.validate.StructPartial("profile", &profile, changed...); err != nil {
		return nil, err
	}

	if err := transaction.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, apperr.FromDB("profile", err)
	}
	return &profile, nil
}
