// Package services composes the repos into multi-entity operations. Every
// write that touches more than one entity runs inside a single
// transaction; gateway errors are wrapped with operation context but the
// classified kind always survives.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/cache"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/repos"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

// AccountInput carries the account fields for registration.
type AccountInput struct {
	Handle string `json:"handle"`
	Email  string `json:"email"`
}

type AccountService interface {
	Register(ctx context.Context, account AccountInput, profile *types.ProfileInput) (*types.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error)
	List(ctx context.Context, page, pageSize int) (types.Page[*types.Account], error)
	Update(ctx context.Context, id uuid.UUID, account types.AccountPatch, profile *types.ProfileInput) (*types.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, accountID uuid.UUID) ([]*types.Post, error)
}

type accountService struct {
	db          *gorm.DB
	log         *logger.Logger
	entityCache cache.Cache
	accountRepo repos.AccountRepo
	profileRepo repos.ProfileRepo
	postRepo    repos.PostRepo
}

func NewAccountService(
	db *gorm.DB,
	baseLog *logger.Logger,
	entityCache cache.Cache,
	accountRepo repos.AccountRepo,
	profileRepo repos.ProfileRepo,
	postRepo repos.PostRepo,
) AccountService {
	return &accountService{
		db:          db,
		log:         baseLog.With("service", "AccountService"),
		entityCache: entityCache,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
}

// Register creates the account and, when profile attributes are supplied,
// its profile in one transaction. The uniqueness pre-check is advisory;
// the unique indexes close the race, and either path reports Conflict.
func (as *accountService) Register(ctx context.Context, account AccountInput, profile *types.ProfileInput) (*types.Account, error) {
	taken, err := as.accountRepo.HandleOrEmailExists(ctx, nil, account.Handle, account.Email)
	if err != nil {
		return nil, fmt.Errorf("check handle/email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("account", fmt.Errorf("handle or email already taken"))
	}

	var accountID uuid.UUID
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := as.accountRepo.Create(ctx, tx, &types.Account{
			Handle: account.Handle,
			Email:  account.Email,
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		accountID = created.ID

		if profile != nil {
			if _, err := as.profileRepo.Create(ctx, tx, &types.Profile{
				AccountID: created.ID,
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				Bio:       profile.Bio,
				BirthDate: profile.BirthDate,
			}); err != nil {
				return fmt.Errorf("create profile: %w", err)
			}
		}
		return nil
	}); err != nil {
		as.log.Warn("Register rolled back", "handle", account.Handle, "error", err)
		return nil, err
	}

	return as.accountRepo.GetByID(ctx, nil, accountID, types.ProjectionFull)
}

func (as *accountService) GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	key := cache.Key("account", id)
	var cached types.Account
	if hit, _ := as.entityCache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	account, err := as.accountRepo.GetByID(ctx, nil, id, types.ProjectionFull)
	if err != nil {
		return nil, err
	}
	_ = as.entityCache.Set(ctx, key, account)
	return account, nil
}

func (as *accountService) List(ctx context.Context, page, pageSize int) (types.Page[*types.Account], error) {
	return as.accountRepo.Paginate(ctx, nil, page, pageSize)
}

// Update applies account field changes and upserts the profile side in one
// transaction.
func (as *accountService) Update(ctx context.Context, id uuid.UUID, account types.AccountPatch, profile *types.ProfileInput) (*types.Account, error) {
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.accountRepo.GetByID(ctx, tx, id, types.ProjectionLight); err != nil {
			return err
		}

		if !account.Empty() {
			if _, err := as.accountRepo.Update(ctx, tx, id, account); err != nil {
				return fmt.Errorf("update account: %w", err)
			}
		}

		if profile != nil {
			existing, err := as.profileRepo.GetByAccountID(ctx, tx, id)
			switch {
			case apperr.IsNotFound(err):
				if _, err := as.profileRepo.Create(ctx, tx, &types.Profile{
					AccountID: id,
					FirstName: profile.FirstName,
					LastName:  profile.LastName,
					Bio:       profile.Bio,
					BirthDate: profile.BirthDate,
				}); err != nil {
					return fmt.Errorf("create profile: %w", err)
				}
			case err != nil:
				return fmt.Errorf("load profile: %w", err)
			default:
				patch := types.ProfilePatch{
					FirstName: &profile.FirstName,
					LastName:  &profile.LastName,
					Bio:       &profile.Bio,
					BirthDate: profile.BirthDate,
				}
				if _, err := as.profileRepo.Update(ctx, tx, existing.ID, patch); err != nil {
					return fmt.Errorf("update profile: %w", err)
				}
			}
		}
		return nil
	}); err != nil {
		as.log.Warn("Update rolled back", "account_id", id, "error", err)
		return nil, err
	}

	_ = as.entityCache.Del(ctx, cache.Key("account", id))
	return as.accountRepo.GetByID(ctx, nil, id, types.ProjectionFull)
}

// Delete removes the account; profile, posts, and tag assignments go with
// it through the declared cascades, atomically with the root delete.
func (as *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	posts, err := as.postRepo.ListByAccount(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("list posts for cache eviction: %w", err)
	}

	deleted, err := as.accountRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("account")
	}

	keys := make([]string, 0, len(posts)+1)
	keys = append(keys, cache.Key("account", id))
	for _, post := range posts {
		keys = append(keys, cache.Key("post", post.ID))
	}
	_ = as.entityCache.Del(ctx, keys...)
	return nil
}

func (as *accountService) ListPosts(ctx context.Context, accountID uuid.UUID) ([]*types.Post, error) {
	exists, err := as.accountRepo.Exists(ctx, nil, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("account")
	}
	return as.postRepo.ListByAccount(ctx, nil, accountID)
}
