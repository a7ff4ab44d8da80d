package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/cache"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/repos"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

type PostInput struct {
	AccountID uuid.UUID `json:"account_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
}

type PostService interface {
	Create(ctx context.Context, input PostInput) (*types.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Post, error)
	Update(ctx context.Context, id uuid.UUID, patch types.PostPatch) (*types.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) (*types.Post, error)
	Published(ctx context.Context, page, pageSize int) (types.Page[*types.Post], error)
}

type postService struct {
	db          *gorm.DB
	log         *logger.Logger
	entityCache cache.Cache
	postRepo    repos.PostRepo
	tagRepo     repos.TagRepo
	postTagRepo repos.PostTagRepo
	accountRepo repos.AccountRepo
}

func NewPostService(
	db *gorm.DB,
	baseLog *logger.Logger,
	entityCache cache.Cache,
	postRepo repos.PostRepo,
	tagRepo repos.TagRepo,
	postTagRepo repos.PostTagRepo,
	accountRepo repos.AccountRepo,
) PostService {
	return &postService{
		db:          db,
		log:         baseLog.With("service", "PostService"),
		entityCache: entityCache,
		postRepo:    postRepo,
		tagRepo:     tagRepo,
		postTagRepo: postTagRepo,
		accountRepo: accountRepo,
	}
}

func (ps *postService) Create(ctx context.Context, input PostInput) (*types.Post, error) {
	exists, err := ps.accountRepo.Exists(ctx, nil, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("check account: %w", err)
	}
	if !exists {
		return nil, apperr.Integrity("post", fmt.Errorf("account %s does not exist", input.AccountID))
	}

	post, err := ps.postRepo.Create(ctx, nil, &types.Post{
		AccountID: input.AccountID,
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
	})
	if err != nil {
		return nil, err
	}
	// The cached full account embeds its post list.
	_ = ps.entityCache.Del(ctx, cache.Key("account", input.AccountID))
	return post, nil
}

func (ps *postService) GetByID(ctx context.Context, id uuid.UUID) (*types.Post, error) {
	key := cache.Key("post", id)
	var cached types.Post
	if hit, _ := ps.entityCache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	post, err := ps.postRepo.GetByID(ctx, nil, id, types.ProjectionFull)
	if err != nil {
		return nil, err
	}
	_ = ps.entityCache.Set(ctx, key, post)
	return post, nil
}

func (ps *postService) Update(ctx context.Context, id uuid.UUID, patch types.PostPatch) (*types.Post, error) {
	updated, err := ps.postRepo.Update(ctx, nil, id, patch)
	if err != nil {
		return nil, err
	}
	_ = ps.entityCache.Del(ctx,
		cache.Key("post", id),
		cache.Key("account", updated.AccountID),
	)
	return ps.postRepo.GetByID(ctx, nil, id, types.ProjectionFull)
}

func (ps *postService) Delete(ctx context.Context, id uuid.UUID) error {
	post, err := ps.postRepo.GetByID(ctx, nil, id, types.ProjectionLight)
	if err != nil {
		return err
	}
	deleted, err := ps.postRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("post")
	}
	_ = ps.entityCache.Del(ctx,
		cache.Key("post", id),
		cache.Key("account", post.AccountID),
	)
	return nil
}

// AssignTags replaces the post's tag-set with exactly the given set. Every
// id must resolve; partial resolution rejects the whole call. Pairs that
// are already present stay untouched, so repeating a call is a no-op.
func (ps *postService) AssignTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) (*types.Post, error) {
	desired := dedupe(tagIDs)

	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.postRepo.GetByID(ctx, tx, postID, types.ProjectionLight); err != nil {
			return err
		}

		found, err := ps.tagRepo.GetByIDs(ctx, tx, desired)
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}
		if len(found) != len(desired) {
			return apperr.Validation("post", map[string]string{
				"tag_ids": "unknown tag ids: " + missingIDs(desired, found),
			})
		}

		current, err := ps.postTagRepo.ListTagIDs(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("load current tag set: %w", err)
		}

		toAdd, toRemove := diffIDs(desired, current)
		if err := ps.postTagRepo.Remove(ctx, tx, postID, toRemove); err != nil {
			return fmt.Errorf("remove stale pairs: %w", err)
		}
		pairs := make([]*types.PostTag, 0, len(toAdd))
		for _, tagID := range toAdd {
			pairs = append(pairs, &types.PostTag{PostID: postID, TagID: tagID})
		}
		if err := ps.postTagRepo.Add(ctx, tx, pairs); err != nil {
			return fmt.Errorf("add new pairs: %w", err)
		}
		return nil
	}); err != nil {
		ps.log.Warn("AssignTags rolled back", "post_id", postID, "error", err)
		return nil, err
	}

	_ = ps.entityCache.Del(ctx, cache.Key("post", postID))
	return ps.postRepo.GetByID(ctx, nil, postID, types.ProjectionFull)
}

func (ps *postService) Published(ctx context.Context, page, pageSize int) (types.Page[*types.Post], error) {
	published := true
	return ps.postRepo.Paginate(ctx, nil, page, pageSize, types.PostFilter{Published: &published})
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(desired []uuid.UUID, found []*types.Tag) string {
	resolved := make(map[uuid.UUID]struct{}, len(found))
	for _, tag := range found {
		resolved[tag.ID] = struct{}{}
	}
	var missing []string
	for _, id := range desired {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	sort.Strings(missing)
	return strings.Join(missing, ", ")
}

func diffIDs(desired, current []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
