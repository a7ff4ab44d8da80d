package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

func TestTagRepo_DuplicateNameConflict(t *testing.T) {
	gdb := testDB(t)
	repo := NewTagRepo(gdb, testLog(), testValidator())
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, &types.Tag{Name: "golang"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, nil, &types.Tag{Name: "golang"})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTagRepo_GetByIDsPartialResolution(t *testing.T) {
	gdb := testDB(t)
	repo := NewTagRepo(gdb, testLog(), testValidator())
	ctx := context.Background()

	tag, err := repo.Create(ctx, nil, &types.Tag{Name: "golang"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.GetByIDs(ctx, nil, []uuid.UUID{tag.ID, uuid.New()})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 resolved tag, got %d", len(found))
	}
}

func TestTagRepo_DeleteCascadesJoinRowsOnly(t *testing.T) {
	gdb := testDB(t)
	tagRepo := NewTagRepo(gdb, testLog(), testValidator())
	postRepo := NewPostRepo(gdb, testLog(), testValidator())
	postTagRepo := NewPostTagRepo(gdb, testLog())
	ctx := context.Background()
	account := seedAccount(t, gdb, "alice")

	post, err := postRepo.Create(ctx, nil, &types.Post{
		AccountID: account.ID,
		Title:     "A tagged post",
		Body:      "A body long enough to pass validation",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	tag, err := tagRepo.Create(ctx, nil, &types.Tag{Name: "golang"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := postTagRepo.Add(ctx, nil, []*types.PostTag{{PostID: post.ID, TagID: tag.ID}}); err != nil {
		t.Fatalf("add pair: %v", err)
	}

	deleted, err := tagRepo.Delete(ctx, nil, tag.ID)
	if err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	if !deleted {
		t.Fatal("expected tag to be deleted")
	}

	ids, err := postTagRepo.ListTagIDs(ctx, nil, post.ID)
	if err != nil {
		t.Fatalf("list tag ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("join rows survived tag delete: %v", ids)
	}

	if _, err := postRepo.GetByID(ctx, nil, post.ID, types.ProjectionLight); err != nil {
		t.Fatalf("post should survive tag delete: %v", err)
	}
}
