package repos

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

func seedAccount(t *testing.T, gdb *gorm.DB, handle string) *types.Account {
	t.Helper()
	repo := NewAccountRepo(gdb, testLog(), testValidator())
	account, err := repo.Create(context.Background(), nil, &types.Account{
		Handle: handle,
		Email:  handle + "@example.com",
	})
	if err != nil {
		t.Fatalf("seed account %s: %v", handle, err)
	}
	return account
}

func TestPostRepo_LightProjectionOmitsBody(t *testing.T) {
	gdb := testDB(t)
	repo := NewPostRepo(gdb, testLog(), testValidator())
	ctx := context.Background()
	account := seedAccount(t, gdb, "alice")

	created, err := repo.Create(ctx, nil, &types.Post{
		AccountID: account.ID,
		Title:     "A reasonable title",
		Body:      "A body long enough to pass validation",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	light, err := repo.GetByID(ctx, nil, created.ID, types.ProjectionLight)
	if err != nil {
		t.Fatalf("get light: %v", err)
	}
	if light.Body != "" {
		t.Fatalf("light projection leaked body: %q", light.Body)
	}
	if light.Title != "A reasonable title" {
		t.Fatalf("unexpected title: %q", light.Title)
	}

	full, err := repo.GetByID(ctx, nil, created.ID, types.ProjectionFull)
	if err != nil {
		t.Fatalf("get full: %v", err)
	}
	if full.Body == "" {
		t.Fatal("full projection missing body")
	}
	if full.Account == nil || full.Account.Handle != "alice" {
		t.Fatalf("full projection missing author summary: %+v", full.Account)
	}
}

func TestPostRepo_CreateValidationNamesField(t *testing.T) {
	gdb := testDB(t)
	repo := NewPostRepo(gdb, testLog(), testValidator())
	account := seedAccount(t, gdb, "alice")

	_, err := repo.Create(context.Background(), nil, &types.Post{
		AccountID: account.ID,
		Title:     "tiny", // below the 5-char minimum
		Body:      "A body long enough to pass validation",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ae *apperr.Error
	if !asAppErr(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if _, ok := ae.Fields["title"]; !ok {
		t.Fatalf("expected title field message, got %v", ae.Fields)
	}
}

func TestPostRepo_ListByAccountNewestFirst(t *testing.T) {
	gdb := testDB(t)
	repo := NewPostRepo(gdb, testLog(), testValidator())
	ctx := context.Background()
	account := seedAccount(t, gdb, "alice")

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, nil, &types.Post{
			AccountID: account.ID,
			Title:     fmt.Sprintf("Post number %d", i),
			Body:      "A body long enough to pass validation",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	posts, err := repo.ListByAccount(ctx, nil, account.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 0; i < len(posts)-1; i++ {
		if posts[i].CreatedAt.Before(posts[i+1].CreatedAt) {
			t.Fatalf("posts not ordered newest first: %v before %v", posts[i].CreatedAt, posts[i+1].CreatedAt)
		}
	}
}

func TestPostRepo_PaginateCountNotInflatedByTags(t *testing.T) {
	gdb := testDB(t)
	postRepo := NewPostRepo(gdb, testLog(), testValidator())
	tagRepo := NewTagRepo(gdb, testLog(), testValidator())
	postTagRepo := NewPostTagRepo(gdb, testLog())
	ctx := context.Background()
	account := seedAccount(t, gdb, "alice")

	published := true
	post, err := postRepo.Create(ctx, nil, &types.Post{
		AccountID: account.ID,
		Title:     "A tagged post",
		Body:      "A body long enough to pass validation",
		Published: true,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	for _, name := range []string{"golang", "gorm", "http"} {
		tag, err := tagRepo.Create(ctx, nil, &types.Tag{Name: name})
		if err != nil {
			t.Fatalf("create tag %s: %v", name, err)
		}
		if err := postTagRepo.Add(ctx, nil, []*types.PostTag{{PostID: post.ID, TagID: tag.ID}}); err != nil {
			t.Fatalf("add pair %s: %v", name, err)
		}
	}

	page, err := postRepo.Paginate(ctx, nil, 1, 10, types.PostFilter{Published: &published})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.TotalCount != 1 {
		t.Fatalf("count inflated by tag fan-out: %d", page.TotalCount)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
}

func TestPostRepo_PaginatePublishedFilter(t *testing.T) {
	gdb := testDB(t)
	repo := NewPostRepo(gdb, testLog(), testValidator())
	ctx := context.Background()
	account := seedAccount(t, gdb, "alice")

	for i := 0; i < 4; i++ {
		_, err := repo.Create(ctx, nil, &types.Post{
			AccountID: account.ID,
			Title:     fmt.Sprintf("Post number %d", i),
			Body:      "A body long enough to pass validation",
			Published: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	published := true
	page, err := repo.Paginate(ctx, nil, 1, 10, types.PostFilter{Published: &published})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.TotalCount != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected published page: total=%d items=%d", page.TotalCount, len(page.Items))
	}
	for _, item := range page.Items {
		if !item.Published {
			t.Fatalf("unpublished post leaked into feed: %+v", item)
		}
	}
}

func TestPostTagRepo_DuplicatePairConflict(t *testing.T) {
	gdb := testDB(t)
	postRepo := NewPostRepo(gdb, testLog(), testValidator())
	tagRepo := NewTagRepo(gdb, testLog(), testValidator())
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
		t.Fatalf("first add: %v", err)
	}
	err = postTagRepo.Add(ctx, nil, []*types.PostTag{{PostID: post.ID, TagID: tag.ID}})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate pair, got %v", err)
	}
}
