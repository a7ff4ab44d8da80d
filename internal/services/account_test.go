package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

func TestAccountService_RegisterWithProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	account, err := h.accounts.Register(ctx, AccountInput{
		Handle: "alice",
		Email:  "alice@example.com",
	}, &types.ProfileInput{
		FirstName: "Alice",
		LastName:  "Anderson",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Profile == nil {
		t.Fatal("expected nested profile on the full account")
	}
	if account.Profile.FirstName != "Alice" || account.Profile.AccountID != account.ID {
		t.Fatalf("unexpected profile: %+v", account.Profile)
	}
}

func TestAccountService_RegisterDuplicateHandle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.accounts.Register(ctx, AccountInput{Handle: "alice", Email: "alice@example.com"}, nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := h.accounts.Register(ctx, AccountInput{Handle: "alice", Email: "other@example.com"}, nil)
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAccountService_RegisterHandleRace(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.accounts.Register(ctx, AccountInput{
				Handle: "alice",
				Email:  fmt.Sprintf("alice+%d@example.com", i),
			}, nil)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Fatalf("want exactly one winner and one conflict, got ok=%d conflicts=%d", ok, conflicts)
	}

	var count int64
	if err := h.db.Model(&types.Account{}).Where("handle = ?", "alice").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single stored account, got %d", count)
	}
}

func TestAccountService_RegisterRollsBackOnInvalidProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.accounts.Register(ctx, AccountInput{
		Handle: "alice",
		Email:  "alice@example.com",
	}, &types.ProfileInput{
		FirstName: "A", // below the 2-char minimum
		LastName:  "Anderson",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The account must not have survived the rolled-back transaction.
	var count int64
	if err := h.db.Model(&types.Account{}).Where("handle = ?", "alice").Count(&count).Error; err != nil {
		t.Fatalf("count accounts: %v", err)
	}
	if count != 0 {
		t.Fatalf("account persisted despite rollback: %d rows", count)
	}
}

func TestAccountService_UpdateUpsertsProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	account, err := h.accounts.Register(ctx, AccountInput{Handle: "alice", Email: "alice@example.com"}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// No profile yet: the update creates one.
	updated, err := h.accounts.Update(ctx, account.ID, types.AccountPatch{}, &types.ProfileInput{
		FirstName: "Alice",
		LastName:  "Anderson",
	})
	if err != nil {
		t.Fatalf("update (create profile): %v", err)
	}
	if updated.Profile == nil || updated.Profile.FirstName != "Alice" {
		t.Fatalf("expected profile created, got %+v", updated.Profile)
	}
	profileID := updated.Profile.ID

	// Profile exists: the update modifies it in place.
	updated, err = h.accounts.Update(ctx, account.ID, types.AccountPatch{}, &types.ProfileInput{
		FirstName: "Alicia",
		LastName:  "Anderson",
	})
	if err != nil {
		t.Fatalf("update (modify profile): %v", err)
	}
	if updated.Profile.ID != profileID {
		t.Fatalf("profile replaced instead of updated: %s != %s", updated.Profile.ID, profileID)
	}
	if updated.Profile.FirstName != "Alicia" {
		t.Fatalf("profile not updated: %+v", updated.Profile)
	}
}

func TestAccountService_UpdateNotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.accounts.Update(context.Background(), uuid.New(), types.AccountPatch{}, nil)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccountService_DeleteCascades(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	account, err := h.accounts.Register(ctx, AccountInput{
		Handle: "alice",
		Email:  "alice@example.com",
	}, &types.ProfileInput{FirstName: "Alice", LastName: "Anderson"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	post, err := h.posts.Create(ctx, PostInput{
		AccountID: account.ID,
		Title:     "A post to cascade",
		Body:      "A body long enough to pass validation",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	tag, err := h.tags.Create(ctx, TagInput{Name: "golang"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := h.posts.AssignTags(ctx, post.ID, []uuid.UUID{tag.ID}); err != nil {
		t.Fatalf("assign tags: %v", err)
	}

	if err := h.accounts.Delete(ctx, account.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := h.accounts.ListPosts(ctx, account.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	for _, check := range []struct {
		name  string
		model any
	}{
		{"profile", &types.Profile{}},
		{"post", &types.Post{}},
		{"post_tag", &types.PostTag{}},
	} {
		var count int64
		if err := h.db.Model(check.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", check.name, err)
		}
		if count != 0 {
			t.Fatalf("%s rows survived account delete: %d", check.name, count)
		}
	}

	// Tags are independent and must survive.
	var tagCount int64
	if err := h.db.Model(&types.Tag{}).Count(&tagCount).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if tagCount != 1 {
		t.Fatalf("expected tag to survive account delete, got %d rows", tagCount)
	}
}

func TestAccountService_DeleteNotFound(t *testing.T) {
	h := newHarness(t)

	err := h.accounts.Delete(context.Background(), uuid.New())
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
