package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gaaferHajji2/go-blog-api/internal/cache"
	"github.com/gaaferHajji2/go-blog-api/internal/db"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/repos"
	"github.com/gaaferHajji2/go-blog-api/internal/validation"
)

type harness struct {
	db       *gorm.DB
	accounts AccountService
	posts    PostService
	tags     TagService
}

// memCache keeps entries in a map so tests can observe cache interplay
// without a redis instance.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}

func (c *memCache) Close() error { return nil }

func newHarness(t *testing.T) *harness {
	return newHarnessWithCache(t, cache.NewNoop())
}

func newHarnessWithCache(t *testing.T, entityCache cache.Cache) *harness {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.NewNop()
	validate := validation.New()

	accountRepo := repos.NewAccountRepo(gdb, log, validate)
	profileRepo := repos.NewProfileRepo(gdb, log, validate)
	postRepo := repos.NewPostRepo(gdb, log, validate)
	tagRepo := repos.NewTagRepo(gdb, log, validate)
	postTagRepo := repos.NewPostTagRepo(gdb, log)

	return &harness{
		db:       gdb,
		accounts: NewAccountService(gdb, log, entityCache, accountRepo, profileRepo, postRepo),
		posts:    NewPostService(gdb, log, entityCache, postRepo, tagRepo, postTagRepo, accountRepo),
		tags:     NewTagService(gdb, log, tagRepo),
	}
}
