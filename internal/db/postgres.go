package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
	"github.com/gaaferHajji2/go-blog-api/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "blog", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

// Migrate creates the five tables and the constraints backing the entity
// invariants: unique handle/email/tag-name indexes, the unique profile
// account_id, the composite post_tag index, and ON DELETE CASCADE foreign
// keys from profile/post to account and from post_tag to both sides.
func (s *PostgresService) Migrate() error {
	s.log.Info("Auto migrating tables...")
	return Migrate(s.db)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// Migrate is shared with the sqlite-backed tests so both engines get the
// same schema and constraint set.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.SetupJoinTable(&types.Post{}, "Tags", &types.PostTag{}); err != nil {
		return fmt.Errorf("setup post_tag join table: %w", err)
	}
	return gormDB.AutoMigrate(
		&types.Account{},
		&types.Profile{},
		&types.Post{},
		&types.Tag{},
		&types.PostTag{},
	)
}
