// Package repos is the persistence gateway: one repo per entity kind,
// generic CRUD plus the entity's query shapes. Every method accepts an
// optional transaction handle; nil falls back to the repo's base
// connection. Field constraints are re-checked here before every write,
// and storage errors leave classified as the most specific kind the
// constraint metadata allows.
package repos

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
)

// resolve picks the caller's transaction when one is in flight.
func resolve(base, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return base
}

// checkPage rejects non-positive pagination arguments. The gateway does
// not invent defaults for the boundary.
func checkPage(entity string, page, pageSize int) error {
	fields := map[string]string{}
	if page < 1 {
		fields["page"] = "must be at least 1"
	}
	if pageSize < 1 {
		fields["page_size"] = "must be at least 1"
	}
	if len(fields) > 0 {
		return apperr.Validation(entity, fields)
	}
	return nil
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

func notFound(entity string, err error) error {
	mapped := apperr.FromDB(entity, err)
	if apperr.IsNotFound(mapped) {
		return mapped
	}
	return fmt.Errorf("load %s: %w", entity, mapped)
}
