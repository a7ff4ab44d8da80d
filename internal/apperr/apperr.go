package apperr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a failure for the boundary layer. The repos raise the
// most specific kind they can determine from constraint metadata; services
// add context but never downgrade the kind.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: a field value violates a declared constraint.
	KindValidation
	// KindConflict: a uniqueness constraint would be violated.
	KindConflict
	// KindNotFound: the primary target of the operation does not exist.
	KindNotFound
	// KindIntegrity: a referenced foreign entity does not exist.
	KindIntegrity
	// KindStorage: the storage engine failed for infrastructure reasons.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindIntegrity:
		return "integrity"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind   Kind
	Entity string
	// Fields maps field name to a human-readable message for
	// KindValidation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.Entity != "" {
		b.WriteString(e.Entity)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s %s", field, msg))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

func Conflict(entity string, err error) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Err: err}
}

func Validation(entity string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Fields: fields}
}

func Integrity(entity string, err error) *Error {
	return &Error{Kind: KindIntegrity, Entity: entity, Err: err}
}

func Storage(entity string, err error) *Error {
	return &Error{Kind: KindStorage, Entity: entity, Err: err}
}

func kindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsConflict(err error) bool   { return kindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }
func IsIntegrity(err error) bool  { return kindOf(err) == KindIntegrity }
func IsStorage(err error) bool    { return kindOf(err) == KindStorage }

// Postgres error codes, per the SQLSTATE standard. GORM's TranslateError
// covers the common cases across drivers; these catch what slips through
// when talking to Postgres directly.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromDB maps a storage-layer error to the taxonomy. Already-classified
// errors pass through untouched.
func FromDB(entity string, err error) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Entity: entity, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Entity: entity, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindIntegrity, Entity: entity, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &Error{Kind: KindStorage, Entity: entity, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindConflict, Entity: entity, Err: err}
		case pgForeignKeyViolation:
			return &Error{Kind: KindIntegrity, Entity: entity, Err: err}
		}
	}

	return &Error{Kind: KindStorage, Entity: entity, Err: err}
}
