package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForeignKey    = errors.New("referenced entity does not exist")
)

// ForeignKeyError keeps the violated constraint name so callers can tell
// a bad player id from a bad match id. Unwraps to ErrForeignKey.
type ForeignKeyError struct {
	Constraint string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("referenced entity does not exist (%s)", e.Constraint)
}

func (e *ForeignKeyError) Unwrap() error { return ErrForeignKey }

// FKConstraint extracts the violated constraint name, if err carries one.
func FKConstraint(err error) string {
	var fk *ForeignKeyError
	if errors.As(err, &fk) {
		return fk.Constraint
	}
	return ""
}

// MapPgError translates common Postgres error codes to domain errors.
// I only map what I expect to handle explicitly at higher layers;
// everything else passes through as an opaque storage failure.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return &ForeignKeyError{Constraint: pgErr.ConstraintName}
		}
	}
	return err
}
