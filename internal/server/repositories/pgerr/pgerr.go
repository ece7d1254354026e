// Package pgerr maps PostgreSQL constraint failures onto the sentinel errors
// of package common.
package pgerr

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify wraps err with common.ErrorAlreadyExists for unique violations and
// common.ErrorInvalidOwner for foreign key violations. Any other error is
// wrapped as a plain "db error".
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", common.ErrorInvalidOwner, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("db error: %w", err)
}
