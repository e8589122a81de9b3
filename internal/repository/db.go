package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/records-service/internal/domain"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

const (
	checkViolationCode    = "23514"
	notNullViolationCode  = "23502"
	invalidTextRepresCode = "22P02"
)

// DBTX is the subset of *pgxpool.Pool used by the repositories.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translatePgError turns constraint violations into validation errors so a
// write rejected by the schema surfaces as a 400.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case checkViolationCode, notNullViolationCode, invalidTextRepresCode:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return apperrors.NewValidationError("Validation Error", map[string]any{field: pgErr.Message})
	}
	return err
}

// orderBy renders an ORDER BY clause. columnFor returns the SQL expression for
// a whitelisted field and false for anything else.
func orderBy(sort []domain.SortField, columnFor func(string) (string, bool), tiebreak string) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	seenTiebreak := false
	for _, s := range sort {
		col, ok := columnFor(s.Field)
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedSortField, s.Field)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
		seenTiebreak = seenTiebreak || col == tiebreak
	}
	if !seenTiebreak {
		parts = append(parts, tiebreak+" ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
