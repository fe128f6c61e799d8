//go:build unit

package pgconv_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"parkvue/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestOptionalTime(t *testing.T) {
	assert.False(t, pgconv.OptionalTime(time.Time{}).Valid)

	now := time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC)
	ts := pgconv.OptionalTime(now)
	assert.True(t, ts.Valid)
	assert.Equal(t, now, pgconv.TimeOrZero(ts))
	assert.Equal(t, now, *pgconv.TimePtr(ts))

	assert.True(t, pgconv.TimeOrZero(pgconv.OptionalTime(time.Time{})).IsZero())
	assert.Nil(t, pgconv.TimePtr(pgconv.OptionalTime(time.Time{})))
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, pgconv.IsUniqueViolation(unique))
	assert.False(t, pgconv.IsUniqueViolation(fk))
	assert.True(t, pgconv.IsForeignKeyViolation(fk))
	assert.False(t, pgconv.IsForeignKeyViolation(errors.New("plain")))

	assert.True(t, pgconv.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(unique))
}
