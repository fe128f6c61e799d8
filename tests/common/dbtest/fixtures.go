//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parkvue/internal/pkg/pgconv"
	"parkvue/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertRoom writes the builder's room straight to the table, bypassing the API.
func InsertRoom(t *testing.T, db DBLike, b *builder.RoomBuilder) uuid.UUID {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO rooms (
			id, owner_id, title, address, lat, lng, daily_rate,
			available_from, available_to, available,
			rating_count, average_rating, rating_version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
		b.ID, b.OwnerID, b.Title, b.Address, b.Lat, b.Lng, b.DailyRate,
		pgconv.OptionalTime(b.AvailableFrom), pgconv.OptionalTime(b.AvailableTo), b.Available,
		b.RatingCount, b.AverageRating, b.RatingVersion, b.Now,
	)
	require.NoError(t, err)
	return b.ID
}

type RoomRow struct {
	Available     bool
	RatingCount   int
	AverageRating float64
	RatingVersion int64
}

func GetRoomRow(t *testing.T, db DBLike, id uuid.UUID) RoomRow {
	t.Helper()

	var row RoomRow
	err := db.QueryRow(context.Background(),
		"SELECT available, rating_count, average_rating, rating_version FROM rooms WHERE id = $1", id,
	).Scan(&row.Available, &row.RatingCount, &row.AverageRating, &row.RatingVersion)
	require.NoError(t, err)
	return row
}

// CountJobs counts outbox rows for a topic in the given status.
func CountJobs(t *testing.T, db DBLike, topic, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1 AND status = $2", topic, status,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
