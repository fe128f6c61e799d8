//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"
	"parkvue/internal/domain/room"
	"parkvue/internal/infra"
	"parkvue/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDBTX records the last statement and replays canned results.
type mockDBTX struct {
	tag      pgconn.CommandTag
	execErr  error
	row      pgx.Row
	lastArgs []any
}

func (m *mockDBTX) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	m.lastArgs = args
	return m.tag, m.execErr
}

func (m *mockDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("mockDBTX.Query was called unexpectedly")
}

func (m *mockDBTX) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	m.lastArgs = args
	return m.row
}

type mockRow struct {
	scan func(dest ...any) error
}

func (r mockRow) Scan(dest ...any) error { return r.scan(dest...) }

func errRow(err error) mockRow {
	return mockRow{scan: func(...any) error { return err }}
}

var now = time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC)

func TestRoomRepository_UpdateRating(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	agg := rating.Aggregate{Count: 3, Average: 4}

	testCases := []struct {
		name       string
		dbtx       *mockDBTX
		expectedOK bool
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "success: version matched",
			dbtx:       &mockDBTX{tag: pgconn.NewCommandTag("UPDATE 1")},
			expectedOK: true,
		},
		{
			name:       "conflict: version moved on",
			dbtx:       &mockDBTX{tag: pgconn.NewCommandTag("UPDATE 0")},
			expectedOK: false,
		},
		{
			name:       "error: database failure",
			dbtx:       &mockDBTX{execErr: errors.New("connection reset")},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := repository.NewRoomRepository(tc.dbtx)

			ok, err := repo.UpdateRating(ctx, roomID, agg, 7, now)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, []any{roomID, 3, 4.0, int64(7), now}, tc.dbtx.lastArgs)
		})
	}
}

func TestRoomRepository_SaveAvailability(t *testing.T) {
	ctx := context.Background()
	rm := room.ReconstructRoom(
		uuid.New(), uuid.New(), "Covered spot", "1-2-3 Shibuya",
		room.Location{}, 48, booking.AvailabilityWindow{},
		true, rating.Aggregate{}, now, now,
	)
	later := now.Add(time.Hour)
	require.NoError(t, rm.Reserve(later))

	t.Run("success: persists the reserved flag", func(t *testing.T) {
		dbtx := &mockDBTX{tag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewRoomRepository(dbtx)

		require.NoError(t, repo.SaveAvailability(ctx, rm))
		assert.Equal(t, []any{rm.ID(), false, later}, dbtx.lastArgs)
	})

	t.Run("error: no such room", func(t *testing.T) {
		repo := repository.NewRoomRepository(&mockDBTX{tag: pgconn.NewCommandTag("UPDATE 0")})
		err := repo.SaveAvailability(ctx, rm)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestRoomRepository_LockByID(t *testing.T) {
	roomID := uuid.New()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success: rebuilds the room entity", func(t *testing.T) {
		row := mockRow{scan: func(dest ...any) error {
			*dest[0].(*uuid.UUID) = roomID
			*dest[2].(*string) = "Covered spot"
			*dest[6].(*float64) = 48
			*dest[7].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: from, Valid: true}
			*dest[9].(*bool) = true
			*dest[10].(*int) = 2
			*dest[11].(*float64) = 4.5
			return nil
		}}
		repo := repository.NewRoomRepository(&mockDBTX{row: row})

		rm, err := repo.LockByID(context.Background(), roomID)
		require.NoError(t, err)

		assert.Equal(t, roomID, rm.ID())
		assert.Equal(t, "Covered spot", rm.Title())
		assert.InDelta(t, 48.0, rm.DailyRate(), 1e-9)
		assert.Equal(t, booking.AvailabilityWindow{From: from}, rm.Window())
		assert.True(t, rm.IsAvailable())
		assert.Equal(t, rating.Aggregate{Count: 2, Average: 4.5}, rm.Rating())
	})

	t.Run("error: not found", func(t *testing.T) {
		repo := repository.NewRoomRepository(&mockDBTX{row: errRow(pgx.ErrNoRows)})

		_, err := repo.LockByID(context.Background(), roomID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestRatingRepository_FindUserRating(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		row        mockRow
		expected   *int
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:     "unrated: no marker",
			row:      errRow(pgx.ErrNoRows),
			expected: nil,
		},
		{
			name: "rated: marker holds the previous value",
			row: mockRow{scan: func(dest ...any) error {
				*dest[0].(*int) = 4
				return nil
			}},
			expected: intPtr(4),
		},
		{
			name: "error: stored value out of range",
			row: mockRow{scan: func(dest ...any) error {
				*dest[0].(*int) = 9
				return nil
			}},
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "error: database failure",
			row:        errRow(errors.New("connection reset")),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := repository.NewRatingRepository(&mockDBTX{row: tc.row})

			got, err := repo.FindUserRating(ctx, uuid.New(), uuid.New())

			if tc.expectKind != "" {
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
			if tc.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.expected, got.Int())
		})
	}
}

func TestRatingRepository_Upsert_MissingRoom(t *testing.T) {
	dbtx := &mockDBTX{execErr: &pgconn.PgError{Code: "23503"}}
	repo := repository.NewRatingRepository(dbtx)
	v, err := rating.NewValue(5)
	require.NoError(t, err)

	err = repo.Upsert(context.Background(), uuid.New(), uuid.New(), v, now)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func intPtr(i int) *int {
	return &i
}
