package postgres

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to MLB_STATS_TEST_DB_URL and applies the archive
// schema. Tests that need it skip when the variable is unset.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("MLB_STATS_TEST_DB_URL")
	if dsn == "" {
		t.Skip("MLB_STATS_TEST_DB_URL not set")
	}

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "db", "migrations", "000001_create_raw_payloads.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestRawDataRepository_UpsertAndGetLatest(t *testing.T) {
	db := openTestDB(t)
	repo := NewRawDataRepository(db)
	ctx := context.Background()

	key := "660271:hitting:test-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM raw_payloads WHERE entity_key = $1`, key)
	})

	_, exists, err := repo.GetLatest(ctx, rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key)
	require.NoError(t, err)
	assert.False(t, exists)

	first := rawdata.NewPayload(rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key, []byte(`{"stats": []}`), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	first.PersonID = 660271
	require.NoError(t, repo.UpsertMany(ctx, []rawdata.Payload{first}))

	got, exists, err := repo.GetLatest(ctx, rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, int64(660271), got.PersonID)
	assert.Empty(t, got.Season)
	assert.Equal(t, first.PayloadHash, got.PayloadHash)
	assert.JSONEq(t, `{"stats": []}`, got.PayloadJSON)
	assert.True(t, first.FetchedAt.Equal(got.FetchedAt))

	second := rawdata.NewPayload(rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key, []byte(`{"stats": [{"type": "career"}]}`), time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
	second.PersonID = 660271
	require.NoError(t, repo.UpsertMany(ctx, []rawdata.Payload{second}))

	got, exists, err = repo.GetLatest(ctx, rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, second.PayloadHash, got.PayloadHash)
	assert.JSONEq(t, `{"stats": [{"type": "career"}]}`, got.PayloadJSON)
}

func TestRawDataRepository_UpsertManyRejectsInvalid(t *testing.T) {
	t.Parallel()

	repo := NewRawDataRepository(nil)
	err := repo.UpsertMany(context.Background(), []rawdata.Payload{{Source: rawdata.SourceStatsAPI}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate raw payload")
}
