package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
)

const upsertRawPayloadQuery = `INSERT INTO raw_payloads (
    source, entity_type, entity_key, person_id, season, payload, payload_hash, fetched_at
) VALUES (
    :source, :entity_type, :entity_key, :person_id, :season, :payload, :payload_hash, :fetched_at
)
ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    person_id = EXCLUDED.person_id,
    season = EXCLUDED.season,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    updated_at = NOW()
WHERE raw_payloads.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash
   OR raw_payloads.fetched_at < EXCLUDED.fetched_at`

const selectRawPayloadQuery = `SELECT source, entity_type, entity_key, person_id, season, payload, payload_hash, fetched_at
FROM raw_payloads
WHERE source = $1 AND entity_type = $2 AND entity_key = $3`

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

// UpsertMany writes all items in one transaction. A row whose hash is
// unchanged only moves forward in fetched_at.
func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate raw payload key=%s: %w", item.EntityKey, err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if _, err := tx.NamedExecContext(ctx, upsertRawPayloadQuery, rawPayloadToRow(item)); err != nil {
			return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}
	return nil
}

func (r *RawDataRepository) GetLatest(ctx context.Context, source, entityType, entityKey string) (rawdata.Payload, bool, error) {
	var row rawPayloadTableModel
	if err := r.db.GetContext(ctx, &row, selectRawPayloadQuery, source, entityType, entityKey); err != nil {
		if isNotFound(err) {
			return rawdata.Payload{}, false, nil
		}
		return rawdata.Payload{}, false, fmt.Errorf("get raw payload entity=%s key=%s: %w", entityType, entityKey, err)
	}
	return rawPayloadFromRow(row), true, nil
}
