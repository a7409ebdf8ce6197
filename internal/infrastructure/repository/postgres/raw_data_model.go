package postgres

import (
	"time"

	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
)

type rawPayloadTableModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	PersonID    *int64    `db:"person_id"`
	Season      *string   `db:"season"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

func rawPayloadToRow(item rawdata.Payload) rawPayloadTableModel {
	return rawPayloadTableModel{
		Source:      item.Source,
		EntityType:  item.EntityType,
		EntityKey:   item.EntityKey,
		PersonID:    nullableInt64(item.PersonID),
		Season:      nullableString(item.Season),
		Payload:     item.PayloadJSON,
		PayloadHash: item.PayloadHash,
		FetchedAt:   item.FetchedAt.UTC(),
	}
}

func rawPayloadFromRow(row rawPayloadTableModel) rawdata.Payload {
	out := rawdata.Payload{
		Source:      row.Source,
		EntityType:  row.EntityType,
		EntityKey:   row.EntityKey,
		PayloadJSON: row.Payload,
		PayloadHash: row.PayloadHash,
		FetchedAt:   row.FetchedAt.UTC(),
	}
	if row.PersonID != nil {
		out.PersonID = *row.PersonID
	}
	if row.Season != nil {
		out.Season = *row.Season
	}
	return out
}
