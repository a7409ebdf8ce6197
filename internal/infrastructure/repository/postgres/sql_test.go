package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get raw payload: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation raw_payloads does not exist")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestRawPayloadRowMapping(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 4, 1, 20, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	item := rawdata.NewPayload(rawdata.SourceStatsAPI, rawdata.EntityPersonStats, "660271:hitting:2024", []byte(`{"stats":[]}`), fetchedAt)
	item.PersonID = 660271
	item.Season = "2024"

	row := rawPayloadToRow(item)
	if row.PersonID == nil || *row.PersonID != 660271 {
		t.Fatalf("unexpected person id: %v", row.PersonID)
	}
	if row.Season == nil || *row.Season != "2024" {
		t.Fatalf("unexpected season: %v", row.Season)
	}
	if row.FetchedAt.Location() != time.UTC {
		t.Fatalf("expected fetched_at in UTC")
	}

	back := rawPayloadFromRow(row)
	if back != item {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, item)
	}
}

func TestRawPayloadRowMapping_CareerHasNoSeason(t *testing.T) {
	t.Parallel()

	item := rawdata.NewPayload(rawdata.SourceStatsAPI, rawdata.EntityPersonStats, "660271:hitting:career", []byte(`{}`), time.Now())
	row := rawPayloadToRow(item)
	if row.Season != nil || row.PersonID != nil {
		t.Fatalf("expected NULL person_id and season, got %v %v", row.PersonID, row.Season)
	}
}
