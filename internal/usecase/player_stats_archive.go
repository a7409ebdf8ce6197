package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
	"github.com/riskibarqy/mlb-stats/internal/domain/statsplit"
	"go.opentelemetry.io/otel/attribute"
)

// ArchivedProfile is a profile decoded from an archived response body.
type ArchivedProfile struct {
	EntityKey   string    `json:"entity_key"`
	PayloadHash string    `json:"payload_hash"`
	FetchedAt   time.Time `json:"fetched_at"`
	Stats       any       `json:"stats"`
}

// Archived decodes the latest archived stats body for a player without
// calling the API. It needs an archive; the lookup key matches what
// Hitting, Pitching and Fielding store.
func (s *PlayerStatsService) Archived(ctx context.Context, personID baseball.PersonID, group statsplit.Group, season string) (ArchivedProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Archived")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("mlb.person_id", int64(personID)),
		attribute.String("mlb.group", string(group)),
		attribute.String("mlb.season", season),
	)

	if s.archive == nil {
		return ArchivedProfile{}, fmt.Errorf("%w: raw payload archive is not enabled", ErrDependencyUnavailable)
	}
	if personID <= 0 {
		return ArchivedProfile{}, fmt.Errorf("%w: person id must be greater than zero", ErrInvalidInput)
	}

	req := baseball.StatsRequest{PersonID: personID, Group: group, Season: strings.TrimSpace(season)}
	key := req.EntityKey()
	item, exists, err := s.archive.GetLatest(ctx, rawdata.SourceStatsAPI, rawdata.EntityPersonStats, key)
	if err != nil {
		return ArchivedProfile{}, fmt.Errorf("%w: load archived payload key=%s: %w", ErrDependencyUnavailable, key, err)
	}
	if !exists {
		return ArchivedProfile{}, fmt.Errorf("%w: no archived payload for key=%s", ErrNotFound, key)
	}

	stats, err := DecodeProfile(group, []byte(item.PayloadJSON))
	if err != nil {
		return ArchivedProfile{}, fmt.Errorf("decode archived payload key=%s: %w", key, err)
	}

	return ArchivedProfile{
		EntityKey:   item.EntityKey,
		PayloadHash: item.PayloadHash,
		FetchedAt:   item.FetchedAt,
		Stats:       stats,
	}, nil
}
