package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
	"github.com/riskibarqy/mlb-stats/internal/domain/reference"
	"github.com/riskibarqy/mlb-stats/internal/domain/statsplit"
	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultHydrateWorkers = 4

// StatsProvider returns the raw body of a person stats query.
type StatsProvider interface {
	FetchPersonStats(ctx context.Context, req baseball.StatsRequest) ([]byte, error)
}

// PlayerProfile is a decoded profile together with the player it belongs to.
type PlayerProfile[P any] struct {
	Person reference.Person `json:"person"`
	Season string           `json:"season,omitempty"`
	Stats  P                `json:"stats"`
}

type (
	PlayerHitting  = PlayerProfile[baseball.HittingProfile]
	PlayerPitching = PlayerProfile[baseball.PitchingProfile]
	PlayerFielding = PlayerProfile[baseball.FieldingProfile]
)

type PlayerStatsOptions struct {
	// Archive is optional. When set, every fetched body is stored there.
	Archive        rawdata.Repository
	Logger         *logging.Logger
	HydrateWorkers int
	BatchWorkers   int
}

type PlayerStatsService struct {
	provider       StatsProvider
	refs           reference.Repository
	archive        rawdata.Repository
	logger         *logging.Logger
	hydrateWorkers int
	batchWorkers   int
	now            func() time.Time
}

func NewPlayerStatsService(provider StatsProvider, refs reference.Repository, opts PlayerStatsOptions) *PlayerStatsService {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	hydrateWorkers := opts.HydrateWorkers
	if hydrateWorkers <= 0 {
		hydrateWorkers = defaultHydrateWorkers
	}
	batchWorkers := opts.BatchWorkers
	if batchWorkers <= 0 {
		batchWorkers = defaultBatchWorkers
	}

	return &PlayerStatsService{
		provider:       provider,
		refs:           refs,
		archive:        opts.Archive,
		logger:         logger,
		hydrateWorkers: hydrateWorkers,
		batchWorkers:   batchWorkers,
		now:            time.Now,
	}
}

func (s *PlayerStatsService) Hitting(ctx context.Context, personID baseball.PersonID, season string) (PlayerHitting, error) {
	return loadPlayerProfile(ctx, s, personID, season, statsplit.GroupHitting, baseball.ProfileTypes, baseball.DecodeHittingProfile)
}

func (s *PlayerStatsService) Pitching(ctx context.Context, personID baseball.PersonID, season string) (PlayerPitching, error) {
	return loadPlayerProfile(ctx, s, personID, season, statsplit.GroupPitching, baseball.ProfileTypes, baseball.DecodePitchingProfile)
}

func (s *PlayerStatsService) Fielding(ctx context.Context, personID baseball.PersonID, season string) (PlayerFielding, error) {
	return loadPlayerProfile(ctx, s, personID, season, statsplit.GroupFielding, baseball.FieldingTypes, baseball.DecodeFieldingProfile)
}

type teamHydrated[P any] interface {
	TeamIDs() []baseball.TeamID
	WithTeamNames(names map[baseball.TeamID]string) P
}

func loadPlayerProfile[P teamHydrated[P]](
	ctx context.Context,
	s *PlayerStatsService,
	personID baseball.PersonID,
	season string,
	group statsplit.Group,
	types []string,
	decode func(*statsplit.Pool) (P, error),
) (PlayerProfile[P], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService."+string(group))
	defer span.End()
	span.SetAttributes(
		attribute.Int64("mlb.person_id", int64(personID)),
		attribute.String("mlb.season", season),
	)

	var zero PlayerProfile[P]
	if personID <= 0 {
		return zero, fmt.Errorf("%w: person id must be greater than zero", ErrInvalidInput)
	}
	season = strings.TrimSpace(season)

	person, exists, err := s.refs.GetPerson(ctx, personID)
	if err != nil {
		return zero, fmt.Errorf("get person person_id=%d: %w", personID, err)
	}
	if !exists {
		return zero, fmt.Errorf("%w: person id=%d", ErrNotFound, personID)
	}

	req := baseball.StatsRequest{
		PersonID: personID,
		Group:    group,
		Types:    types,
		Season:   season,
	}
	raw, err := s.provider.FetchPersonStats(ctx, req)
	if err != nil {
		return zero, fmt.Errorf("fetch %s stats: %w", group, err)
	}
	s.archiveBody(ctx, req, raw)

	stats, err := decodeProfile(raw, decode)
	if err != nil {
		return zero, err
	}
	stats = stats.WithTeamNames(s.teamNames(ctx, stats.TeamIDs()))

	return PlayerProfile[P]{Person: person, Season: season, Stats: stats}, nil
}

func decodeProfile[P any](raw []byte, decode func(*statsplit.Pool) (P, error)) (P, error) {
	var zero P
	statPool, err := statsplit.NormalizeResponse(raw)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	out, err := decode(statPool)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return out, nil
}

// DecodeProfile runs a saved stats response through the engine without any
// network or reference lookups.
func DecodeProfile(group statsplit.Group, raw []byte) (any, error) {
	switch group {
	case statsplit.GroupHitting:
		return decodeProfile(raw, baseball.DecodeHittingProfile)
	case statsplit.GroupPitching:
		return decodeProfile(raw, baseball.DecodePitchingProfile)
	case statsplit.GroupFielding:
		return decodeProfile(raw, baseball.DecodeFieldingProfile)
	default:
		return nil, fmt.Errorf("%w: unsupported group %q", ErrInvalidInput, group)
	}
}

type teamName struct {
	id   baseball.TeamID
	name string
}

// teamNames resolves ids concurrently. Lookups that fail or miss are logged
// and left out; the profile keeps whatever name the API sent.
func (s *PlayerStatsService) teamNames(ctx context.Context, ids []baseball.TeamID) map[baseball.TeamID]string {
	if len(ids) == 0 {
		return nil
	}

	lookups := pool.NewWithResults[teamName]().WithContext(ctx).WithMaxGoroutines(s.hydrateWorkers)
	for _, id := range ids {
		lookups.Go(func(ctx context.Context) (teamName, error) {
			team, exists, err := s.refs.GetTeam(ctx, id)
			if err != nil {
				s.logger.WarnContext(ctx, "team lookup failed", "team_id", id, "error", err)
				return teamName{id: id}, nil
			}
			if !exists {
				s.logger.DebugContext(ctx, "team not found", "team_id", id)
				return teamName{id: id}, nil
			}
			return teamName{id: id, name: team.Name}, nil
		})
	}

	resolved, _ := lookups.Wait()
	names := make(map[baseball.TeamID]string, len(resolved))
	for _, item := range resolved {
		if item.name != "" {
			names[item.id] = item.name
		}
	}
	return names
}

func (s *PlayerStatsService) archiveBody(ctx context.Context, req baseball.StatsRequest, raw []byte) {
	if s.archive == nil {
		return
	}

	item := rawdata.NewPayload(rawdata.SourceStatsAPI, rawdata.EntityPersonStats, req.EntityKey(), raw, s.now())
	item.PersonID = int64(req.PersonID)
	item.Season = req.Season
	if err := s.archive.UpsertMany(ctx, []rawdata.Payload{item}); err != nil {
		s.logger.WarnContext(ctx, "archive raw stats payload failed",
			"entity_key", item.EntityKey,
			"error", err,
		)
	}
}
