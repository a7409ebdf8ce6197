package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/domain/reference"
	basecache "github.com/riskibarqy/mlb-stats/internal/platform/cache"
)

const (
	teamKeyPrefix   = "team:id:"
	personKeyPrefix = "person:id:"
)

// ReferenceRepository memoizes team and person lookups. Misses are cached
// too, so an unknown id is asked for once per TTL.
type ReferenceRepository struct {
	next    reference.Repository
	teams   *basecache.Store[cachedTeamByID]
	persons *basecache.Store[cachedPersonByID]
}

func NewReferenceRepository(next reference.Repository, ttl time.Duration) *ReferenceRepository {
	return &ReferenceRepository{
		next:    next,
		teams:   basecache.NewStore[cachedTeamByID](ttl),
		persons: basecache.NewStore[cachedPersonByID](ttl),
	}
}

func (r *ReferenceRepository) GetTeam(ctx context.Context, teamID baseball.TeamID) (reference.Team, bool, error) {
	key := teamKeyPrefix + strconv.FormatInt(int64(teamID), 10)
	cached, err := r.teams.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetTeam(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return reference.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ReferenceRepository) GetPerson(ctx context.Context, personID baseball.PersonID) (reference.Person, bool, error) {
	key := personKeyPrefix + strconv.FormatInt(int64(personID), 10)
	cached, err := r.persons.GetOrLoad(ctx, key, func(ctx context.Context) (cachedPersonByID, error) {
		item, exists, err := r.next.GetPerson(ctx, personID)
		if err != nil {
			return cachedPersonByID{}, err
		}
		return cachedPersonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return reference.Person{}, false, err
	}
	return cached.value, cached.exists, nil
}

// Invalidate drops every cached team and person.
func (r *ReferenceRepository) Invalidate(ctx context.Context) {
	r.teams.DeletePrefix(ctx, teamKeyPrefix)
	r.persons.DeletePrefix(ctx, personKeyPrefix)
}

type cachedTeamByID struct {
	value  reference.Team
	exists bool
}

type cachedPersonByID struct {
	value  reference.Person
	exists bool
}
