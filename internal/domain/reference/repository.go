package reference

import (
	"context"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
)

// Repository resolves ids found in stat splits to reference records.
type Repository interface {
	GetTeam(ctx context.Context, teamID baseball.TeamID) (Team, bool, error)
	GetPerson(ctx context.Context, personID baseball.PersonID) (Person, bool, error)
}
