package baseball

import "github.com/riskibarqy/mlb-stats/internal/domain/statsplit"

// StatsRequest is one person stats query. An empty Season lets the API pick
// the current one.
type StatsRequest struct {
	PersonID PersonID        `validate:"gt=0"`
	Group    statsplit.Group `validate:"required,oneof=hitting pitching fielding catching running"`
	Types    []string        `validate:"required,min=1,dive,required,alpha"`
	Season   string          `validate:"omitempty,len=4,numeric"`
	GameType string          `validate:"omitempty,oneof=R P S E A D L W F"`
}

// EntityKey identifies the request in the raw payload archive.
func (r StatsRequest) EntityKey() string {
	season := r.Season
	if season == "" {
		season = "current"
	}
	return r.PersonID.String() + ":" + string(r.Group) + ":" + season
}
