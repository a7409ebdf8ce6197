package reference

import (
	"fmt"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
)

// Team is the slice of /teams/{id} needed to label stat splits.
type Team struct {
	ID           baseball.TeamID
	Name         string
	Abbreviation string
	LocationName string
	LeagueID     int64
	DivisionID   int64
	Active       bool
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// Person is the slice of /people/{id} needed to label a player.
type Person struct {
	ID              baseball.PersonID
	FullName        string
	PrimaryNumber   string
	PrimaryPosition baseball.PositionRef
	BatSide         string
	PitchHand       string
	Active          bool
}

func (p Person) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("person id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("person full name is required")
	}
	return nil
}
