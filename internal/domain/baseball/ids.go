package baseball

import "strconv"

type PersonID int64

type TeamID int64

type GamePK int64

func (id PersonID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id TeamID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id GamePK) String() string   { return strconv.FormatInt(int64(id), 10) }

// TeamRef is the team stub embedded in a split.
type TeamRef struct {
	ID   TeamID `json:"id"`
	Name string `json:"name,omitempty"`
	Link string `json:"link,omitempty"`
}

// PersonRef is the player stub embedded in a split.
type PersonRef struct {
	ID       PersonID `json:"id"`
	FullName string   `json:"fullName,omitempty"`
	Link     string   `json:"link,omitempty"`
}

// GameRef is the game stub embedded in a game log split.
type GameRef struct {
	PK       GamePK `json:"gamePk"`
	Link     string `json:"link,omitempty"`
	Number   int    `json:"gameNumber,omitempty"`
	DayNight string `json:"dayNight,omitempty"`
}

// PositionRef is the fielding position of a split.
type PositionRef struct {
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	Type         string `json:"type,omitempty"`
	Abbreviation string `json:"abbreviation"`
}
