package baseball

import "github.com/riskibarqy/mlb-stats/internal/domain/omit"

// Line is a stat payload that can be accumulated across splits.
type Line[T any] interface {
	Add(T) T
}

// SeasonSplit is one row of "season", "career" or "yearByYear". A traded
// player gets one row per team plus a combined row without a team.
type SeasonSplit[T any] struct {
	Season   string          `json:"season"`
	GameType string          `json:"gameType,omitempty"`
	Team     *TeamRef        `json:"team,omitempty"`
	Player   *PersonRef      `json:"player,omitempty"`
	NumTeams omit.Value[int] `json:"numTeams"`
	Stats    T               `json:"stat"`
}

// Combined reports whether the row totals several teams.
func (s SeasonSplit[T]) Combined() bool {
	return s.Team == nil && s.NumTeams.Or(1) > 1
}

func (s SeasonSplit[T]) TeamID() TeamID {
	if s.Team == nil {
		return 0
	}
	return s.Team.ID
}

func (s SeasonSplit[T]) OuterKey() string { return s.Season }

// InnerKey is 0 for the combined row of a traded player.
func (s SeasonSplit[T]) InnerKey() TeamID { return s.TeamID() }

type HomeAwaySplit[T any] struct {
	Season string `json:"season"`
	Home   bool   `json:"isHome"`
	Stats  T      `json:"stat"`
}

func (s HomeAwaySplit[T]) IsHome() bool { return s.Home }

type WinLossSplit[T any] struct {
	Season string `json:"season"`
	Win    bool   `json:"isWin"`
	Stats  T      `json:"stat"`
}

func (s WinLossSplit[T]) IsWin() bool { return s.Win }

type MonthSplit[T any] struct {
	Season string `json:"season"`
	Month  int    `json:"month"`
	Stats  T      `json:"stat"`
}

func (s MonthSplit[T]) Key() int { return s.Month }

// DayOfWeekSplit keys on the API's day number, 1 = Sunday.
type DayOfWeekSplit[T any] struct {
	Season    string `json:"season"`
	DayOfWeek int    `json:"dayOfWeek"`
	Stats     T      `json:"stat"`
}

func (s DayOfWeekSplit[T]) Key() int { return s.DayOfWeek }

type GameLogSplit[T any] struct {
	Season   string  `json:"season"`
	Date     string  `json:"date"`
	GameType string  `json:"gameType,omitempty"`
	Home     bool    `json:"isHome"`
	Win      bool    `json:"isWin"`
	Game     GameRef `json:"game"`
	Team     TeamRef `json:"team"`
	Opponent TeamRef `json:"opponent"`
	Stats    T       `json:"stat"`
}

func (s GameLogSplit[T]) Key() GamePK { return s.Game.PK }

// PositionSplit is a fielding row for one position, possibly for one of
// several teams in the season.
type PositionSplit struct {
	Season   string       `json:"season"`
	Position *PositionRef `json:"position,omitempty"`
	Team     *TeamRef     `json:"team,omitempty"`
	Stats    Fielding     `json:"stat"`
}

// OuterKey is the position abbreviation, read from the split or its stat.
func (s PositionSplit) OuterKey() string {
	for _, position := range []*PositionRef{s.Position, s.Stats.Position} {
		if position == nil {
			continue
		}
		if position.Abbreviation != "" {
			return position.Abbreviation
		}
		if position.Code != "" {
			return position.Code
		}
	}
	return ""
}

func (s PositionSplit) InnerKey() TeamID {
	if s.Team == nil {
		return 0
	}
	return s.Team.ID
}

// Totals sums the stats of splits in order. Combined rows are skipped so a
// traded player's season is not counted twice. Any column omitted in one row
// is omitted in the total.
func Totals[T Line[T]](splits []SeasonSplit[T]) (T, bool) {
	var total T
	found := false
	for _, split := range splits {
		if split.Combined() {
			continue
		}
		if !found {
			total = split.Stats
			found = true
			continue
		}
		total = total.Add(split.Stats)
	}
	return total, found
}
