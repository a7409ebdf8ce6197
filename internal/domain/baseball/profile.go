package baseball

import (
	"sort"

	"github.com/riskibarqy/mlb-stats/internal/domain/statsplit"
)

// Stat type names as the API spells them.
const (
	TypeSeason      = "season"
	TypeCareer      = "career"
	TypeYearByYear  = "yearByYear"
	TypeHomeAndAway = "homeAndAway"
	TypeWinLoss     = "winLoss"
	TypeByMonth     = "byMonth"
	TypeByDayOfWeek = "byDayOfWeek"
	TypeGameLog     = "gameLog"
)

// ProfileTypes are the stat types a Profile is assembled from.
var ProfileTypes = []string{
	TypeSeason,
	TypeCareer,
	TypeYearByYear,
	TypeHomeAndAway,
	TypeWinLoss,
	TypeByMonth,
	TypeByDayOfWeek,
	TypeGameLog,
}

// FieldingTypes are the stat types a FieldingProfile is assembled from.
var FieldingTypes = []string{
	TypeSeason,
	TypeCareer,
	TypeYearByYear,
}

// Profile is every hitting or pitching view of one player the API can return
// in a single stats query.
type Profile[T any] struct {
	Season      statsplit.Sequence[SeasonSplit[T]]                  `json:"season"`
	Career      statsplit.Single[SeasonSplit[T]]                    `json:"career"`
	YearByYear  statsplit.NestedMap[string, TeamID, SeasonSplit[T]] `json:"yearByYear"`
	HomeAway    statsplit.HomeAway[HomeAwaySplit[T]]                `json:"homeAndAway"`
	WinLoss     statsplit.WinLoss[WinLossSplit[T]]                  `json:"winLoss"`
	ByMonth     statsplit.Map[int, MonthSplit[T]]                   `json:"byMonth"`
	ByDayOfWeek statsplit.Map[int, DayOfWeekSplit[T]]               `json:"byDayOfWeek"`
	GameLog     statsplit.Map[GamePK, GameLogSplit[T]]              `json:"gameLog"`
}

type HittingProfile = Profile[Hitting]

type PitchingProfile = Profile[Pitching]

// FieldingProfile keys season and career rows by position, then team.
type FieldingProfile struct {
	Season     statsplit.NestedMap[string, TeamID, PositionSplit] `json:"season"`
	Career     statsplit.NestedMap[string, TeamID, PositionSplit] `json:"career"`
	YearByYear statsplit.Sequence[PositionSplit]                  `json:"yearByYear"`
}

func DecodeHittingProfile(pool *statsplit.Pool) (HittingProfile, error) {
	return decodeProfile[Hitting](pool, "hitting", statsplit.GroupHitting)
}

func DecodePitchingProfile(pool *statsplit.Pool) (PitchingProfile, error) {
	return decodeProfile[Pitching](pool, "pitching", statsplit.GroupPitching)
}

func decodeProfile[T any](pool *statsplit.Pool, name string, group statsplit.Group) (Profile[T], error) {
	asm := statsplit.NewAssembler(name, pool, group)
	profile := Profile[T]{
		Season:      statsplit.Field[SeasonSplit[T], statsplit.Sequence[SeasonSplit[T]]](asm, TypeSeason),
		Career:      statsplit.Field[SeasonSplit[T], statsplit.Single[SeasonSplit[T]]](asm, TypeCareer),
		YearByYear:  statsplit.Field[SeasonSplit[T], statsplit.NestedMap[string, TeamID, SeasonSplit[T]]](asm, TypeYearByYear),
		HomeAway:    statsplit.Field[HomeAwaySplit[T], statsplit.HomeAway[HomeAwaySplit[T]]](asm, TypeHomeAndAway),
		WinLoss:     statsplit.Field[WinLossSplit[T], statsplit.WinLoss[WinLossSplit[T]]](asm, TypeWinLoss),
		ByMonth:     statsplit.Field[MonthSplit[T], statsplit.Map[int, MonthSplit[T]]](asm, TypeByMonth),
		ByDayOfWeek: statsplit.Field[DayOfWeekSplit[T], statsplit.Map[int, DayOfWeekSplit[T]]](asm, TypeByDayOfWeek),
		GameLog:     statsplit.Field[GameLogSplit[T], statsplit.Map[GamePK, GameLogSplit[T]]](asm, TypeGameLog),
	}
	if err := asm.Err(); err != nil {
		return Profile[T]{}, err
	}
	return profile, nil
}

func DecodeFieldingProfile(pool *statsplit.Pool) (FieldingProfile, error) {
	asm := statsplit.NewAssembler("fielding", pool, statsplit.GroupFielding)
	profile := FieldingProfile{
		Season:     statsplit.Field[PositionSplit, statsplit.NestedMap[string, TeamID, PositionSplit]](asm, TypeSeason),
		Career:     statsplit.Field[PositionSplit, statsplit.NestedMap[string, TeamID, PositionSplit]](asm, TypeCareer),
		YearByYear: statsplit.Field[PositionSplit, statsplit.Sequence[PositionSplit]](asm, TypeYearByYear),
	}
	if err := asm.Err(); err != nil {
		return FieldingProfile{}, err
	}
	return profile, nil
}

// YearByYearTotals sums each season across teams, skipping combined rows.
func YearByYearTotals[T Line[T]](years statsplit.NestedMap[string, TeamID, SeasonSplit[T]]) map[string]T {
	out := make(map[string]T, len(years))
	for season, byTeam := range years {
		teamIDs := make([]TeamID, 0, len(byTeam))
		for teamID := range byTeam {
			teamIDs = append(teamIDs, teamID)
		}
		sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })

		rows := make([]SeasonSplit[T], 0, len(teamIDs))
		for _, teamID := range teamIDs {
			rows = append(rows, byTeam[teamID])
		}
		if total, ok := Totals(rows); ok {
			out[season] = total
		}
	}
	return out
}

// TeamIDs lists every team referenced by the profile, ascending.
func (p Profile[T]) TeamIDs() []TeamID {
	seen := make(map[TeamID]struct{})
	add := func(ref *TeamRef) {
		if ref != nil && ref.ID > 0 {
			seen[ref.ID] = struct{}{}
		}
	}
	for _, split := range p.Season {
		add(split.Team)
	}
	add(p.Career.Split.Team)
	for _, byTeam := range p.YearByYear {
		for _, split := range byTeam {
			add(split.Team)
		}
	}
	for _, split := range p.GameLog {
		add(&split.Team)
		add(&split.Opponent)
	}
	return sortedTeamIDs(seen)
}

// WithTeamNames returns a copy of the profile with team names filled in from
// names. Teams missing from names keep what the API sent.
func (p Profile[T]) WithTeamNames(names map[TeamID]string) Profile[T] {
	out := p

	out.Season = make(statsplit.Sequence[SeasonSplit[T]], 0, len(p.Season))
	for _, split := range p.Season {
		split.Team = namedTeam(split.Team, names)
		out.Season = append(out.Season, split)
	}
	out.Career.Split.Team = namedTeam(p.Career.Split.Team, names)

	if p.YearByYear != nil {
		out.YearByYear = make(statsplit.NestedMap[string, TeamID, SeasonSplit[T]], len(p.YearByYear))
		for season, byTeam := range p.YearByYear {
			bucket := make(map[TeamID]SeasonSplit[T], len(byTeam))
			for teamID, split := range byTeam {
				split.Team = namedTeam(split.Team, names)
				bucket[teamID] = split
			}
			out.YearByYear[season] = bucket
		}
	}

	if p.GameLog != nil {
		out.GameLog = make(statsplit.Map[GamePK, GameLogSplit[T]], len(p.GameLog))
		for pk, split := range p.GameLog {
			split.Team = *namedTeam(&split.Team, names)
			split.Opponent = *namedTeam(&split.Opponent, names)
			out.GameLog[pk] = split
		}
	}
	return out
}

// TeamIDs lists every team referenced by the fielding profile, ascending.
func (p FieldingProfile) TeamIDs() []TeamID {
	seen := make(map[TeamID]struct{})
	collect := func(rows []PositionSplit) {
		for _, row := range rows {
			if row.Team != nil && row.Team.ID > 0 {
				seen[row.Team.ID] = struct{}{}
			}
		}
	}
	for _, byTeam := range p.Season {
		for teamID := range byTeam {
			if teamID > 0 {
				seen[teamID] = struct{}{}
			}
		}
	}
	for _, byTeam := range p.Career {
		for teamID := range byTeam {
			if teamID > 0 {
				seen[teamID] = struct{}{}
			}
		}
	}
	collect(p.YearByYear)
	return sortedTeamIDs(seen)
}

func (p FieldingProfile) WithTeamNames(names map[TeamID]string) FieldingProfile {
	rename := func(in statsplit.NestedMap[string, TeamID, PositionSplit]) statsplit.NestedMap[string, TeamID, PositionSplit] {
		if in == nil {
			return nil
		}
		out := make(statsplit.NestedMap[string, TeamID, PositionSplit], len(in))
		for position, byTeam := range in {
			bucket := make(map[TeamID]PositionSplit, len(byTeam))
			for teamID, split := range byTeam {
				split.Team = namedTeam(split.Team, names)
				bucket[teamID] = split
			}
			out[position] = bucket
		}
		return out
	}

	out := FieldingProfile{
		Season: rename(p.Season),
		Career: rename(p.Career),
	}
	if p.YearByYear != nil {
		out.YearByYear = make(statsplit.Sequence[PositionSplit], 0, len(p.YearByYear))
		for _, split := range p.YearByYear {
			split.Team = namedTeam(split.Team, names)
			out.YearByYear = append(out.YearByYear, split)
		}
	}
	return out
}

func namedTeam(ref *TeamRef, names map[TeamID]string) *TeamRef {
	if ref == nil {
		return nil
	}
	out := *ref
	if name, ok := names[ref.ID]; ok && name != "" {
		out.Name = name
	}
	return &out
}

func sortedTeamIDs(seen map[TeamID]struct{}) []TeamID {
	out := make([]TeamID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
