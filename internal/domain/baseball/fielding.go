package baseball

import (
	"github.com/riskibarqy/mlb-stats/internal/domain/omit"
	"github.com/riskibarqy/mlb-stats/internal/domain/statnum"
)

// Fielding is the "stat" object of a fielding split.
type Fielding struct {
	Position       *PositionRef                       `json:"position,omitempty"`
	GamesPlayed    omit.Value[int]                    `json:"gamesPlayed"`
	GamesStarted   omit.Value[int]                    `json:"gamesStarted"`
	Assists        omit.Value[int]                    `json:"assists"`
	PutOuts        omit.Value[int]                    `json:"putOuts"`
	Errors         omit.Value[int]                    `json:"errors"`
	Chances        omit.Value[int]                    `json:"chances"`
	DoublePlays    omit.Value[int]                    `json:"doublePlays"`
	TriplePlays    omit.Value[int]                    `json:"triplePlays"`
	ThrowingErrors omit.Value[int]                    `json:"throwingErrors"`
	Innings        omit.Value[statnum.InningsPitched] `json:"innings"`

	FieldingPercentage omit.Value[statnum.ThreeDecimal] `json:"fielding"`
	RangeFactorPerGame omit.Value[statnum.TwoDecimal]   `json:"rangeFactorPerGame"`
	RangeFactorPer9    omit.Value[statnum.TwoDecimal]   `json:"rangeFactorPer9Inn"`
}

// Add sums two fielding lines. The position is kept only when both lines
// were played at the same one.
func (f Fielding) Add(o Fielding) Fielding {
	out := Fielding{
		GamesPlayed:    omit.Combine(f.GamesPlayed, o.GamesPlayed),
		GamesStarted:   omit.Combine(f.GamesStarted, o.GamesStarted),
		Assists:        omit.Combine(f.Assists, o.Assists),
		PutOuts:        omit.Combine(f.PutOuts, o.PutOuts),
		Errors:         omit.Combine(f.Errors, o.Errors),
		Chances:        omit.Combine(f.Chances, o.Chances),
		DoublePlays:    omit.Combine(f.DoublePlays, o.DoublePlays),
		TriplePlays:    omit.Combine(f.TriplePlays, o.TriplePlays),
		ThrowingErrors: omit.Combine(f.ThrowingErrors, o.ThrowingErrors),
		Innings:        addInnings(f.Innings, o.Innings),
	}
	if f.Position != nil && o.Position != nil && f.Position.Code == o.Position.Code {
		position := *f.Position
		out.Position = &position
	}
	return out.WithDerivedRates()
}

func (f Fielding) WithDerivedRates() Fielding {
	plays := sum(f.PutOuts, f.Assists)
	f.FieldingPercentage = ratioThree(plays, sum(plays, f.Errors))
	f.RangeFactorPerGame = omit.Map(ratioThree(plays, f.GamesPlayed), func(v statnum.ThreeDecimal) statnum.TwoDecimal {
		return statnum.TwoDecimal(v)
	})
	f.RangeFactorPer9 = perInnings(plays, f.Innings, 9)
	return f
}
