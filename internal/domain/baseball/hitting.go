package baseball

import (
	"github.com/riskibarqy/mlb-stats/internal/domain/omit"
	"github.com/riskibarqy/mlb-stats/internal/domain/statnum"
)

// Hitting is the "stat" object of a hitting split.
type Hitting struct {
	GamesPlayed          omit.Value[int] `json:"gamesPlayed"`
	PlateAppearances     omit.Value[int] `json:"plateAppearances"`
	AtBats               omit.Value[int] `json:"atBats"`
	Runs                 omit.Value[int] `json:"runs"`
	Hits                 omit.Value[int] `json:"hits"`
	Doubles              omit.Value[int] `json:"doubles"`
	Triples              omit.Value[int] `json:"triples"`
	HomeRuns             omit.Value[int] `json:"homeRuns"`
	RBI                  omit.Value[int] `json:"rbi"`
	BaseOnBalls          omit.Value[int] `json:"baseOnBalls"`
	IntentionalWalks     omit.Value[int] `json:"intentionalWalks"`
	StrikeOuts           omit.Value[int] `json:"strikeOuts"`
	HitByPitch           omit.Value[int] `json:"hitByPitch"`
	StolenBases          omit.Value[int] `json:"stolenBases"`
	CaughtStealing       omit.Value[int] `json:"caughtStealing"`
	SacBunts             omit.Value[int] `json:"sacBunts"`
	SacFlies             omit.Value[int] `json:"sacFlies"`
	GroundIntoDoublePlay omit.Value[int] `json:"groundIntoDoublePlay"`
	TotalBases           omit.Value[int] `json:"totalBases"`
	LeftOnBase           omit.Value[int] `json:"leftOnBase"`

	Avg                  omit.Value[statnum.ThreeDecimal] `json:"avg"`
	OBP                  omit.Value[statnum.ThreeDecimal] `json:"obp"`
	SLG                  omit.Value[statnum.ThreeDecimal] `json:"slg"`
	OPS                  omit.Value[statnum.ThreeDecimal] `json:"ops"`
	BABIP                omit.Value[statnum.ThreeDecimal] `json:"babip"`
	StolenBasePercentage omit.Value[statnum.ThreeDecimal] `json:"stolenBasePercentage"`
}

// Add sums the counting stats of h and o and recomputes the rates from the
// sums. A column omitted on either side stays omitted.
func (h Hitting) Add(o Hitting) Hitting {
	out := Hitting{
		GamesPlayed:          omit.Combine(h.GamesPlayed, o.GamesPlayed),
		PlateAppearances:     omit.Combine(h.PlateAppearances, o.PlateAppearances),
		AtBats:               omit.Combine(h.AtBats, o.AtBats),
		Runs:                 omit.Combine(h.Runs, o.Runs),
		Hits:                 omit.Combine(h.Hits, o.Hits),
		Doubles:              omit.Combine(h.Doubles, o.Doubles),
		Triples:              omit.Combine(h.Triples, o.Triples),
		HomeRuns:             omit.Combine(h.HomeRuns, o.HomeRuns),
		RBI:                  omit.Combine(h.RBI, o.RBI),
		BaseOnBalls:          omit.Combine(h.BaseOnBalls, o.BaseOnBalls),
		IntentionalWalks:     omit.Combine(h.IntentionalWalks, o.IntentionalWalks),
		StrikeOuts:           omit.Combine(h.StrikeOuts, o.StrikeOuts),
		HitByPitch:           omit.Combine(h.HitByPitch, o.HitByPitch),
		StolenBases:          omit.Combine(h.StolenBases, o.StolenBases),
		CaughtStealing:       omit.Combine(h.CaughtStealing, o.CaughtStealing),
		SacBunts:             omit.Combine(h.SacBunts, o.SacBunts),
		SacFlies:             omit.Combine(h.SacFlies, o.SacFlies),
		GroundIntoDoublePlay: omit.Combine(h.GroundIntoDoublePlay, o.GroundIntoDoublePlay),
		TotalBases:           omit.Combine(h.TotalBases, o.TotalBases),
		LeftOnBase:           omit.Combine(h.LeftOnBase, o.LeftOnBase),
	}
	return out.WithDerivedRates()
}

// WithDerivedRates recomputes every rate column from the counting columns.
func (h Hitting) WithDerivedRates() Hitting {
	onBase := sum(h.Hits, h.BaseOnBalls, h.HitByPitch)
	onBaseChances := sum(h.AtBats, h.BaseOnBalls, h.HitByPitch, h.SacFlies)
	totalBases := h.TotalBases
	if totalBases.IsOmitted() {
		totalBases = sum(h.Hits, h.Doubles, scale(h.Triples, 2), scale(h.HomeRuns, 3))
	}

	h.Avg = ratioThree(h.Hits, h.AtBats)
	h.OBP = ratioThree(onBase, onBaseChances)
	h.SLG = ratioThree(totalBases, h.AtBats)
	h.OPS = omit.CombineFunc(h.OBP, h.SLG, func(a, b statnum.ThreeDecimal) statnum.ThreeDecimal {
		return a + b
	})
	h.BABIP = ratioThree(
		diff(h.Hits, h.HomeRuns),
		sum(diff(diff(h.AtBats, h.StrikeOuts), h.HomeRuns), h.SacFlies),
	)
	h.StolenBasePercentage = ratioThree(h.StolenBases, sum(h.StolenBases, h.CaughtStealing))
	return h
}
