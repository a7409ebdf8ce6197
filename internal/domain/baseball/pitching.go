package baseball

import (
	"github.com/riskibarqy/mlb-stats/internal/domain/omit"
	"github.com/riskibarqy/mlb-stats/internal/domain/statnum"
)

// Pitching is the "stat" object of a pitching split.
type Pitching struct {
	GamesPlayed       omit.Value[int]                    `json:"gamesPlayed"`
	GamesStarted      omit.Value[int]                    `json:"gamesStarted"`
	Wins              omit.Value[int]                    `json:"wins"`
	Losses            omit.Value[int]                    `json:"losses"`
	Saves             omit.Value[int]                    `json:"saves"`
	SaveOpportunities omit.Value[int]                    `json:"saveOpportunities"`
	Holds             omit.Value[int]                    `json:"holds"`
	BlownSaves        omit.Value[int]                    `json:"blownSaves"`
	CompleteGames     omit.Value[int]                    `json:"completeGames"`
	Shutouts          omit.Value[int]                    `json:"shutouts"`
	InningsPitched    omit.Value[statnum.InningsPitched] `json:"inningsPitched"`
	Hits              omit.Value[int]                    `json:"hits"`
	Runs              omit.Value[int]                    `json:"runs"`
	EarnedRuns        omit.Value[int]                    `json:"earnedRuns"`
	HomeRuns          omit.Value[int]                    `json:"homeRuns"`
	BaseOnBalls       omit.Value[int]                    `json:"baseOnBalls"`
	IntentionalWalks  omit.Value[int]                    `json:"intentionalWalks"`
	StrikeOuts        omit.Value[int]                    `json:"strikeOuts"`
	HitBatsmen        omit.Value[int]                    `json:"hitBatsmen"`
	BattersFaced      omit.Value[int]                    `json:"battersFaced"`
	NumberOfPitches   omit.Value[int]                    `json:"numberOfPitches"`
	Strikes           omit.Value[int]                    `json:"strikes"`
	WildPitches       omit.Value[int]                    `json:"wildPitches"`
	Balks             omit.Value[int]                    `json:"balks"`

	ERA              omit.Value[statnum.TwoDecimal]   `json:"era"`
	WHIP             omit.Value[statnum.TwoDecimal]   `json:"whip"`
	StrikeoutsPer9   omit.Value[statnum.TwoDecimal]   `json:"strikeoutsPer9Inn"`
	WalksPer9        omit.Value[statnum.TwoDecimal]   `json:"walksPer9Inn"`
	WinPercentage    omit.Value[statnum.ThreeDecimal] `json:"winPercentage"`
	StrikePercentage omit.Value[statnum.Percent]      `json:"strikePercentage"`
}

// Add sums two pitching lines; innings add on outs, never on the "6.2" text.
func (p Pitching) Add(o Pitching) Pitching {
	out := Pitching{
		GamesPlayed:       omit.Combine(p.GamesPlayed, o.GamesPlayed),
		GamesStarted:      omit.Combine(p.GamesStarted, o.GamesStarted),
		Wins:              omit.Combine(p.Wins, o.Wins),
		Losses:            omit.Combine(p.Losses, o.Losses),
		Saves:             omit.Combine(p.Saves, o.Saves),
		SaveOpportunities: omit.Combine(p.SaveOpportunities, o.SaveOpportunities),
		Holds:             omit.Combine(p.Holds, o.Holds),
		BlownSaves:        omit.Combine(p.BlownSaves, o.BlownSaves),
		CompleteGames:     omit.Combine(p.CompleteGames, o.CompleteGames),
		Shutouts:          omit.Combine(p.Shutouts, o.Shutouts),
		InningsPitched:    addInnings(p.InningsPitched, o.InningsPitched),
		Hits:              omit.Combine(p.Hits, o.Hits),
		Runs:              omit.Combine(p.Runs, o.Runs),
		EarnedRuns:        omit.Combine(p.EarnedRuns, o.EarnedRuns),
		HomeRuns:          omit.Combine(p.HomeRuns, o.HomeRuns),
		BaseOnBalls:       omit.Combine(p.BaseOnBalls, o.BaseOnBalls),
		IntentionalWalks:  omit.Combine(p.IntentionalWalks, o.IntentionalWalks),
		StrikeOuts:        omit.Combine(p.StrikeOuts, o.StrikeOuts),
		HitBatsmen:        omit.Combine(p.HitBatsmen, o.HitBatsmen),
		BattersFaced:      omit.Combine(p.BattersFaced, o.BattersFaced),
		NumberOfPitches:   omit.Combine(p.NumberOfPitches, o.NumberOfPitches),
		Strikes:           omit.Combine(p.Strikes, o.Strikes),
		WildPitches:       omit.Combine(p.WildPitches, o.WildPitches),
		Balks:             omit.Combine(p.Balks, o.Balks),
	}
	return out.WithDerivedRates()
}

func (p Pitching) WithDerivedRates() Pitching {
	p.ERA = perInnings(p.EarnedRuns, p.InningsPitched, 9)
	p.WHIP = perInnings(sum(p.BaseOnBalls, p.Hits), p.InningsPitched, 1)
	p.StrikeoutsPer9 = perInnings(p.StrikeOuts, p.InningsPitched, 9)
	p.WalksPer9 = perInnings(p.BaseOnBalls, p.InningsPitched, 9)
	p.WinPercentage = ratioThree(p.Wins, sum(p.Wins, p.Losses))
	p.StrikePercentage = ratioPercent(p.Strikes, p.NumberOfPitches)
	return p
}
