package baseball

import (
	"github.com/riskibarqy/mlb-stats/internal/domain/omit"
	"github.com/riskibarqy/mlb-stats/internal/domain/statnum"
)

func sum(values ...omit.Value[int]) omit.Value[int] {
	if len(values) == 0 {
		return omit.Omitted[int]()
	}
	out := values[0]
	for _, v := range values[1:] {
		out = omit.Combine(out, v)
	}
	return out
}

func diff(a, b omit.Value[int]) omit.Value[int] {
	return omit.Combine(a, omit.Map(b, func(v int) int { return -v }))
}

func scale(v omit.Value[int], factor int) omit.Value[int] {
	return omit.Map(v, func(n int) int { return n * factor })
}

func ratioThree(num, den omit.Value[int]) omit.Value[statnum.ThreeDecimal] {
	n, okNum := num.Get()
	d, okDen := den.Get()
	if !okNum || !okDen {
		return omit.Omitted[statnum.ThreeDecimal]()
	}
	return omit.Of(statnum.RatioThree(float64(n), float64(d)))
}

func ratioPercent(num, den omit.Value[int]) omit.Value[statnum.Percent] {
	n, okNum := num.Get()
	d, okDen := den.Get()
	if !okNum || !okDen {
		return omit.Omitted[statnum.Percent]()
	}
	return omit.Of(statnum.RatioPercent(float64(n), float64(d)))
}

// perInnings is count * per / innings, e.g. ERA with per = 9. Innings cross
// into floating point only here.
func perInnings(count omit.Value[int], innings omit.Value[statnum.InningsPitched], per float64) omit.Value[statnum.TwoDecimal] {
	c, okCount := count.Get()
	ip, okInnings := innings.Get()
	if !okCount || !okInnings {
		return omit.Omitted[statnum.TwoDecimal]()
	}
	return omit.Of(statnum.RatioTwo(float64(c)*per, ip.Float()))
}

func addInnings(a, b omit.Value[statnum.InningsPitched]) omit.Value[statnum.InningsPitched] {
	return omit.CombineFunc(a, b, statnum.InningsPitched.Add)
}
