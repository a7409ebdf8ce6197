// Package statnum holds the numeric encodings the stats API uses for rate
// stats and innings counts.
package statnum

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

const (
	threeDecimalPlaceholder = ".---"
	twoDecimalPlaceholder   = "-.--"
	percentPlaceholder      = "--.-%"
)

var ErrInvalidRate = crerr.New("invalid rate value")

// ThreeDecimal is a batting-average style rate printed as ".300".
// NaN is the "not applicable" sentinel.
type ThreeDecimal float64

// TwoDecimal is an ERA style rate printed as "3.45".
type TwoDecimal float64

// Percent is a fraction printed as a percentage, 0.453 -> "45.30%".
type Percent float64

func SentinelThree() ThreeDecimal { return ThreeDecimal(math.NaN()) }
func SentinelTwo() TwoDecimal     { return TwoDecimal(math.NaN()) }
func SentinelPercent() Percent    { return Percent(math.NaN()) }

// RatioThree returns num/den, or the sentinel when den is zero.
func RatioThree(num, den float64) ThreeDecimal {
	return ThreeDecimal(ratio(num, den))
}

func RatioTwo(num, den float64) TwoDecimal {
	return TwoDecimal(ratio(num, den))
}

func RatioPercent(num, den float64) Percent {
	return Percent(ratio(num, den))
}

func ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}

func (r ThreeDecimal) Float() float64 { return float64(r) }
func (r TwoDecimal) Float() float64   { return float64(r) }
func (p Percent) Float() float64      { return float64(p) }

func (r ThreeDecimal) IsSentinel() bool { return isSentinel(float64(r)) }
func (r TwoDecimal) IsSentinel() bool   { return isSentinel(float64(r)) }
func (p Percent) IsSentinel() bool      { return isSentinel(float64(p)) }

// Equal treats two sentinels as equal, unlike ==.
func (r ThreeDecimal) Equal(o ThreeDecimal) bool { return floatEqual(float64(r), float64(o)) }
func (r TwoDecimal) Equal(o TwoDecimal) bool     { return floatEqual(float64(r), float64(o)) }
func (p Percent) Equal(o Percent) bool           { return floatEqual(float64(p), float64(o)) }

func (r ThreeDecimal) String() string {
	if r.IsSentinel() {
		return threeDecimalPlaceholder
	}
	text := strconv.FormatFloat(float64(r), 'f', 3, 64)
	switch {
	case strings.HasPrefix(text, "0."):
		return text[1:]
	case strings.HasPrefix(text, "-0."):
		return "-" + text[2:]
	default:
		return text
	}
}

func (r TwoDecimal) String() string {
	if r.IsSentinel() {
		return twoDecimalPlaceholder
	}
	return strconv.FormatFloat(float64(r), 'f', 2, 64)
}

func (p Percent) String() string {
	if p.IsSentinel() {
		return percentPlaceholder
	}
	return strconv.FormatFloat(float64(p)*100, 'f', 2, 64) + "%"
}

func ParseThreeDecimal(text string) (ThreeDecimal, error) {
	v, err := parseRateText(text)
	return ThreeDecimal(v), err
}

func ParseTwoDecimal(text string) (TwoDecimal, error) {
	v, err := parseRateText(text)
	return TwoDecimal(v), err
}

// ParsePercent accepts "45.30%" as well as a bare fraction such as ".453".
func ParsePercent(text string) (Percent, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "%") {
		v, err := parseRateText(strings.TrimSuffix(trimmed, "%"))
		if err != nil {
			return 0, err
		}
		return Percent(v / 100), nil
	}
	v, err := parseRateText(trimmed)
	return Percent(v), err
}

func (r *ThreeDecimal) UnmarshalJSON(data []byte) error {
	v, err := decodeRate(data, ParseThreeDecimal)
	*r = v
	return err
}

func (r *TwoDecimal) UnmarshalJSON(data []byte) error {
	v, err := decodeRate(data, ParseTwoDecimal)
	*r = v
	return err
}

// UnmarshalJSON also accepts small signed integers, which the API sends for
// some percentage columns. An integer is whole percent points: 45 is 45%.
func (p *Percent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if isIntegerToken(trimmed) {
		n, err := strconv.ParseInt(string(trimmed), 10, 8)
		if err != nil {
			return crerr.Wrapf(ErrInvalidRate, "percent integer %s", trimmed)
		}
		*p = Percent(float64(n) / 100)
		return nil
	}
	v, err := decodeRate(trimmed, ParsePercent)
	*p = v
	return err
}

func (r ThreeDecimal) MarshalJSON() ([]byte, error) { return sonic.Marshal(r.String()) }
func (r TwoDecimal) MarshalJSON() ([]byte, error)   { return sonic.Marshal(r.String()) }
func (p Percent) MarshalJSON() ([]byte, error)      { return sonic.Marshal(p.String()) }

func decodeRate[T ~float64](data []byte, parse func(string) (T, error)) (T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return T(math.NaN()), nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return 0, crerr.Wrapf(ErrInvalidRate, "decode rate text: %v", err)
		}
		return parse(text)
	}

	var v float64
	if err := sonic.Unmarshal(trimmed, &v); err != nil {
		return 0, crerr.Wrapf(ErrInvalidRate, "decode rate number %s", trimmed)
	}
	return T(v), nil
}

func parseRateText(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if !containsDigit(text) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, crerr.Wrapf(ErrInvalidRate, "parse %q", text)
	}
	return v, nil
}

func containsDigit(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			return true
		}
	}
	return false
}

func isIntegerToken(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	start := 0
	if raw[0] == '-' {
		start = 1
	}
	if start == len(raw) {
		return false
	}
	for _, c := range raw[start:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isSentinel(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func floatEqual(a, b float64) bool {
	if isSentinel(a) || isSentinel(b) {
		return isSentinel(a) && isSentinel(b)
	}
	return a == b
}
