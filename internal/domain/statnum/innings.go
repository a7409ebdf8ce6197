package statnum

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

var (
	ErrMissingSeparator = crerr.New("innings pitched: missing '.' separator")
	ErrInvalidWhole     = crerr.New("innings pitched: whole innings is not an integer")
	ErrInvalidThirds    = crerr.New("innings pitched: thirds is not an integer")
	ErrThirdsOutOfRange = crerr.New("innings pitched: thirds must be 0, 1 or 2")
)

// InningsPitched is stored as outs so that 6.2 + 0.1 is 7.0, not 6.3. Outs
// are 64-bit so every uint32 whole count converts without wrapping.
type InningsPitched struct {
	outs uint64
}

func NewInnings(whole uint32, thirds uint8) (InningsPitched, error) {
	if thirds >= 3 {
		return InningsPitched{}, crerr.Wrapf(ErrThirdsOutOfRange, "thirds=%d", thirds)
	}
	return InningsPitched{outs: uint64(whole)*3 + uint64(thirds)}, nil
}

func InningsFromOuts(outs uint64) InningsPitched {
	return InningsPitched{outs: outs}
}

// InningsFromFloat converts 6.667 (six and two thirds) to innings. Lossy; use
// only when a formula hands back a fractional count.
func InningsFromFloat(v float64) InningsPitched {
	if math.IsNaN(v) || v <= 0 {
		return InningsPitched{}
	}
	outs := math.Round(v * 3)
	if outs >= math.MaxUint64 {
		return InningsPitched{outs: math.MaxUint64}
	}
	return InningsPitched{outs: uint64(outs)}
}

func (ip InningsPitched) Outs() uint64  { return ip.outs }
func (ip InningsPitched) Whole() uint64 { return ip.outs / 3 }
func (ip InningsPitched) Thirds() uint8 { return uint8(ip.outs % 3) }

func (ip InningsPitched) Add(o InningsPitched) InningsPitched {
	return InningsPitched{outs: ip.outs + o.outs}
}

// Float returns whole + thirds/3 for rate formulas such as ERA.
func (ip InningsPitched) Float() float64 {
	return float64(ip.outs) / 3
}

func (ip InningsPitched) String() string {
	return strconv.FormatUint(ip.Whole(), 10) + "." + strconv.Itoa(int(ip.Thirds()))
}

func ParseInnings(text string) (InningsPitched, error) {
	text = strings.TrimSpace(text)
	idx := strings.IndexByte(text, '.')
	if idx < 0 {
		return InningsPitched{}, crerr.Wrapf(ErrMissingSeparator, "parse %q", text)
	}

	whole, err := strconv.ParseUint(text[:idx], 10, 32)
	if err != nil {
		return InningsPitched{}, crerr.Wrapf(ErrInvalidWhole, "parse %q", text)
	}
	thirds, err := strconv.ParseUint(text[idx+1:], 10, 8)
	if err != nil {
		return InningsPitched{}, crerr.Wrapf(ErrInvalidThirds, "parse %q", text)
	}
	if thirds >= 3 {
		return InningsPitched{}, crerr.Wrapf(ErrThirdsOutOfRange, "parse %q", text)
	}

	return InningsPitched{outs: whole*3 + thirds}, nil
}

func (ip *InningsPitched) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*ip = InningsPitched{}
		return nil
	}

	var text string
	if trimmed[0] == '"' {
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
	} else {
		var v float64
		if err := sonic.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		// Shortest form, so 6.19 stays "6.19" and fails instead of rounding to 6.2.
		text = strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
	}

	parsed, err := ParseInnings(text)
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}

func (ip InningsPitched) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(ip.String())
}
