package autoscroll

import (
	"fmt"
	"strconv"
	"strings"
)

// Speed is a scroll speed multiplier. One unit is one pixel per tick.
type Speed float64

// The fixed speed cycle, in CycleSpeed order.
const (
	SpeedSlow    Speed = 0.5
	SpeedNormal  Speed = 1
	SpeedFast    Speed = 1.5
	SpeedFastest Speed = 2
)

var speedCycle = []Speed{SpeedSlow, SpeedNormal, SpeedFast, SpeedFastest}

// Speeds returns the speed cycle.
func Speeds() []Speed {
	return append([]Speed(nil), speedCycle...)
}

// Valid reports whether s is part of the speed cycle.
func (s Speed) Valid() bool {
	return s.index() >= 0
}

func (s Speed) index() int {
	for i, v := range speedCycle {
		if v == s {
			return i
		}
	}
	return -1
}

// Next returns the following speed in the cycle, wrapping after the fastest.
// An unknown speed restarts the cycle at its first entry.
func (s Speed) Next() Speed {
	return speedCycle[(s.index()+1)%len(speedCycle)]
}

// PixelsPerTick is the nominal distance advanced per tick.
func (s Speed) PixelsPerTick() float64 {
	return float64(s)
}

// Label is the short display form, e.g. "1.5x".
func (s Speed) Label() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "x"
}

func (s Speed) String() string {
	return s.Label()
}

// Indicator names the speed tier shown next to a panel.
type Indicator string

const (
	IndicatorSlow    Indicator = "slow"
	IndicatorNormal  Indicator = "normal"
	IndicatorFast    Indicator = "fast"
	IndicatorFastest Indicator = "fastest"
)

// Indicator maps the speed to its display tier.
func (s Speed) Indicator() Indicator {
	switch {
	case s <= SpeedSlow:
		return IndicatorSlow
	case s == SpeedNormal:
		return IndicatorNormal
	case s == SpeedFast:
		return IndicatorFast
	default:
		return IndicatorFastest
	}
}

// Icon is the glyph for the speed tier.
func (s Speed) Icon() string {
	switch s.Indicator() {
	case IndicatorSlow:
		return "🐌"
	case IndicatorNormal:
		return "⚡"
	case IndicatorFast:
		return "⚡⚡"
	default:
		return "🚀"
	}
}

// ParseSpeed accepts a label ("1.5x") or a bare multiplier ("1.5").
func ParseSpeed(s string) (Speed, error) {
	raw := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "x")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid speed %q: %w", s, err)
	}
	sp := Speed(v)
	if !sp.Valid() {
		return 0, fmt.Errorf("invalid speed %q: must be one of 0.5x, 1x, 1.5x, 2x", s)
	}
	return sp, nil
}
