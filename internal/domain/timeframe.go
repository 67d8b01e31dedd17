package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Timeframe selects which aggregate window a KPI card reads.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"

	DefaultTimeframe = TimeframeMonth
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Timeframes lists the selectable windows in display order.
var Timeframes = []Timeframe{TimeframeWeek, TimeframeMonth, TimeframeYear}

func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case TimeframeWeek, TimeframeMonth, TimeframeYear:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, s)
	}
}

// Label is the text shown in the timeframe selector.
func (tf Timeframe) Label() string {
	switch tf {
	case TimeframeWeek:
		return "Last week"
	case TimeframeYear:
		return "Last year"
	default:
		return "Last month"
	}
}
