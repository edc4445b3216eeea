package reid

import (
	"fmt"
	"strings"
)

type APMethod int

const (
	// APMethodStep averages the precision at every true-positive rank.
	APMethodStep APMethod = iota
	// APMethodTrapezoid integrates the precision-recall curve with the trapezoid
	// rule over distinct score thresholds, matching scikit-learn <= 0.18.1 and
	// the Market-1501 MATLAB evaluation.
	APMethodTrapezoid
)

const (
	DefaultMethod  = APMethodStep
	DefaultWorkers = 1
)

func (m APMethod) String() string {
	switch m {
	case APMethodStep:
		return "step"
	case APMethodTrapezoid:
		return "trapezoid"
	default:
		return fmt.Sprintf("APMethod(%d)", int(m))
	}
}

// ParseAPMethod maps a config value to an APMethod. Matching is case-insensitive.
func ParseAPMethod(s string) (APMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "step":
		return APMethodStep, nil
	case "trapezoid", "legacy":
		return APMethodTrapezoid, nil
	}
	return 0, fmt.Errorf("parse %q: %w", s, ErrUnknownAPMethod)
}
