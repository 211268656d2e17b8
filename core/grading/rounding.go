package grading

import (
	"fmt"
	"math"
)

// RoundingMode selects the tie-breaking rule applied to the weighted mark.
type RoundingMode string

const (
	// RoundHalfEven rounds .5 to the nearest even integer (50.5 -> 50, 51.5 -> 52).
	RoundHalfEven RoundingMode = "half_even"
	// RoundHalfAway rounds .5 away from zero (50.5 -> 51).
	RoundHalfAway RoundingMode = "half_away"
)

// ParseRoundingMode validates a configured rounding mode name.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case RoundHalfEven, RoundHalfAway:
		return RoundingMode(s), nil
	case "":
		return RoundHalfEven, nil
	}
	return "", fmt.Errorf("unknown rounding mode %q", s)
}

func (m RoundingMode) round(v float64) float64 {
	if m == RoundHalfAway {
		return math.Round(v)
	}
	return math.RoundToEven(v)
}

// OverallMark weights the exam and coursework marks by the coursework weight
// (0-100) and rounds the result. Each product is rounded to float64 before
// the sum so the result does not depend on fused multiply-add.
func OverallMark(exam, coursework int, weight float64, mode RoundingMode) int {
	w := weight / 100
	v := float64(float64(exam)*(1-w)) + float64(float64(coursework)*w)
	return int(mode.round(v))
}
