package placement

import (
	"math"

	"english-placement/internal/domain"
)

// Fraction is an exact ratio used to scale band thresholds.
type Fraction struct {
	Num, Den int
}

var (
	// Floor is the share of a band that must be correct for it not to block a higher placement.
	Floor = Fraction{Num: 2, Den: 3}
	// Cut is the share required in B2 and C1 to be placed there.
	Cut = Fraction{Num: 5, Den: 6}
)

// Unsatisfiable is the threshold of a band that saw no items.
const Unsatisfiable = math.MaxInt

// defaultQuickBucket stands in for the size of a quick3 bucket that saw nothing.
const defaultQuickBucket = 4

// Threshold returns max(1, ceil(f*n)), or Unsatisfiable when n is zero.
func Threshold(n int, f Fraction) int {
	if n <= 0 {
		return Unsatisfiable
	}
	return max(1, (f.Num*n+f.Den-1)/f.Den)
}

// PlaceQuick3 maps quick3 tallies to a level.
func PlaceQuick3(t domain.BandTally[domain.Quick3Band]) string {
	floor := func(b domain.Quick3Band) bool {
		n := t.Seen(b)
		if n == 0 {
			n = defaultQuickBucket
		}
		return t.Correct(b) >= Threshold(n, Floor)
	}

	switch {
	case floor(domain.Advanced) && floor(domain.Intermediate):
		return string(domain.Advanced)
	case floor(domain.Intermediate) && floor(domain.Beginner):
		return string(domain.Intermediate)
	case floor(domain.Beginner):
		return string(domain.Beginner)
	default:
		return domain.Quick3LowConfidence
	}
}

// cutFraction is the fraction a band must reach for placement at that band.
func cutFraction(b domain.CEFRBand) Fraction {
	if b == domain.B2 || b == domain.C1 {
		return Cut
	}
	return Floor
}

// PlaceCEFR returns the highest CEFR band whose own cut and every lower floor are met,
// falling back to A1.
func PlaceCEFR(t domain.BandTally[domain.CEFRBand]) domain.CEFRBand {
	for i := len(domain.CEFRBands) - 1; i >= 0; i-- {
		if qualifiesCEFR(t, i) {
			return domain.CEFRBands[i]
		}
	}
	return domain.A1
}

func qualifiesCEFR(t domain.BandTally[domain.CEFRBand], idx int) bool {
	level := domain.CEFRBands[idx]
	if t.Correct(level) < Threshold(t.Seen(level), cutFraction(level)) {
		return false
	}
	for _, lower := range domain.CEFRBands[:idx] {
		if t.Correct(lower) < Threshold(t.Seen(lower), Floor) {
			return false
		}
	}
	if level == domain.C1 && t.Correct(domain.B2) < Threshold(t.Seen(domain.B2), Cut) {
		return false
	}
	return true
}
