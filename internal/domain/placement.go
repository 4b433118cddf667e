package domain

// Quick3LowConfidence is the quick3 placement when not even the Beginner floor is met.
const Quick3LowConfidence = "Beginner (low confidence)"

// GradedItem is the outcome of grading a single submission.
type GradedItem struct {
	QuestionID      string
	Prompt          string
	Selected        string
	CanonicalAnswer string
	Correct         bool
	Quick3          *Quick3Band // nil when the label is not recognized
	CEFR            *CEFRBand   // nil when the label is not recognized
}

// BandCount holds the seen and correct counters of a band.
type BandCount struct {
	Seen    int `json:"seen"`
	Correct int `json:"correct"`
}

// BandTally maps a band to its counters. Counters only ever grow.
type BandTally[B comparable] map[B]BandCount

// NewBandTally returns a tally with a zero entry for every band.
func NewBandTally[B comparable](bands []B) BandTally[B] {
	t := make(BandTally[B], len(bands))
	for _, b := range bands {
		t[b] = BandCount{}
	}
	return t
}

// Record counts one graded item for band b.
func (t BandTally[B]) Record(b B, correct bool) {
	c := t[b]
	c.Seen++
	if correct {
		c.Correct++
	}
	t[b] = c
}

// Seen returns how many items of band b were graded.
func (t BandTally[B]) Seen(b B) int { return t[b].Seen }

// Correct returns how many items of band b were answered correctly.
func (t BandTally[B]) Correct(b B) int { return t[b].Correct }

// PlacementResult is the full outcome of one grading call.
type PlacementResult struct {
	ScorePercent float64
	CorrectTotal int
	Total        int
	Quick3Level  string
	CEFRLevel    CEFRBand
	Feedback     string
	Items        []GradedItem
	Quick3Tally  BandTally[Quick3Band]
	CEFRTally    BandTally[CEFRBand]
}
