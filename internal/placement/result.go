package placement

import (
	"math"

	"english-placement/internal/domain"
)

const (
	feedbackExcellent = "Excellent work! Your answers suggest strong command of the material."
	feedbackGood      = "Good job. Review the questions you missed and practice similar items."
	feedbackKeepGoing = "Keep going! Focus on the topics you missed and try again."
)

// Aggregate tallies graded items per scheme. Items whose label did not resolve
// for a scheme are left out of that scheme only.
func Aggregate(items []domain.GradedItem) (domain.BandTally[domain.Quick3Band], domain.BandTally[domain.CEFRBand]) {
	quick := domain.NewBandTally(domain.Quick3Bands)
	cefr := domain.NewBandTally(domain.CEFRBands)
	for _, it := range items {
		if it.Quick3 != nil {
			quick.Record(*it.Quick3, it.Correct)
		}
		if it.CEFR != nil {
			cefr.Record(*it.CEFR, it.Correct)
		}
	}
	return quick, cefr
}

// ScorePercent returns 100*correct/total rounded to one decimal.
func ScorePercent(correct, total int) float64 {
	return math.Round(1000*float64(correct)/float64(max(1, total))) / 10
}

// Feedback picks the message tier for a percent score.
func Feedback(score float64) string {
	switch {
	case score >= 85:
		return feedbackExcellent
	case score >= 60:
		return feedbackGood
	default:
		return feedbackKeepGoing
	}
}

// BuildResult assembles the placement report for a set of graded items.
func BuildResult(items []domain.GradedItem) *domain.PlacementResult {
	correct := 0
	for _, it := range items {
		if it.Correct {
			correct++
		}
	}
	quick, cefr := Aggregate(items)
	score := ScorePercent(correct, len(items))

	return &domain.PlacementResult{
		ScorePercent: score,
		CorrectTotal: correct,
		Total:        len(items),
		Quick3Level:  PlaceQuick3(quick),
		CEFRLevel:    PlaceCEFR(cefr),
		Feedback:     Feedback(score),
		Items:        items,
		Quick3Tally:  quick,
		CEFRTally:    cefr,
	}
}
