package placement

import (
	"context"
	"fmt"
	"strings"

	"english-placement/internal/domain"
)

// Grade compares the submitted answer with the canonical one. Both sides are
// trimmed; the comparison is otherwise exact and case-sensitive. A nil question
// means the submission's id did not resolve.
func Grade(q *domain.Question, sub domain.Submission) (bool, error) {
	if q == nil {
		return false, domain.NewInvalidReferenceError(sub.QuestionID)
	}
	return strings.TrimSpace(sub.Selected) == strings.TrimSpace(q.CanonicalAnswer), nil
}

// Grader resolves submissions against a bank and grades them.
type Grader struct {
	bank domain.QuestionBank
}

// NewGrader creates a Grader reading from bank.
func NewGrader(bank domain.QuestionBank) *Grader {
	return &Grader{bank: bank}
}

// GradeAll grades every submission in order. The first unknown question id
// aborts the whole call.
func (g *Grader) GradeAll(ctx context.Context, subs []domain.Submission) ([]domain.GradedItem, error) {
	if len(subs) == 0 {
		return nil, domain.NewInvalidInputError("No answers submitted")
	}

	items := make([]domain.GradedItem, 0, len(subs))
	for _, sub := range subs {
		q, err := g.bank.GetQuestionByID(ctx, sub.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("get question %s: %w", sub.QuestionID, err)
		}
		correct, err := Grade(q, sub)
		if err != nil {
			return nil, err
		}

		item := domain.GradedItem{
			QuestionID:      q.ID,
			Prompt:          q.Prompt,
			Selected:        sub.Selected,
			CanonicalAnswer: q.CanonicalAnswer,
			Correct:         correct,
		}
		if b, ok := NormalizeQuick3(q.Quick3Label); ok {
			item.Quick3 = &b
		}
		if b, ok := NormalizeCEFR(q.CEFRLabel); ok {
			item.CEFR = &b
		}
		items = append(items, item)
	}
	return items, nil
}
