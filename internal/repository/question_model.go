package repository

import (
	"english-placement/internal/domain"
	"english-placement/internal/repository/models"
	"english-placement/internal/util"
)

// toDomainQuestion converts a table row to a domain question.
func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	distractors := make([]string, 0, 3)
	for _, d := range []string{m.Distractor1.String, m.Distractor2.String, m.Distractor3.String} {
		if d != "" {
			distractors = append(distractors, d)
		}
	}
	return &domain.Question{
		ID:              m.ID,
		Prompt:          m.Question,
		CanonicalAnswer: m.Correct,
		Distractors:     distractors,
		Quick3Label:     m.Quick3.String,
		CEFRLabel:       m.Level6.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// toModelQuestion converts a domain question to a table row. Distractors past the third are dropped.
func toModelQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	var d [3]string
	copy(d[:], q.NonEmptyDistractors())
	return &models.Question{
		ID:          q.ID,
		Question:    q.Prompt,
		Correct:     q.CanonicalAnswer,
		Distractor1: util.StringToNullString(d[0]),
		Distractor2: util.StringToNullString(d[1]),
		Distractor3: util.StringToNullString(d[2]),
		Quick3:      util.StringToNullString(q.Quick3Label),
		Level6:      util.StringToNullString(q.CEFRLabel),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// cloneQuestion returns a copy that does not share the distractor slice.
func cloneQuestion(q *domain.Question) *domain.Question {
	if q == nil {
		return nil
	}
	c := *q
	c.Distractors = append([]string(nil), q.Distractors...)
	return &c
}
