package domain

import (
	"strings"
	"time"
)

// Question is a multiple-choice item of the English test bank.
type Question struct {
	ID              string
	Prompt          string
	CanonicalAnswer string
	Distractors     []string // 1-3 incorrect choices
	Quick3Label     string   // raw label, e.g. "Beginner"
	CEFRLabel       string   // raw label, e.g. "B1" or "Upper-Intermediate"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(prompt, answer string, distractors []string, quick3Label, cefrLabel string) *Question {
	now := time.Now()
	return &Question{
		Prompt:          prompt,
		CanonicalAnswer: answer,
		Distractors:     distractors,
		Quick3Label:     quick3Label,
		CEFRLabel:       cefrLabel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewInvalidInputError("question prompt is required")
	}
	if strings.TrimSpace(q.CanonicalAnswer) == "" {
		return NewInvalidInputError("correct answer is required")
	}
	n := len(q.NonEmptyDistractors())
	if n < 1 || n > 3 {
		return NewInvalidInputError("a question needs between 1 and 3 distractors")
	}
	return nil
}

// Eligible reports whether the question may be served: both prompt and answer present.
func (q *Question) Eligible() bool {
	return q.Prompt != "" && q.CanonicalAnswer != ""
}

// NonEmptyDistractors returns the distractors with blank entries removed.
func (q *Question) NonEmptyDistractors() []string {
	out := make([]string, 0, len(q.Distractors))
	for _, d := range q.Distractors {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Options returns the canonical answer followed by every non-empty distractor.
func (q *Question) Options() []string {
	opts := make([]string, 0, 1+len(q.Distractors))
	if q.CanonicalAnswer != "" {
		opts = append(opts, q.CanonicalAnswer)
	}
	return append(opts, q.NonEmptyDistractors()...)
}

// SampledItem is a question as delivered to the test-taker.
type SampledItem struct {
	ID      string
	Prompt  string
	Options []string
}

// Submission is one answer of the test-taker.
type Submission struct {
	QuestionID string
	Selected   string
}
