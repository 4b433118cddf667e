// Package placement implements the English placement engine: stratified sampling
// from a question bank, grading, per-scheme tallying and threshold-based level
// classification. Every call is stateless; the bank is the only collaborator.
package placement

import (
	"context"

	"english-placement/internal/domain"
)

// Engine ties the sampler and the grading pipeline to one bank.
type Engine struct {
	sampler *Sampler
	grader  *Grader
}

// NewEngine creates an Engine reading from bank.
func NewEngine(bank domain.QuestionBank) *Engine {
	return &Engine{
		sampler: NewSampler(bank),
		grader:  NewGrader(bank),
	}
}

// Sample draws the question set for a test in mode.
func (e *Engine) Sample(ctx context.Context, mode domain.Mode, total int) ([]domain.SampledItem, error) {
	return e.sampler.Sample(ctx, mode, total)
}

// Place grades the submissions and classifies the test-taker in both schemes.
func (e *Engine) Place(ctx context.Context, subs []domain.Submission) (*domain.PlacementResult, error) {
	items, err := e.grader.GradeAll(ctx, subs)
	if err != nil {
		return nil, err
	}
	return BuildResult(items), nil
}
