package domain

import "context"

// QuestionBank is the read-only view of the question store used by the placement engine.
type QuestionBank interface {
	// GetQuestionByID returns the question or nil when no question has that id.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// SampleQuestions returns up to n eligible questions matching filter, drawn
	// uniformly at random without replacement.
	SampleQuestions(ctx context.Context, filter BandFilter, n int) ([]*Question, error)
}

// QuestionRepository is the full store, used by ingestion and health checks.
type QuestionRepository interface {
	QuestionBank

	// UpsertQuestion inserts the question or updates the one with the same prompt.
	// It reports whether a new row was created and fills in q.ID.
	UpsertQuestion(ctx context.Context, q *Question) (created bool, err error)

	// CountQuestions returns the number of stored questions.
	CountQuestions(ctx context.Context) (int, error)
}
