package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"english-placement/internal/domain"
	"english-placement/internal/util"
)

// MemoryQuestionBank is an in-process implementation of domain.QuestionRepository.
// It backs tests and the "memory" bank driver, where the bank is loaded from a
// workbook at startup.
type MemoryQuestionBank struct {
	mu        sync.RWMutex
	questions []*domain.Question
	byID      map[string]*domain.Question
	byPrompt  map[string]*domain.Question
}

// NewMemoryQuestionBank creates a bank holding qs. Questions without an id get a ULID.
func NewMemoryQuestionBank(qs ...*domain.Question) *MemoryQuestionBank {
	b := &MemoryQuestionBank{
		byID:     make(map[string]*domain.Question, len(qs)),
		byPrompt: make(map[string]*domain.Question, len(qs)),
	}
	for _, q := range qs {
		c := cloneQuestion(q)
		if c.ID == "" {
			c.ID = util.NewULID()
		}
		b.add(c)
	}
	return b
}

func (b *MemoryQuestionBank) add(q *domain.Question) {
	b.questions = append(b.questions, q)
	b.byID[q.ID] = q
	b.byPrompt[q.Prompt] = q
}

// replace swaps a stored question for q. Stored questions are never mutated.
func (b *MemoryQuestionBank) replace(old, q *domain.Question) {
	for i, cur := range b.questions {
		if cur == old {
			b.questions[i] = q
			break
		}
	}
	b.byID[q.ID] = q
	b.byPrompt[q.Prompt] = q
}

// GetQuestionByID implements domain.QuestionBank
func (b *MemoryQuestionBank) GetQuestionByID(_ context.Context, id string) (*domain.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneQuestion(b.byID[id]), nil
}

// SampleQuestions implements domain.QuestionBank with a partial Fisher-Yates
// shuffle over the matching questions.
func (b *MemoryQuestionBank) SampleQuestions(ctx context.Context, filter domain.BandFilter, n int) ([]*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	matching := make([]*domain.Question, 0)
	for _, q := range b.questions {
		if q.Eligible() && filter.Matches(q) {
			matching = append(matching, cloneQuestion(q))
		}
	}
	b.mu.RUnlock()

	if n > len(matching) {
		n = len(matching)
	}
	if n <= 0 {
		return []*domain.Question{}, nil
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(matching)-i)
		matching[i], matching[j] = matching[j], matching[i]
	}

	return matching[:n], nil
}

// UpsertQuestion implements domain.QuestionRepository
func (b *MemoryQuestionBank) UpsertQuestion(_ context.Context, q *domain.Question) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if existing, ok := b.byPrompt[q.Prompt]; ok {
		c := cloneQuestion(q)
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = now
		b.replace(existing, c)

		q.ID = existing.ID
		q.CreatedAt = existing.CreatedAt
		q.UpdatedAt = now
		return false, nil
	}

	c := cloneQuestion(q)
	c.ID = util.NewULID()
	c.CreatedAt = now
	c.UpdatedAt = now
	b.add(c)

	q.ID = c.ID
	q.CreatedAt = now
	q.UpdatedAt = now
	return true, nil
}

// CountQuestions implements domain.QuestionRepository
func (b *MemoryQuestionBank) CountQuestions(_ context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions), nil
}
