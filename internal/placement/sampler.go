package placement

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"

	"english-placement/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Sampler draws a stratified, quota-based sample of questions from a bank.
type Sampler struct {
	bank    domain.QuestionBank
	newRand func() *rand.Rand
}

// NewSampler creates a Sampler reading from bank.
func NewSampler(bank domain.QuestionBank) *Sampler {
	return &Sampler{bank: bank, newRand: newRequestRand}
}

// newRequestRand returns a generator owned by a single request.
func newRequestRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// Sample queries every band of mode for up to Quota(mode, total) items, shuffles
// each item's options and then the whole set. It fails with a NOT_FOUND
// DomainError when no band yields anything.
func (s *Sampler) Sample(ctx context.Context, mode domain.Mode, total int) ([]domain.SampledItem, error) {
	queries := bandQueries(mode)
	quota := Quota(mode, total)

	parts := make([][]*domain.Question, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, bq := range queries {
		g.Go(func() error {
			qs, err := s.bank.SampleQuestions(gctx, bq.filter, quota)
			if err != nil {
				return fmt.Errorf("sample band %s: %w", bq.band, err)
			}
			if len(qs) > quota {
				qs = qs[:quota]
			}
			parts[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rng := s.newRand()
	items := make([]domain.SampledItem, 0, quota*len(queries))
	for _, part := range parts {
		for _, q := range part {
			if q == nil || !q.Eligible() {
				continue
			}
			opts := q.Options()
			rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
			items = append(items, domain.SampledItem{ID: q.ID, Prompt: q.Prompt, Options: opts})
		}
	}
	if len(items) == 0 {
		return nil, domain.NewNoQuestionsError(mode)
	}

	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return items, nil
}
