package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"english-placement/internal/cache"
	"english-placement/internal/domain"
	"english-placement/internal/logger"
	"english-placement/internal/metrics"

	"go.uber.org/zap"
)

// DefaultQuestionTTL applies when no TTL is configured.
const DefaultQuestionTTL = time.Hour

// cachedQuestion is the JSON form of a question stored in the cache
type cachedQuestion struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"question"`
	Answer      string   `json:"correct"`
	Distractors []string `json:"distractors"`
	Quick3      string   `json:"quick3,omitempty"`
	Level6      string   `json:"level6,omitempty"`
}

func toCachedQuestion(q *domain.Question) cachedQuestion {
	return cachedQuestion{
		ID:          q.ID,
		Prompt:      q.Prompt,
		Answer:      q.CanonicalAnswer,
		Distractors: q.Distractors,
		Quick3:      q.Quick3Label,
		Level6:      q.CEFRLabel,
	}
}

func (c cachedQuestion) toDomain() *domain.Question {
	return &domain.Question{
		ID:              c.ID,
		Prompt:          c.Prompt,
		CanonicalAnswer: c.Answer,
		Distractors:     c.Distractors,
		Quick3Label:     c.Quick3,
		CEFRLabel:       c.Level6,
	}
}

// CachedQuestionBank is a read-through cache in front of a question bank.
// Lookups by id are served from the cache when possible; sampling always hits
// the bank. Cache failures are logged and never fail a call.
type CachedQuestionBank struct {
	bank  domain.QuestionBank
	cache domain.Cache
	ttl   time.Duration
}

// NewCachedQuestionBank wraps bank with cache. A non-positive ttl means DefaultQuestionTTL.
func NewCachedQuestionBank(bank domain.QuestionBank, c domain.Cache, ttl time.Duration) *CachedQuestionBank {
	if ttl <= 0 {
		ttl = DefaultQuestionTTL
	}
	return &CachedQuestionBank{bank: bank, cache: c, ttl: ttl}
}

// GetQuestionByID implements domain.QuestionBank
func (b *CachedQuestionBank) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	key := cache.QuestionKey(id)

	raw, err := b.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cq cachedQuestion
		if jsonErr := json.Unmarshal([]byte(raw), &cq); jsonErr == nil {
			metrics.QuestionCacheLookups.WithLabelValues("hit").Inc()
			return cq.toDomain(), nil
		}
		logger.Get().Warn("Discarding undecodable cached question", zap.String("key", key))
		metrics.QuestionCacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.QuestionCacheLookups.WithLabelValues("miss").Inc()
	default:
		logger.Get().Warn("Question cache lookup failed", zap.String("key", key), zap.Error(err))
		metrics.QuestionCacheLookups.WithLabelValues("error").Inc()
	}

	q, err := b.bank.GetQuestionByID(ctx, id)
	if err != nil || q == nil {
		return q, err
	}

	data, err := json.Marshal(toCachedQuestion(q))
	if err == nil {
		err = b.cache.Set(ctx, key, string(data), b.ttl)
	}
	if err != nil {
		logger.Get().Warn("Failed to cache question", zap.String("key", key), zap.Error(err))
	}
	return q, nil
}

// SampleQuestions implements domain.QuestionBank
func (b *CachedQuestionBank) SampleQuestions(ctx context.Context, filter domain.BandFilter, n int) ([]*domain.Question, error) {
	return b.bank.SampleQuestions(ctx, filter, n)
}

// Invalidate drops the cached copies of the given questions.
func (b *CachedQuestionBank) Invalidate(ctx context.Context, ids ...string) error {
	return InvalidateQuestions(ctx, b.cache, ids...)
}

// InvalidateQuestions drops the cached copies of the given questions from c.
// A nil cache is a no-op.
func InvalidateQuestions(ctx context.Context, c domain.Cache, ids ...string) error {
	if c == nil || len(ids) == 0 {
		return nil
	}
	return c.Delete(ctx, cache.QuestionKeys(ids...)...)
}
