package service

import (
	"context"
	"time"

	"english-placement/internal/domain"
	"english-placement/internal/dto"
	"english-placement/internal/logger"

	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Health states
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StateUp        = "up"
	StateDown      = "down"
	StateDisabled  = "disabled"
)

// QuestionCounter reports the size of the question bank
type QuestionCounter interface {
	CountQuestions(ctx context.Context) (int, error)
}

// HealthService checks the service dependencies
type HealthService interface {
	Check(ctx context.Context) *dto.HealthResponse
}

type healthService struct {
	bank  QuestionCounter
	cache domain.Cache
}

// NewHealthService creates a HealthService. cache may be nil when caching is disabled.
func NewHealthService(bank QuestionCounter, cache domain.Cache) HealthService {
	return &healthService{bank: bank, cache: cache}
}

// Check implements HealthService. A down bank degrades the service; a down
// cache only changes the reported cache state.
func (s *healthService) Check(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := &dto.HealthResponse{Status: StatusOK, Bank: StateUp, Cache: StateDisabled}

	n, err := s.bank.CountQuestions(ctx)
	if err != nil {
		logger.Get().Error("Health check: question bank unavailable", zap.Error(err))
		resp.Status = StatusDegraded
		resp.Bank = StateDown
	} else {
		resp.Questions = n
	}

	if s.cache != nil {
		resp.Cache = StateUp
		if err := s.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Health check: cache unavailable", zap.Error(err))
			resp.Cache = StateDown
		}
	}
	return resp
}
