package service

import (
	"context"
	"errors"

	"english-placement/internal/domain"
	"english-placement/internal/dto"
	"english-placement/internal/logger"
	"english-placement/internal/metrics"
	"english-placement/internal/placement"

	"go.uber.org/zap"
)

// PlacementService defines the operations behind the English test endpoints
type PlacementService interface {
	SampleQuestions(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error)
	GradeAnswers(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error)
}

// placementEngine is the part of placement.Engine the service depends on
type placementEngine interface {
	Sample(ctx context.Context, mode domain.Mode, total int) ([]domain.SampledItem, error)
	Place(ctx context.Context, subs []domain.Submission) (*domain.PlacementResult, error)
}

// placementService implements PlacementService
type placementService struct {
	engine placementEngine
}

// NewPlacementService creates a service drawing questions from bank
func NewPlacementService(bank domain.QuestionBank) PlacementService {
	return &placementService{engine: placement.NewEngine(bank)}
}

// SampleQuestions implements PlacementService
func (s *placementService) SampleQuestions(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("mode", req.Mode)}
	}
	total := req.Total
	if req.Limit > 0 {
		total = req.Limit
	}

	items, err := s.engine.Sample(ctx, mode, total)
	if err != nil {
		logger.Get().Warn("Failed to sample questions",
			zap.String("mode", string(mode)),
			zap.Int("total", total),
			zap.Error(err),
		)
		return nil, asDomainError(err, "Failed to sample questions")
	}
	metrics.SampledItems.WithLabelValues(string(mode)).Observe(float64(len(items)))

	resp := &dto.SampleResponse{Questions: make([]dto.QuestionItem, 0, len(items))}
	for _, it := range items {
		resp.Questions = append(resp.Questions, dto.QuestionItem{
			ID:       it.ID,
			Question: it.Prompt,
			Options:  it.Options,
		})
	}
	return resp, nil
}

// GradeAnswers implements PlacementService
func (s *placementService) GradeAnswers(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	subs := make([]domain.Submission, 0, len(req.Answers))
	for _, a := range req.Answers {
		subs = append(subs, domain.Submission{QuestionID: a.ID(), Selected: a.Selected})
	}

	res, err := s.engine.Place(ctx, subs)
	if err != nil {
		logger.Get().Warn("Failed to grade answers",
			zap.Int("answers", len(subs)),
			zap.Error(err),
		)
		return nil, asDomainError(err, "Failed to grade answers")
	}

	metrics.Placements.WithLabelValues(string(domain.SchemeQuick3), res.Quick3Level).Inc()
	metrics.Placements.WithLabelValues(string(domain.SchemeCEFR6), string(res.CEFRLevel)).Inc()
	logger.Get().Info("Graded placement test",
		zap.Int("total", res.Total),
		zap.Int("correct", res.CorrectTotal),
		zap.String("quick3", res.Quick3Level),
		zap.String("cefr6", string(res.CEFRLevel)),
	)

	return toGradeResponse(res), nil
}

// asDomainError passes domain and validation errors through and wraps
// everything else as an internal error.
func asDomainError(err error, message string) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return domain.NewInternalError(message, err)
}

func toGradeResponse(res *domain.PlacementResult) *dto.GradeResponse {
	details := make([]dto.GradedDetail, 0, len(res.Items))
	for _, it := range res.Items {
		d := dto.GradedDetail{
			ID:        it.QuestionID,
			Question:  it.Prompt,
			Selected:  it.Selected,
			Correct:   it.CanonicalAnswer,
			IsCorrect: it.Correct,
		}
		if it.Quick3 != nil {
			v := string(*it.Quick3)
			d.Quick3 = &v
		}
		if it.CEFR != nil {
			v := string(*it.CEFR)
			d.Level6 = &v
		}
		details = append(details, d)
	}

	return &dto.GradeResponse{
		Score:   res.ScorePercent,
		Correct: res.CorrectTotal,
		Total:   res.Total,
		EstimatedLevel: dto.EstimatedLevel{
			Quick3: res.Quick3Level,
			CEFR6:  string(res.CEFRLevel),
		},
		Feedback: res.Feedback,
		Details:  details,
		Meta: dto.GradeMeta{
			QuickSeen:    tallyCounts(res.Quick3Tally, domain.Quick3Bands, bandSeen),
			QuickCorrect: tallyCounts(res.Quick3Tally, domain.Quick3Bands, bandCorrect),
			CEFRSeen:     tallyCounts(res.CEFRTally, domain.CEFRBands, bandSeen),
			CEFRCorrect:  tallyCounts(res.CEFRTally, domain.CEFRBands, bandCorrect),
		},
	}
}

func bandSeen(c domain.BandCount) int    { return c.Seen }
func bandCorrect(c domain.BandCount) int { return c.Correct }

func tallyCounts[B ~string](t domain.BandTally[B], bands []B, pick func(domain.BandCount) int) map[string]int {
	out := make(map[string]int, len(bands))
	for _, b := range bands {
		out[string(b)] = pick(t[b])
	}
	return out
}
