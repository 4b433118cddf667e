package service

import (
	"context"
	"errors"
	"testing"

	"english-placement/internal/domain"
	"english-placement/internal/dto"
	"english-placement/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlacementService_SampleQuestions(t *testing.T) {
	engine := new(MockPlacementEngine)
	svc := &placementService{engine: engine}
	ctx := context.Background()

	items := []domain.SampledItem{
		{ID: "q1", Prompt: "p1", Options: []string{"a", "b"}},
		{ID: "q2", Prompt: "p2", Options: []string{"c", "d", "e"}},
	}
	engine.On("Sample", ctx, domain.ModeCEFR, 12).Return(items, nil)

	resp, err := svc.SampleQuestions(ctx, &dto.SampleRequest{Mode: "cefr", Total: 30, Limit: 12})

	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, dto.QuestionItem{ID: "q2", Question: "p2", Options: []string{"c", "d", "e"}}, resp.Questions[1])
	engine.AssertExpectations(t)
}

func TestPlacementService_SampleQuestions_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found passes through", func(t *testing.T) {
		engine := new(MockPlacementEngine)
		engine.On("Sample", ctx, domain.ModeQuick, 0).Return(nil, domain.NewNoQuestionsError(domain.ModeQuick))

		_, err := (&placementService{engine: engine}).SampleQuestions(ctx, &dto.SampleRequest{})
		assert.True(t, domain.HasCode(err, domain.ErrNotFound))
	})

	t.Run("infrastructure failure becomes internal", func(t *testing.T) {
		engine := new(MockPlacementEngine)
		dbErr := errors.New("ORA-01017")
		engine.On("Sample", ctx, domain.ModeQuick, 0).Return(nil, dbErr)

		_, err := (&placementService{engine: engine}).SampleQuestions(ctx, &dto.SampleRequest{Mode: "quick"})
		assert.True(t, domain.HasCode(err, domain.ErrInternal))
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("bad mode", func(t *testing.T) {
		engine := new(MockPlacementEngine)
		_, err := (&placementService{engine: engine}).SampleQuestions(ctx, &dto.SampleRequest{Mode: "toeic"})

		var ve domain.ValidationErrors
		assert.ErrorAs(t, err, &ve)
		engine.AssertNotCalled(t, "Sample", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPlacementService_GradeAnswers_MapsResult(t *testing.T) {
	engine := new(MockPlacementEngine)
	svc := &placementService{engine: engine}
	ctx := context.Background()

	b1 := domain.B1
	beginner := domain.Beginner
	quick := domain.NewBandTally(domain.Quick3Bands)
	quick.Record(domain.Beginner, true)
	cefr := domain.NewBandTally(domain.CEFRBands)
	cefr.Record(domain.B1, false)

	result := &domain.PlacementResult{
		ScorePercent: 50,
		CorrectTotal: 1,
		Total:        2,
		Quick3Level:  "Beginner",
		CEFRLevel:    domain.A1,
		Feedback:     "Keep going!",
		Items: []domain.GradedItem{
			{QuestionID: "q1", Prompt: "p1", Selected: "a", CanonicalAnswer: "a", Correct: true, Quick3: &beginner},
			{QuestionID: "q2", Prompt: "p2", Selected: "x", CanonicalAnswer: "y", Correct: false, CEFR: &b1},
		},
		Quick3Tally: quick,
		CEFRTally:   cefr,
	}
	engine.On("Place", ctx, []domain.Submission{
		{QuestionID: "q1", Selected: "a"},
		{QuestionID: "q2", Selected: "x"},
	}).Return(result, nil)

	resp, err := svc.GradeAnswers(ctx, &dto.GradeRequest{Answers: []dto.AnswerItem{
		{QuestionID: "q1", Selected: "a"},
		{QID: "q2", Selected: "x"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 50.0, resp.Score)
	assert.Equal(t, 1, resp.Correct)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, dto.EstimatedLevel{Quick3: "Beginner", CEFR6: "A1"}, resp.EstimatedLevel)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "Beginner", *resp.Details[0].Quick3)
	assert.Nil(t, resp.Details[0].Level6)
	assert.Nil(t, resp.Details[1].Quick3)
	assert.Equal(t, "B1", *resp.Details[1].Level6)
	assert.Equal(t, "y", resp.Details[1].Correct)
	assert.False(t, resp.Details[1].IsCorrect)

	assert.Equal(t, map[string]int{"Beginner": 1, "Intermediate": 0, "Advanced": 0}, resp.Meta.QuickSeen)
	assert.Equal(t, 1, resp.Meta.QuickCorrect["Beginner"])
	assert.Equal(t, 1, resp.Meta.CEFRSeen["B1"])
	assert.Equal(t, 0, resp.Meta.CEFRCorrect["B1"])
	assert.Len(t, resp.Meta.CEFRSeen, 5)
	engine.AssertExpectations(t)
}

func TestPlacementService_GradeAnswers_Errors(t *testing.T) {
	svc := NewPlacementService(repository.NewMemoryQuestionBank(
		&domain.Question{ID: "q1", Prompt: "p", CanonicalAnswer: "a", Distractors: []string{"b"}, Quick3Label: "Beginner"},
	))
	ctx := context.Background()

	_, err := svc.GradeAnswers(ctx, &dto.GradeRequest{})
	assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))

	_, err = svc.GradeAnswers(ctx, &dto.GradeRequest{Answers: []dto.AnswerItem{{QuestionID: "nope", Selected: "a"}}})
	assert.True(t, domain.HasCode(err, domain.ErrInvalidReference))

	_, err = svc.GradeAnswers(ctx, &dto.GradeRequest{Answers: []dto.AnswerItem{
		{QuestionID: "q1", Selected: "a"},
		{Selected: "b"},
	}})
	assert.True(t, domain.HasCode(err, domain.ErrInvalidReference))

	resp, err := svc.GradeAnswers(ctx, &dto.GradeRequest{Answers: []dto.AnswerItem{{QuestionID: "q1", Selected: " a "}}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Score)
}

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("all up", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		c := new(MockCache)
		repo.On("CountQuestions", mock.Anything).Return(240, nil)
		c.On("Ping", mock.Anything).Return(nil)

		resp := NewHealthService(repo, c).Check(ctx)
		assert.Equal(t, &dto.HealthResponse{Status: StatusOK, Bank: StateUp, Questions: 240, Cache: StateUp}, resp)
	})

	t.Run("cache disabled", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		repo.On("CountQuestions", mock.Anything).Return(3, nil)

		resp := NewHealthService(repo, nil).Check(ctx)
		assert.Equal(t, StateDisabled, resp.Cache)
		assert.Equal(t, StatusOK, resp.Status)
	})

	t.Run("cache down keeps service ok", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		c := new(MockCache)
		repo.On("CountQuestions", mock.Anything).Return(3, nil)
		c.On("Ping", mock.Anything).Return(errors.New("dial tcp: connection refused"))

		resp := NewHealthService(repo, c).Check(ctx)
		assert.Equal(t, StateDown, resp.Cache)
		assert.Equal(t, StatusOK, resp.Status)
	})

	t.Run("bank down degrades", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		repo.On("CountQuestions", mock.Anything).Return(0, errors.New("ORA-12541"))

		resp := NewHealthService(repo, nil).Check(ctx)
		assert.Equal(t, StatusDegraded, resp.Status)
		assert.Equal(t, StateDown, resp.Bank)
	})
}
