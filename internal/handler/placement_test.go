package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"english-placement/internal/domain"
	"english-placement/internal/dto"
	"english-placement/internal/handler"
	"english-placement/internal/middleware"
	"english-placement/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockPlacementService
type MockPlacementService struct {
	SampleQuestionsFunc func(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error)
	GradeAnswersFunc    func(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error)
}

func (m *MockPlacementService) SampleQuestions(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
	if m.SampleQuestionsFunc != nil {
		return m.SampleQuestionsFunc(ctx, req)
	}
	panic("MockPlacementService.SampleQuestionsFunc not implemented")
}
func (m *MockPlacementService) GradeAnswers(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	if m.GradeAnswersFunc != nil {
		return m.GradeAnswersFunc(ctx, req)
	}
	panic("MockPlacementService.GradeAnswersFunc not implemented")
}

// MockHealthService
type MockHealthService struct {
	CheckFunc func(ctx context.Context) *dto.HealthResponse
}

func (m *MockHealthService) Check(ctx context.Context) *dto.HealthResponse {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	panic("MockHealthService.CheckFunc not implemented")
}

func newTestApp(placementSvc service.PlacementService, healthSvc service.HealthService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewPlacementHandler(placementSvc)
	hh := handler.NewHealthHandler(healthSvc)
	vm := middleware.NewValidationMiddleware()

	app.Get("/", hh.Root)
	api := app.Group("/api")
	api.Get("/health", hh.Health)
	api.Get("/english-test/questions", vm.ValidateSampleParams(), h.GetQuestions)
	api.Post("/english-test/grade", h.Grade)
	return app
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPlacementHandler_GetQuestions(t *testing.T) {
	t.Run("passes validated query to the service", func(t *testing.T) {
		var got *dto.SampleRequest
		svc := &MockPlacementService{
			SampleQuestionsFunc: func(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
				got = req
				return &dto.SampleResponse{Questions: []dto.QuestionItem{
					{ID: "q1", Question: "I ___ a student.", Options: []string{"is", "am", "are"}},
				}}, nil
			},
		}
		app := newTestApp(svc, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/english-test/questions?mode=CEFR&total=10", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, &dto.SampleRequest{Mode: "cefr", Total: 10}, got)
		body := decode[dto.SampleResponse](t, resp)
		require.Len(t, body.Questions, 1)
		assert.Equal(t, []string{"is", "am", "are"}, body.Questions[0].Options)
	})

	t.Run("invalid total", func(t *testing.T) {
		app := newTestApp(&MockPlacementService{}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/english-test/questions?total=61", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decode[middleware.ValidationErrorResponse](t, resp)
		assert.Equal(t, string(domain.ErrValidation), body.Code)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "total", body.Errors[0].Field)
	})

	t.Run("empty bank is 404", func(t *testing.T) {
		svc := &MockPlacementService{
			SampleQuestionsFunc: func(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
				return nil, domain.NewNoQuestionsError(domain.ModeQuick)
			},
		}
		resp, err := newTestApp(svc, nil).Test(httptest.NewRequest(http.MethodGet, "/api/english-test/questions", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, string(domain.ErrNotFound), decode[middleware.ErrorResponse](t, resp).Code)
	})

	t.Run("bank failure is 500", func(t *testing.T) {
		svc := &MockPlacementService{
			SampleQuestionsFunc: func(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
				return nil, domain.NewInternalError("Failed to sample questions", errors.New("ORA-03113"))
			},
		}
		resp, err := newTestApp(svc, nil).Test(httptest.NewRequest(http.MethodGet, "/api/english-test/questions?mode=quick", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		body := decode[middleware.ErrorResponse](t, resp)
		assert.NotContains(t, body.Message, "ORA-03113")
	})

	t.Run("without validation middleware", func(t *testing.T) {
		var got *dto.SampleRequest
		svc := &MockPlacementService{
			SampleQuestionsFunc: func(ctx context.Context, req *dto.SampleRequest) (*dto.SampleResponse, error) {
				got = req
				return &dto.SampleResponse{Questions: []dto.QuestionItem{}}, nil
			},
		}
		app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
		app.Get("/q", handler.NewPlacementHandler(svc).GetQuestions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/q?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 5, got.Limit)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/q?limit=abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlacementHandler_Grade(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got *dto.GradeRequest
		svc := &MockPlacementService{
			GradeAnswersFunc: func(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
				got = req
				return &dto.GradeResponse{
					Score:          50,
					Correct:        1,
					Total:          2,
					EstimatedLevel: dto.EstimatedLevel{Quick3: "Beginner", CEFR6: "A1"},
					Feedback:       "Keep going!",
				}, nil
			},
		}
		app := newTestApp(svc, nil)

		resp := postJSON(t, app, "/api/english-test/grade",
			`{"answers":[{"questionId":"q1","selected":"am"},{"qid":"q2","selected":"went"}]}`)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Len(t, got.Answers, 2)
		assert.Equal(t, "q1", got.Answers[0].ID())
		assert.Equal(t, "q2", got.Answers[1].ID())

		body := decode[map[string]any](t, resp)
		assert.Equal(t, 50.0, body["score"])
		assert.Equal(t, map[string]any{"quick3": "Beginner", "cefr6": "A1"}, body["estimatedLevel"])
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := postJSON(t, newTestApp(&MockPlacementService{}, nil), "/api/english-test/grade", `{"answers":`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(domain.ErrInvalidInput), decode[middleware.ErrorResponse](t, resp).Code)
	})

	t.Run("blank question id is an invalid reference", func(t *testing.T) {
		var got *dto.GradeRequest
		svc := &MockPlacementService{
			GradeAnswersFunc: func(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
				got = req
				return nil, domain.NewInvalidReferenceError("")
			},
		}
		resp := postJSON(t, newTestApp(svc, nil), "/api/english-test/grade",
			`{"answers":[{"questionId":"q1","selected":"a"},{"selected":"b"}]}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(domain.ErrInvalidReference), decode[middleware.ErrorResponse](t, resp).Code)
		require.NotNil(t, got)
		assert.Len(t, got.Answers, 2)
	})

	t.Run("unknown question id", func(t *testing.T) {
		svc := &MockPlacementService{
			GradeAnswersFunc: func(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
				return nil, domain.NewInvalidReferenceError("ghost")
			},
		}
		resp := postJSON(t, newTestApp(svc, nil), "/api/english-test/grade",
			`{"answers":[{"questionId":"ghost","selected":"a"}]}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(domain.ErrInvalidReference), decode[middleware.ErrorResponse](t, resp).Code)
	})

	t.Run("empty answers", func(t *testing.T) {
		svc := &MockPlacementService{
			GradeAnswersFunc: func(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
				return nil, domain.NewInvalidInputError("no answers submitted")
			},
		}
		resp := postJSON(t, newTestApp(svc, nil), "/api/english-test/grade", `{"answers":[]}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &MockHealthService{CheckFunc: func(ctx context.Context) *dto.HealthResponse {
			return &dto.HealthResponse{Status: service.StatusOK, Bank: service.StateUp, Questions: 240, Cache: service.StateDisabled}
		}}
		resp, err := newTestApp(nil, svc).Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 240, decode[dto.HealthResponse](t, resp).Questions)
	})

	t.Run("degraded is 503", func(t *testing.T) {
		svc := &MockHealthService{CheckFunc: func(ctx context.Context) *dto.HealthResponse {
			return &dto.HealthResponse{Status: service.StatusDegraded, Bank: service.StateDown, Cache: service.StateUp}
		}}
		resp, err := newTestApp(nil, svc).Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, service.StateDown, decode[dto.HealthResponse](t, resp).Bank)
	})

	t.Run("root probe", func(t *testing.T) {
		app := newTestApp(nil, &MockHealthService{})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decode[dto.RootResponse](t, resp)
		assert.True(t, body.OK)
		assert.Equal(t, "/api/health", body.Health)

		resp, err = app.Test(httptest.NewRequest(http.MethodHead, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
