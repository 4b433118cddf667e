package handler

import (
	"english-placement/internal/domain"
	"english-placement/internal/dto"
	"english-placement/internal/logger"
	"english-placement/internal/middleware"
	"english-placement/internal/service"
	"english-placement/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlacementHandler handles the English test HTTP requests
type PlacementHandler struct {
	service   service.PlacementService
	validator *validation.Validator
}

// NewPlacementHandler creates a new PlacementHandler instance
func NewPlacementHandler(service service.PlacementService) *PlacementHandler {
	return &PlacementHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetQuestions godoc
// @Summary Sample a placement test
// @Description Draws a stratified random set of questions. quick mode balances Beginner/Intermediate/Advanced, cefr mode balances A1 to C1. Options are shuffled and the answer is not marked.
// @Tags english-test
// @Produce json
// @Param mode query string false "quick (default) or cefr"
// @Param total query int false "Total questions, 0 or omitted uses the mode default (12 quick, 30 cefr)" minimum(0) maximum(60)
// @Param limit query int false "Legacy alias of total; wins when both are set" minimum(1) maximum(60)
// @Success 200 {object} dto.SampleResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /english-test/questions [get]
func (h *PlacementHandler) GetQuestions(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalSampleRequest).(*dto.SampleRequest)
	if !ok {
		// Route mounted without ValidateSampleParams
		parsed, errs := h.validator.ParseSampleQuery(c.Query("mode"), c.Query("total"), c.Query("limit"))
		if len(errs) > 0 {
			return errs
		}
		req = parsed
	}

	resp, err := h.service.SampleQuestions(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Grade godoc
// @Summary Grade a placement test
// @Description Scores the submitted answers and estimates the quick3 and CEFR levels. Answers are compared to the stored answer after trimming.
// @Tags english-test
// @Accept json
// @Produce json
// @Param answers body dto.GradeRequest true "Submitted answers"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /english-test/grade [post]
func (h *PlacementHandler) Grade(c *fiber.Ctx) error {
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse grade request", zap.Error(err))
		return domain.NewInvalidInputError("request body must be JSON of the form {\"answers\": [{\"questionId\", \"selected\"}]}")
	}

	if errs := h.validator.ValidateGradeRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GradeAnswers(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
