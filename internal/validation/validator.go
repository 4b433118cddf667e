package validation

import (
	"fmt"
	"strconv"
	"strings"

	"english-placement/internal/domain"
	"english-placement/internal/dto"
)

const (
	MaxTotal       = 60
	MaxAnswers     = 200
	MaxSelectedLen = 500
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ParseSampleQuery validates the raw query parameters of a sampling request.
// total accepts 0..MaxTotal, where 0 keeps the default quota; limit, when
// present, accepts 1..MaxTotal and overrides total.
func (v *Validator) ParseSampleQuery(mode, total, limit string) (*dto.SampleRequest, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	req := &dto.SampleRequest{}

	m, ok := domain.ParseMode(mode)
	if !ok {
		errors = append(errors, domain.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("must be one of %s, %s", domain.ModeQuick, domain.ModeCEFR),
			Value:   mode,
		})
	}
	req.Mode = string(m)

	if strings.TrimSpace(total) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(total))
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("total", total))
		case n < 0 || n > MaxTotal:
			errors = append(errors, domain.NewOutOfRangeError("total", n, 0, MaxTotal))
		default:
			req.Total = n
		}
	}

	if strings.TrimSpace(limit) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(limit))
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("limit", limit))
		case n < 1 || n > MaxTotal:
			errors = append(errors, domain.NewOutOfRangeError("limit", n, 1, MaxTotal))
		default:
			req.Limit = n
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return req, nil
}

// ValidateGradeRequest bounds the size of the submitted answers. An empty list
// and blank or unknown question ids are left to the placement engine, which
// rejects them as invalid input and invalid references.
func (v *Validator) ValidateGradeRequest(req *dto.GradeRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}
	if len(req.Answers) > MaxAnswers {
		errors = append(errors, domain.NewOutOfRangeError("answers", len(req.Answers), 1, MaxAnswers))
		return errors
	}

	for i, a := range req.Answers {
		if len(a.Selected) > MaxSelectedLen {
			errors = append(errors, domain.NewOutOfRangeError(fmt.Sprintf("answers[%d].selected", i), len(a.Selected), 0, MaxSelectedLen))
		}
	}

	return errors
}
