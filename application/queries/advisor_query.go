package queries

import (
	"strings"

	pkgerrors "skincare-backend/pkg/errors"
)

// maxQuestionLength bounds the free text the advisor will classify
const maxQuestionLength = 500

// AskAdvisorQuery is a free-text question for the advisor
type AskAdvisorQuery struct {
	Question string        `json:"question" validate:"required"`
	Profile  *ProfileInput `json:"profile,omitempty"`
}

// Validate validates the query
func (q AskAdvisorQuery) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return pkgerrors.NewValidationError("question is required")
	}
	if len(q.Question) > maxQuestionLength {
		return pkgerrors.NewValidationError("question is too long")
	}
	return validate(q)
}

// AdvisorResult is the advisor's answer
type AdvisorResult struct {
	ID         string   `json:"id"`
	Intent     string   `json:"intent"`
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	FollowUps  []string `json:"followUps"`
}
