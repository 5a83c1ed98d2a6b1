package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skincare-backend/application/advisor"
	"skincare-backend/application/queries"
)

// AdvisorQueryHandler answers free-text questions
type AdvisorQueryHandler struct {
	advisor *advisor.Advisor
	logger  *zap.Logger
}

// NewAdvisorQueryHandler creates a new advisor query handler
func NewAdvisorQueryHandler(adv *advisor.Advisor, logger *zap.Logger) *AdvisorQueryHandler {
	return &AdvisorQueryHandler{
		advisor: adv,
		logger:  logger,
	}
}

// Ask classifies the question and answers it from the knowledge graph
func (h *AdvisorQueryHandler) Ask(ctx context.Context, query queries.AskAdvisorQuery) (*queries.AdvisorResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	profile, err := queries.OptionalProfile(query.Profile)
	if err != nil {
		return nil, err
	}

	answer := h.advisor.Ask(query.Question, profile)

	h.logger.Info("Advisor answered",
		zap.String("answerID", answer.ID.String()),
		zap.String("intent", string(answer.Intent)),
		zap.Float64("confidence", answer.Confidence),
	)

	return &queries.AdvisorResult{
		ID:         answer.ID.String(),
		Intent:     string(answer.Intent),
		Answer:     answer.Answer,
		Confidence: answer.Confidence,
		Sources:    nonNil(answer.Sources),
		FollowUps:  nonNil(answer.FollowUps),
	}, nil
}
