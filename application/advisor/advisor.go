// Package advisor answers free-text skincare questions by classifying the
// question with an ordered rule list and querying the knowledge graph.
package advisor

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skincare-backend/domain/core/valueobjects"
	"skincare-backend/domain/services"
)

// Intent is the kind of question the advisor recognized
type Intent string

const (
	IntentCompatibility  Intent = "compatibility"
	IntentIngredientInfo Intent = "ingredient_info"
	IntentConcernAdvice  Intent = "concern_advice"
	IntentRoutineHelp    Intent = "routine_help"
	IntentGeneral        Intent = "general"
)

// QueryResult is the advisor's answer to one question
type QueryResult struct {
	ID         uuid.UUID
	Intent     Intent
	Answer     string
	Confidence float64
	// Sources names the knowledge used to answer
	Sources   []string
	FollowUps []string
}

// rule maps a pattern to an intent. Capture groups carry the extracted terms.
type rule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// rules is evaluated top to bottom and the first match wins
var rules = []rule{
	{IntentCompatibility, regexp.MustCompile(`can i use (.+) with (.+)`)},
	{IntentCompatibility, regexp.MustCompile(`can i mix (.+) and (.+)`)},
	{IntentCompatibility, regexp.MustCompile(`is (.+) compatible with (.+)`)},
	{IntentCompatibility, regexp.MustCompile(`(.+) and (.+) together`)},
	{IntentCompatibility, regexp.MustCompile(`combine (.+) and (.+)`)},
	{IntentCompatibility, regexp.MustCompile(`layer (.+) with (.+)`)},

	{IntentIngredientInfo, regexp.MustCompile(`what is (.+)`)},
	{IntentIngredientInfo, regexp.MustCompile(`tell me about (.+)`)},
	{IntentIngredientInfo, regexp.MustCompile(`how does (.+) work`)},
	{IntentIngredientInfo, regexp.MustCompile(`benefits of (.+)`)},
	{IntentIngredientInfo, regexp.MustCompile(`what does (.+) do`)},

	{IntentConcernAdvice, regexp.MustCompile(`what should i use for (.+)`)},
	{IntentConcernAdvice, regexp.MustCompile(`help with (.+)`)},
	{IntentConcernAdvice, regexp.MustCompile(`how to treat (.+)`)},
	{IntentConcernAdvice, regexp.MustCompile(`best for (.+)`)},
	{IntentConcernAdvice, regexp.MustCompile(`recommend.* for (.+)`)},

	{IntentRoutineHelp, regexp.MustCompile(`what order`)},
	{IntentRoutineHelp, regexp.MustCompile(`how to layer`)},
	{IntentRoutineHelp, regexp.MustCompile(`which first`)},
	{IntentRoutineHelp, regexp.MustCompile(`sequence`)},
	{IntentRoutineHelp, regexp.MustCompile(`routine order`)},
}

// Classify returns the intent of a question and the terms its rule extracted
func Classify(question string) (Intent, []string) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	for _, r := range rules {
		if match := r.pattern.FindStringSubmatch(normalized); match != nil {
			return r.intent, match[1:]
		}
	}
	return IntentGeneral, nil
}

// Advisor routes questions to intent-specific answers
type Advisor struct {
	kg     *services.KnowledgeGraphService
	logger *zap.Logger
}

// NewAdvisor creates a new advisor
func NewAdvisor(kg *services.KnowledgeGraphService, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{
		kg:     kg,
		logger: logger,
	}
}

// Ask classifies the question and answers it. The profile is optional.
func (a *Advisor) Ask(question string, profile *valueobjects.SkinProfile) *QueryResult {
	intent, terms := Classify(question)

	var result *QueryResult
	switch intent {
	case IntentCompatibility:
		result = a.answerCompatibility(terms)
	case IntentIngredientInfo:
		result = a.answerIngredientInfo(terms)
	case IntentConcernAdvice:
		result = a.answerConcernAdvice(terms, profile)
	case IntentRoutineHelp:
		result = a.answerRoutineHelp()
	default:
		result = a.answerGeneral(question)
	}
	result.ID = uuid.New()

	a.logger.Debug("Answered question",
		zap.String("queryID", result.ID.String()),
		zap.String("classified", string(intent)),
		zap.String("answered", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
	)

	return result
}
