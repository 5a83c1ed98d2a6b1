package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skincare-backend/application/advisor"
	"skincare-backend/application/queries/bus"
	queryhandlers "skincare-backend/application/queries/handlers"
	domainconfig "skincare-backend/domain/config"
	"skincare-backend/domain/services"
	"skincare-backend/infrastructure/catalog"
	"skincare-backend/infrastructure/config"
	"skincare-backend/pkg/observability"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		RequestID string `json:"request_id"`
		Version   string `json:"version"`
	} `json:"meta"`
}

type errorBody struct {
	Error   bool   `json:"error"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()
	domainCfg := domainconfig.DefaultDomainConfig()

	graph, err := catalog.NewLoader(logger).Load("")
	require.NoError(t, err)

	kg := services.NewKnowledgeGraphService(graph, domainCfg, logger)
	builder := services.NewRoutineBuilder(kg, domainCfg, logger)
	analyzer := services.NewRoutineAnalyzer(kg, builder, logger)

	queryBus := bus.NewQueryBus()
	require.NoError(t, queryhandlers.Register(
		queryBus,
		queryhandlers.NewIngredientQueryHandler(kg, domainCfg, logger),
		queryhandlers.NewRoutineQueryHandler(builder, analyzer, domainCfg, logger),
		queryhandlers.NewAdvisorQueryHandler(advisor.NewAdvisor(kg, logger), logger),
	))

	observability.ResetForTesting()
	t.Cleanup(observability.ResetForTesting)
	collector := observability.NewCollector("skincare")

	cfg := config.DefaultConfig()
	cfg.Environment = config.Test
	return NewRouter(cfg, queryBus, collector, observability.NewTracer("test", false), logger).Setup()
}

func do(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	require.True(t, body.Error)
	return body
}

func TestHealthAndReadiness(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = do(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var ready map[string]interface{}
	decodeData(t, rec, &ready)
	assert.Equal(t, "ready", ready["status"])
	assert.EqualValues(t, 25, ready["ingredients"])
}

func TestIngredientRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("get by alias", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients/bha", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var ingredient struct {
			ID string `json:"id"`
		}
		env := decodeData(t, rec, &ingredient)
		assert.Equal(t, "salicylic_acid", ingredient.ID)
		assert.Equal(t, "v1", env.Meta.Version)
		assert.NotEmpty(t, env.Meta.RequestID)
	})

	t.Run("unknown ingredient", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients/unobtainium", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Type)
	})

	t.Run("list by concern", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients?concern=acne", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list struct {
			Total int `json:"total"`
		}
		decodeData(t, rec, &list)
		assert.Greater(t, list.Total, 0)
		assert.Less(t, list.Total, 25)
	})

	t.Run("unknown concern", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients?concern=wrinkles", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION", decodeError(t, rec).Type)
	})

	t.Run("search", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients/search?q=retinl", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var search struct {
			Matches []struct {
				Ingredient struct {
					ID string `json:"id"`
				} `json:"ingredient"`
			} `json:"matches"`
		}
		decodeData(t, rec, &search)
		require.NotEmpty(t, search.Matches)
		assert.Equal(t, "retinol", search.Matches[0].Ingredient.ID)
	})

	t.Run("interactions", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/ingredients/retinol/interactions", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var interactions struct {
			Ingredient   string            `json:"ingredient"`
			Interactions []json.RawMessage `json:"interactions"`
		}
		decodeData(t, rec, &interactions)
		assert.Equal(t, "retinol", interactions.Ingredient)
		assert.NotEmpty(t, interactions.Interactions)
	})

	t.Run("explain", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/interactions/explain?a=vitamin+c&b=retinol", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var explain struct {
			Interaction *struct {
				Kind string `json:"kind"`
			} `json:"interaction"`
		}
		decodeData(t, rec, &explain)
		require.NotNil(t, explain.Interaction)
		assert.Equal(t, "CAUTION", explain.Interaction.Kind)
	})

	t.Run("explain needs both names", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/interactions/explain?a=retinol", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCompatibilityRoute(t *testing.T) {
	router := newTestRouter(t)

	t.Run("conflicting set", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/compatibility", map[string]interface{}{
			"ingredients": []string{"retinol", "aha", "niacinamide"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var result struct {
			IsCompatible bool              `json:"isCompatible"`
			Conflicts    []json.RawMessage `json:"conflicts"`
		}
		decodeData(t, rec, &result)
		assert.False(t, result.IsCompatible)
		assert.Len(t, result.Conflicts, 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/compatibility", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION", body.Type)
		assert.Contains(t, body.Message, "invalid request body")
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/compatibility", `{"ingredients":["retinol"],"extra":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRoutineRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("build", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/routines/build", map[string]interface{}{
			"time": "PM",
			"products": []map[string]interface{}{
				{"name": "Retinol Serum", "ingredients": []string{"retinol"}},
				{"name": "Gel Cleanser", "ingredients": []string{"cleanser"}},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var routine struct {
			ID    string `json:"id"`
			Time  string `json:"time"`
			Steps []struct {
				ProductName string `json:"productName"`
			} `json:"steps"`
		}
		decodeData(t, rec, &routine)
		assert.NotEmpty(t, routine.ID)
		assert.Equal(t, "PM", routine.Time)
		require.Len(t, routine.Steps, 2)
		assert.Equal(t, "Gel Cleanser", routine.Steps[0].ProductName)
	})

	t.Run("build without products", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/routines/build", map[string]interface{}{"time": "PM"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("suggest", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/routines/suggest", map[string]interface{}{
			"profile": map[string]interface{}{"skinType": "oily", "concerns": []string{"acne"}},
			"time":    "AM",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var suggestion struct {
			Budget string            `json:"budget"`
			Steps  []json.RawMessage `json:"steps"`
		}
		decodeData(t, rec, &suggestion)
		assert.Equal(t, "moderate", suggestion.Budget)
		assert.NotEmpty(t, suggestion.Steps)
	})

	t.Run("compare", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/routines/compare", map[string]interface{}{
			"productA": []string{"retinol"},
			"productB": []string{"vitamin c"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var comparison struct {
			CanUseTogether bool `json:"canUseTogether"`
		}
		decodeData(t, rec, &comparison)
		assert.True(t, comparison.CanUseTogether)
	})

	t.Run("analyze ingredients", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/routines/analyze-ingredients", map[string]interface{}{
			"ingredients": []string{"Retinol", "Glycolic Acid", "mystery goo"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var analysis struct {
			Unrecognized []string `json:"unrecognized"`
		}
		decodeData(t, rec, &analysis)
		assert.Contains(t, analysis.Unrecognized, "mystery goo")
	})
}

func TestAdvisorRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/advisor/ask", map[string]interface{}{
		"question": "Can I use retinol with vitamin c?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var answer struct {
		Intent string `json:"intent"`
		Answer string `json:"answer"`
	}
	decodeData(t, rec, &answer)
	assert.Equal(t, "compatibility", answer.Intent)
	assert.NotEmpty(t, answer.Answer)

	rec = do(t, router, http.MethodPost, "/api/v1/advisor/ask", map[string]interface{}{"question": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/v1/compatibility", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	do(t, router, http.MethodGet, "/api/v1/ingredients/retinol", nil)

	rec := do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`skincare_http_requests_total{method="GET",route="/api/v1/ingredients/{id}",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/compatibility", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
