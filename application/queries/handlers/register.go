package handlers

import (
	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
)

// Register binds every query type to its handler on the bus
func Register(
	queryBus *bus.QueryBus,
	ingredients *IngredientQueryHandler,
	routines *RoutineQueryHandler,
	advice *AdvisorQueryHandler,
) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.ListIngredientsQuery{}, bus.Handler(ingredients.ListIngredients)},
		{queries.GetIngredientQuery{}, bus.Handler(ingredients.GetIngredient)},
		{queries.SearchIngredientsQuery{}, bus.Handler(ingredients.SearchIngredients)},
		{queries.GetIngredientInteractionsQuery{}, bus.Handler(ingredients.GetIngredientInteractions)},
		{queries.ExplainInteractionQuery{}, bus.Handler(ingredients.ExplainInteraction)},
		{queries.CheckCompatibilityQuery{}, bus.Handler(ingredients.CheckCompatibility)},
		{queries.BuildRoutineQuery{}, bus.Handler(routines.BuildRoutine)},
		{queries.AnalyzeRoutineQuery{}, bus.Handler(routines.AnalyzeRoutine)},
		{queries.SuggestRoutineQuery{}, bus.Handler(routines.SuggestRoutine)},
		{queries.CompareProductsQuery{}, bus.Handler(routines.CompareProducts)},
		{queries.AnalyzeIngredientsQuery{}, bus.Handler(routines.AnalyzeIngredients)},
		{queries.AskAdvisorQuery{}, bus.Handler(advice.Ask)},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
