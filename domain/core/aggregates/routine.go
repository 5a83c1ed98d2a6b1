package aggregates

import (
	"sort"

	"github.com/google/uuid"

	"skincare-backend/domain/core/valueobjects"
)

// RoutineStep is one product application within a routine
type RoutineStep struct {
	Position    int
	ProductName string
	// Ingredients holds identifiers, names or aliases as supplied by the caller
	Ingredients []string
	WaitAfter   int
	Notes       string
}

// Routine is an ordered sequence of steps for one time of day.
// The ID exists only to correlate log lines for a single request.
type Routine struct {
	id    uuid.UUID
	time  valueobjects.RoutineTime
	steps []RoutineStep
}

// NewRoutine creates a routine with its steps ordered by position.
// Equal positions keep their input order. When any step lacks a position
// the steps are numbered 1..n in input order instead. The time is trusted;
// callers parse user input with valueobjects.ParseRoutineTime.
func NewRoutine(time valueobjects.RoutineTime, steps []RoutineStep) *Routine {
	owned := make([]RoutineStep, len(steps))
	renumber := false
	for i, step := range steps {
		step.Ingredients = append([]string(nil), step.Ingredients...)
		owned[i] = step
		if step.Position <= 0 {
			renumber = true
		}
	}

	if renumber {
		for i := range owned {
			owned[i].Position = i + 1
		}
	} else {
		sort.SliceStable(owned, func(i, j int) bool {
			return owned[i].Position < owned[j].Position
		})
	}

	return &Routine{
		id:    uuid.New(),
		time:  time,
		steps: owned,
	}
}

// ID returns the routine's correlation identifier
func (r *Routine) ID() uuid.UUID {
	return r.id
}

// Time returns when the routine is performed
func (r *Routine) Time() valueobjects.RoutineTime {
	return r.time
}

// Steps returns a copy of the ordered steps
func (r *Routine) Steps() []RoutineStep {
	steps := make([]RoutineStep, len(r.steps))
	for i, step := range r.steps {
		step.Ingredients = append([]string(nil), step.Ingredients...)
		steps[i] = step
	}
	return steps
}

// StepCount returns the number of steps
func (r *Routine) StepCount() int {
	return len(r.steps)
}

// AllIngredients flattens the step ingredient lists in step order
func (r *Routine) AllIngredients() []string {
	var all []string
	for _, step := range r.steps {
		all = append(all, step.Ingredients...)
	}
	return all
}
