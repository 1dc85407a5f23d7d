package usecase

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/xavierca1/lintra-console/internal/entity"
)

// StageTotal is the sum of the values in the stage and 0 for an empty stage.
func TestProperty_StageTotalIsSum(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("stage total equals the sum of its deal values", prop.ForAll(
		func(values []float64) bool {
			store := seededStore()
			var want float64
			for i, v := range values {
				store.AppendDeal(entity.Deal{ID: fmt.Sprint("d", i), Title: "x", FunnelID: "p1", StageID: "s1", Value: v})
				want += v
			}
			b := NewBoard(store, new(MockOpportunityGateway))
			got := b.StageTotal("s1")
			return math.Abs(got-want) < 1e-6 && b.StageTotal("s2") == 0
		},
		gen.SliceOf(gen.Float64Range(0, 1_000_000)),
	))

	properties.TestingRun(t)
}

// Reordering and then applying the inverse reorder restores the original order.
func TestProperty_ReorderInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ReorderStage(i, j) then ReorderStage(j, i) is identity", prop.ForAll(
		func(n, i, j int) bool {
			stages := make([]entity.Stage, n)
			for k := range stages {
				stages[k] = entity.Stage{ID: fmt.Sprint("s", k), Name: fmt.Sprint("Etapa ", k), Color: "#64748B"}
			}
			e := NewStageEditor(&entity.Funnel{ID: "p1", Name: "Sales", Stages: stages})
			before := e.Stages()
			i, j = i%n, j%n

			if err := e.ReorderStage(i, j); err != nil {
				return false
			}
			if err := e.ReorderStage(j, i); err != nil {
				return false
			}
			after := e.Stages()
			for k := range before {
				if before[k].Key != after[k].Key {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
