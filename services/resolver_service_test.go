package services

import (
	"testing"

	"github.com/elidrum/Nutrease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMilk(t *testing.T) {
	r := NewResolver(newTestCatalog(t), 0.72)

	res := r.Resolve("milk", 200, models.UnitMilliliter)
	require.True(t, res.Resolved())
	assert.InDelta(t, 10.0, *res.Lactose, 1e-9)
	assert.InDelta(t, 0.0, *res.Sorbitol, 1e-9)
	assert.InDelta(t, 0.0, *res.Gluten, 1e-9)
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(newTestCatalog(t), 0.72)

	res := r.Resolve("xyzzy123", 1, models.UnitGram)
	assert.False(t, res.Resolved())
	assert.Equal(t, models.ReasonNoMatch, res.Reason)
	assert.Nil(t, res.FoodID)
	assert.Nil(t, res.Lactose)
}

func TestResolveUnitMismatch(t *testing.T) {
	r := NewResolver(newTestCatalog(t), 0.72)

	// apple is piece-native; a volume quantity has no deterministic path
	res := r.Resolve("apple", 1, models.UnitGlass)
	assert.False(t, res.Resolved())
	assert.Equal(t, models.ReasonUnitMismatch, res.Reason)
}

func TestResolveConvertsQuantity(t *testing.T) {
	r := NewResolver(newTestCatalog(t), 0.72)

	// 100 g of bread = 2 slices at 2.5 g gluten per slice
	res := r.Resolve("bread", 100, models.UnitGram)
	require.True(t, res.Resolved())
	assert.InDelta(t, 5.0, *res.Gluten, 1e-9)
}

func TestResolveThresholdGuardsWeakMatches(t *testing.T) {
	cat := newTestCatalog(t)

	strict := NewResolver(cat, 0.95)
	res := strict.Resolve("bananna", 1, models.UnitPiece)
	assert.Equal(t, models.ReasonNoMatch, res.Reason)

	lenient := NewResolver(cat, 0.72)
	res = lenient.Resolve("bananna", 1, models.UnitPiece)
	assert.True(t, res.Resolved())
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(newTestCatalog(t), 0.72)

	a := r.Resolve("milk", 200, models.UnitMilliliter)
	b := r.Resolve("milk", 200, models.UnitMilliliter)
	require.True(t, a.Resolved())
	require.True(t, b.Resolved())
	assert.Equal(t, *a.FoodID, *b.FoodID)
	assert.Equal(t, *a.Lactose, *b.Lactose)
}
