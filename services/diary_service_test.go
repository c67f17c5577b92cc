package services

import (
	"testing"
	"time"

	"github.com/elidrum/Nutrease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiaryService(t *testing.T) (*DiaryService, models.User) {
	t.Helper()
	db := newTestDB(t)
	resolver := NewResolver(newTestCatalog(t), 0.72)
	svc := NewDiaryService(db, resolver, NutrientThresholds{Lactose: 10, Sorbitol: 5, Gluten: 0.1})
	patient := seedPatient(t, db, "pat@example.com")
	return svc, patient
}

func at(day string, hour int) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", day, time.UTC)
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestAddMealResolvesEntry(t *testing.T) {
	svc, patient := newDiaryService(t)

	entry, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt:  at("2026-03-02", 8),
		Description: "milk",
		Quantity:    200,
		Unit:        models.UnitMilliliter,
	})
	require.NoError(t, err)
	require.True(t, entry.Resolved())
	assert.InDelta(t, 10.0, *entry.ResolvedLactose, 1e-9)
	assert.Empty(t, entry.UnresolvedReason)
}

func TestAddMealStoresUnresolved(t *testing.T) {
	svc, patient := newDiaryService(t)

	entry, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt:  at("2026-03-02", 8),
		Description: "xyzzy123",
		Quantity:    1,
		Unit:        models.UnitGram,
	})
	require.NoError(t, err)
	assert.False(t, entry.Resolved())
	assert.Equal(t, models.ReasonNoMatch, entry.UnresolvedReason)

	// the entry is kept; the user can retry with a better description
	entries, err := svc.EntriesFor(patient.ID, at("2026-03-02", 0))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTotalsSumResolvedMeals(t *testing.T) {
	svc, patient := newDiaryService(t)
	day := "2026-03-02"

	_, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 8), Description: "milk", Quantity: 100, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)
	_, err = svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 13), Description: "bread", Quantity: 2, Unit: models.UnitSlice,
	})
	require.NoError(t, err)
	_, err = svc.AddSymptom(patient.ID, SymptomInput{
		OccurredAt: at(day, 14), Symptom: "bloating", Severity: models.SeverityMild,
	})
	require.NoError(t, err)

	totals, err := svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)
	require.Len(t, totals, 1)

	assert.Equal(t, day, totals[0].Date)
	assert.InDelta(t, 5.0, totals[0].Lactose, 1e-9)  // 100 ml * 0.05
	assert.InDelta(t, 5.0, totals[0].Gluten, 1e-9)   // 2 slices * 2.5
	assert.InDelta(t, 0.0, totals[0].Sorbitol, 1e-9) // symptom adds nothing
	assert.Equal(t, 0, totals[0].UnresolvedCount)
	assert.True(t, totals[0].Flagged) // gluten 5.0 > 0.1
}

func TestTotalsCountUnresolvedWithoutChangingSums(t *testing.T) {
	svc, patient := newDiaryService(t)
	day := "2026-03-02"

	_, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 8), Description: "milk", Quantity: 100, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	before, err := svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)

	_, err = svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 9), Description: "xyzzy123", Quantity: 1, Unit: models.UnitGram,
	})
	require.NoError(t, err)

	after, err := svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)
	require.Len(t, after, 1)

	assert.Equal(t, before[0].Lactose, after[0].Lactose)
	assert.Equal(t, before[0].Sorbitol, after[0].Sorbitol)
	assert.Equal(t, before[0].Gluten, after[0].Gluten)
	assert.Equal(t, 1, after[0].UnresolvedCount)
}

func TestTotalsFlagOnlyAboveThreshold(t *testing.T) {
	svc, patient := newDiaryService(t)
	day := "2026-03-03"

	// exactly at the lactose threshold: 200 ml * 0.05 = 10 g, not above it
	_, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 8), Description: "milk", Quantity: 200, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	totals, err := svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.False(t, totals[0].Flagged)

	_, err = svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 9), Description: "milk", Quantity: 20, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	totals, err = svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)
	assert.True(t, totals[0].Flagged)
}

func TestTotalsBucketByUTCDay(t *testing.T) {
	svc, patient := newDiaryService(t)

	// 01:00 at UTC+3 is 22:00 UTC the previous day
	offset := time.FixedZone("UTC+3", 3*60*60)
	_, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt:  time.Date(2026, 3, 3, 1, 0, 0, 0, offset),
		Description: "milk",
		Quantity:    100,
		Unit:        models.UnitMilliliter,
	})
	require.NoError(t, err)

	totals, err := svc.TotalsFor(patient.ID, at("2026-03-02", 0), at("2026-03-02", 0))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "2026-03-02", totals[0].Date)

	entries, err := svc.EntriesFor(patient.ID, at("2026-03-02", 0))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTotalsSpanMultipleDays(t *testing.T) {
	svc, patient := newDiaryService(t)

	for _, day := range []string{"2026-03-02", "2026-03-04"} {
		_, err := svc.AddMeal(patient.ID, MealInput{
			OccurredAt: at(day, 8), Description: "milk", Quantity: 100, Unit: models.UnitMilliliter,
		})
		require.NoError(t, err)
	}

	totals, err := svc.TotalsFor(patient.ID, at("2026-03-01", 0), at("2026-03-05", 0))
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "2026-03-02", totals[0].Date)
	assert.Equal(t, "2026-03-04", totals[1].Date)
}

func TestUpdateMealReresolves(t *testing.T) {
	svc, patient := newDiaryService(t)

	entry, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at("2026-03-02", 8), Description: "milk", Quantity: 200, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)
	require.True(t, entry.Resolved())

	updated, err := svc.UpdateMeal(patient.ID, entry.ID, MealInput{
		OccurredAt: at("2026-03-02", 8), Description: "xyzzy123", Quantity: 200, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)
	assert.False(t, updated.Resolved())
	assert.Equal(t, models.ReasonNoMatch, updated.UnresolvedReason)
	assert.Nil(t, updated.ResolvedLactose)
}

func TestUpdateMealOfOtherPatientFails(t *testing.T) {
	svc, patient := newDiaryService(t)

	entry, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at("2026-03-02", 8), Description: "milk", Quantity: 200, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	_, err = svc.UpdateMeal(patient.ID+1, entry.ID, MealInput{
		OccurredAt: at("2026-03-02", 8), Description: "bread", Quantity: 1, Unit: models.UnitSlice,
	})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteEntryAffectsTotals(t *testing.T) {
	svc, patient := newDiaryService(t)
	day := "2026-03-02"

	entry, err := svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 8), Description: "milk", Quantity: 100, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(patient.ID, entry.ID))

	totals, err := svc.TotalsFor(patient.ID, at(day, 0), at(day, 0))
	require.NoError(t, err)
	assert.Empty(t, totals)

	assert.ErrorIs(t, svc.DeleteEntry(patient.ID, entry.ID), ErrEntryNotFound)
}

func TestOverdueFor(t *testing.T) {
	svc, patient := newDiaryService(t)
	day := "2026-03-02"

	st, err := svc.OverdueFor(patient.ID, at(day, 0))
	require.NoError(t, err)
	assert.True(t, st.DiaryMissing)
	assert.True(t, st.Overdue)

	_, err = svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 8), Description: "xyzzy123", Quantity: 1, Unit: models.UnitGram,
	})
	require.NoError(t, err)

	st, err = svc.OverdueFor(patient.ID, at(day, 0))
	require.NoError(t, err)
	assert.False(t, st.DiaryMissing)
	assert.Equal(t, 1, st.UnresolvedCount)
	assert.True(t, st.Overdue)

	_, err = svc.AddMeal(patient.ID, MealInput{
		OccurredAt: at(day, 9), Description: "milk", Quantity: 100, Unit: models.UnitMilliliter,
	})
	require.NoError(t, err)

	// the unresolved entry still makes the day overdue
	st, err = svc.OverdueFor(patient.ID, at(day, 0))
	require.NoError(t, err)
	assert.True(t, st.Overdue)
}
