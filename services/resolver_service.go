package services

import (
	"github.com/elidrum/Nutrease/models"
)

// Resolution is the outcome of matching a raw meal entry against the catalog.
// Either FoodID and the nutrient figures are set, or Reason says why not.
type Resolution struct {
	FoodID   *uint
	Lactose  *float64
	Sorbitol *float64
	Gluten   *float64
	Reason   models.UnresolvedReason
}

func (r Resolution) Resolved() bool { return r.FoodID != nil }

// Resolver turns free-text food descriptions into nutrient contributions.
// It is deterministic for a fixed catalog and threshold and has no side
// effects; callers persist the result onto the entry.
type Resolver struct {
	catalog   *Catalog
	threshold float64
}

func NewResolver(catalog *Catalog, threshold float64) *Resolver {
	return &Resolver{catalog: catalog, threshold: threshold}
}

// Resolve looks the description up, rejects low-confidence matches, converts
// the quantity into the matched record's native unit and scales the per-unit
// nutrient figures.
func (r *Resolver) Resolve(description string, quantity float64, unit models.Unit) Resolution {
	matches := r.catalog.Lookup(description, 1)
	if len(matches) == 0 || matches[0].Score < r.threshold {
		return Resolution{Reason: models.ReasonNoMatch}
	}
	rec := matches[0].Record

	qty, err := r.catalog.Convert(quantity, unit, rec.Unit, rec)
	if err != nil {
		return Resolution{Reason: models.ReasonUnitMismatch}
	}

	lactose := rec.LactosePerUnit * qty
	sorbitol := rec.SorbitolPerUnit * qty
	gluten := rec.GlutenPerUnit * qty
	id := rec.ID
	return Resolution{
		FoodID:   &id,
		Lactose:  &lactose,
		Sorbitol: &sorbitol,
		Gluten:   &gluten,
	}
}
