package models

import (
	"fmt"
	"strings"
)

// Unit of measure for a food quantity.
type Unit string

const (
	UnitGram       Unit = "GRAM"
	UnitKilogram   Unit = "KILOGRAM"
	UnitMilliliter Unit = "MILLILITER"
	UnitLiter      Unit = "LITER"
	UnitGlass      Unit = "GLASS"
	UnitCup        Unit = "CUP"
	UnitSpoon      Unit = "SPOON"
	UnitPiece      Unit = "PIECE"
	UnitSlice      Unit = "SLICE"
	UnitClove      Unit = "CLOVE"
)

// UnitDimension groups units that interconvert via fixed factors.
type UnitDimension int

const (
	DimMass UnitDimension = iota
	DimVolume
	DimCount
)

var unitDims = map[Unit]UnitDimension{
	UnitGram:       DimMass,
	UnitKilogram:   DimMass,
	UnitMilliliter: DimVolume,
	UnitLiter:      DimVolume,
	UnitGlass:      DimVolume,
	UnitCup:        DimVolume,
	UnitSpoon:      DimVolume,
	UnitPiece:      DimCount,
	UnitSlice:      DimCount,
	UnitClove:      DimCount,
}

func (u Unit) Dimension() UnitDimension { return unitDims[u] }

// ParseUnit accepts user or dataset input case-insensitively.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := unitDims[u]; !ok {
		return "", fmt.Errorf("%q is not a valid unit", s)
	}
	return u, nil
}

// FoodRecord is one row of the loaded catalog. Immutable after load.
// Nutrient figures are grams of nutrient per one native Unit of the food.
// GramsPerUnit is the mass of one native unit when the dataset knows it
// (0 means unknown), which is what allows count<->mass conversions.
type FoodRecord struct {
	ID              uint
	Name            string
	Unit            Unit
	LactosePerUnit  float64
	SorbitolPerUnit float64
	GlutenPerUnit   float64
	GramsPerUnit    float64
}
