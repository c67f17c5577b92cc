package models

import (
	"time"

	"gorm.io/gorm"
)

type EntryKind string

const (
	KindMeal    EntryKind = "MEAL"
	KindSymptom EntryKind = "SYMPTOM"
)

type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityMild     Severity = "MILD"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// UnresolvedReason records why a meal entry carries no nutrient figures.
type UnresolvedReason string

const (
	ReasonNoMatch      UnresolvedReason = "NO_MATCH"
	ReasonUnitMismatch UnresolvedReason = "UNIT_MISMATCH"
)

// DiaryEntry is one diary row: a meal portion or a reported symptom.
// Resolved* fields are set by the resolver whenever the raw fields change;
// they stay nil when resolution failed (UnresolvedReason says why).
type DiaryEntry struct {
	gorm.Model
	PatientID  uint      `gorm:"index;not null" json:"patient_id"`
	Kind       EntryKind `gorm:"type:varchar(16);not null" json:"kind"`
	OccurredAt time.Time `gorm:"index;not null" json:"occurred_at"`
	Note       string    `json:"note,omitempty"`

	// Meal fields
	RawDescription string  `json:"raw_description,omitempty"`
	Quantity       float64 `json:"quantity,omitempty"`
	Unit           Unit    `gorm:"type:varchar(16)" json:"unit,omitempty"`

	ResolvedFoodID   *uint            `json:"resolved_food_id,omitempty"`
	ResolvedLactose  *float64         `json:"resolved_lactose,omitempty"`
	ResolvedSorbitol *float64         `json:"resolved_sorbitol,omitempty"`
	ResolvedGluten   *float64         `json:"resolved_gluten,omitempty"`
	UnresolvedReason UnresolvedReason `gorm:"type:varchar(16)" json:"unresolved_reason,omitempty"`

	// Symptom fields
	Symptom  string   `json:"symptom,omitempty"`
	Severity Severity `gorm:"type:varchar(16)" json:"severity,omitempty"`
}

// Resolved reports whether the entry carries nutrient figures.
func (e *DiaryEntry) Resolved() bool {
	return e.Kind == KindMeal && e.ResolvedFoodID != nil
}
