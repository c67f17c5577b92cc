package models

import "gorm.io/gorm"

type Role string

const (
	RolePatient    Role = "PATIENT"
	RoleSpecialist Role = "SPECIALIST"
)

type SpecialistCategory string

const (
	CategoryDietician          SpecialistCategory = "DIETICIAN"
	CategoryNutritionist       SpecialistCategory = "NUTRITIONIST"
	CategoryGastroenterologist SpecialistCategory = "GASTROENTEROLOGIST"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
	Name     string
	Surname  string
	Role     Role `gorm:"type:varchar(16);not null"`

	// Patient-only
	ProfileNote string

	// Specialist-only
	Category SpecialistCategory `gorm:"type:varchar(32)"`
	Bio      string

	ResetToken string `json:"-"`
}
