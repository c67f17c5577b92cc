package services

import (
	"errors"
	"log"

	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

var (
	ErrAccessDenied          = errors.New("access: not authorized for this patient's data")
	ErrConnectionNotApproved = errors.New("access: connection is not approved")
)

// AccessService is the single authorization choke point for the
// patient-specialist relationship. Both checks are pure reads of current
// connection state, so a revocation takes effect on the very next call.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// CanViewDiary reports whether an Approved connection links the pair.
func (s *AccessService) CanViewDiary(specialistID, patientID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Connection{}).
		Where("patient_id = ? AND specialist_id = ? AND state = ?",
			patientID, specialistID, models.StateApproved).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count == 0 {
		log.Printf("access: diary view denied for specialist=%d patient=%d", specialistID, patientID)
	}
	return count > 0, nil
}

// CanMessage reports whether the connection is Approved and the actor is one
// of its two parties.
func (s *AccessService) CanMessage(connID, actorID uint) (bool, error) {
	var conn models.Connection
	err := s.db.First(&conn, connID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ok := conn.State == models.StateApproved &&
		(actorID == conn.PatientID || actorID == conn.SpecialistID)
	if !ok {
		log.Printf("access: messaging denied for user=%d connection=%d state=%s", actorID, connID, conn.State)
	}
	return ok, nil
}
