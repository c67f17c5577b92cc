package services

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateActiveConnection = errors.New("connection: an active request or link already exists for this pair")
	ErrInvalidTransition         = errors.New("connection: transition not allowed from current state")
	ErrConnectionNotFound        = errors.New("connection: not found")
)

// ConnectionService owns the patient-specialist link lifecycle:
// Pending -> Approved | Declined, Approved -> Revoked. Declined and Revoked
// are terminal; re-requesting afterwards creates a fresh row.
type ConnectionService struct {
	db     *gorm.DB
	alerts *AlertService

	// Serializes check-then-create per (patient, specialist) pair, since the
	// storage layer has no uniqueness constraint over two live states. A
	// fixed shard set keeps the lock table bounded for the process lifetime;
	// unrelated pairs sharing a shard only cost a short wait.
	pairLocks [64]sync.Mutex
}

func NewConnectionService(db *gorm.DB, alerts *AlertService) *ConnectionService {
	return &ConnectionService{db: db, alerts: alerts}
}

func (s *ConnectionService) pairLock(patientID, specialistID uint) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%d", patientID, specialistID)
	return &s.pairLocks[h.Sum32()%uint32(len(s.pairLocks))]
}

// Request creates a Pending connection. Fails when a Pending or Approved row
// already links the pair; two concurrent requests cannot both succeed.
func (s *ConnectionService) Request(patientID, specialistID uint, comment string) (*models.Connection, error) {
	lock := s.pairLock(patientID, specialistID)
	lock.Lock()
	defer lock.Unlock()

	var specialist models.User
	err := s.db.Where("id = ? AND role = ?", specialistID, models.RoleSpecialist).
		First(&specialist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.Model(&models.Connection{}).
		Where("patient_id = ? AND specialist_id = ? AND state IN ?",
			patientID, specialistID,
			[]models.ConnectionState{models.StatePending, models.StateApproved}).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateActiveConnection
	}

	conn := &models.Connection{
		PatientID:    patientID,
		SpecialistID: specialistID,
		State:        models.StatePending,
		Comment:      comment,
	}
	if err := s.db.Create(conn).Error; err != nil {
		return nil, err
	}
	if s.alerts != nil {
		s.alerts.Emit(specialistID, "connection.requested", "A patient asked to share their diary with you.")
	}
	return conn, nil
}

// Approve moves Pending -> Approved. Only the target specialist may decide.
func (s *ConnectionService) Approve(connID, actorID uint) (*models.Connection, error) {
	return s.decide(connID, actorID, models.StateApproved)
}

// Decline moves Pending -> Declined. Only the target specialist may decide.
func (s *ConnectionService) Decline(connID, actorID uint) (*models.Connection, error) {
	return s.decide(connID, actorID, models.StateDeclined)
}

func (s *ConnectionService) decide(connID, actorID uint, next models.ConnectionState) (*models.Connection, error) {
	conn, err := s.Get(connID)
	if err != nil {
		return nil, err
	}
	if conn.SpecialistID != actorID {
		return nil, ErrInvalidTransition
	}

	// Guarded update: when two deciders race, the state predicate lets
	// exactly one through and the loser sees zero rows affected.
	now := time.Now()
	res := s.db.Model(&models.Connection{}).
		Where("id = ? AND state = ?", connID, models.StatePending).
		Updates(map[string]any{"state": next, "decided_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	conn.State = next
	conn.DecidedAt = &now
	if s.alerts != nil {
		s.alerts.Emit(conn.PatientID, "connection.decided",
			fmt.Sprintf("Your link request was %s.", stateWord(next)))
	}
	return conn, nil
}

// Revoke moves Approved -> Revoked. Either party may revoke; access drops
// immediately because every gate check reads current state.
func (s *ConnectionService) Revoke(connID, actorID uint) (*models.Connection, error) {
	conn, err := s.Get(connID)
	if err != nil {
		return nil, err
	}
	if actorID != conn.PatientID && actorID != conn.SpecialistID {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	res := s.db.Model(&models.Connection{}).
		Where("id = ? AND state = ?", connID, models.StateApproved).
		Updates(map[string]any{"state": models.StateRevoked, "decided_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	conn.State = models.StateRevoked
	conn.DecidedAt = &now

	other := conn.PatientID
	if actorID == conn.PatientID {
		other = conn.SpecialistID
	}
	if s.alerts != nil {
		s.alerts.Emit(other, "connection.decided", "A diary link was revoked.")
	}
	return conn, nil
}

func (s *ConnectionService) Get(connID uint) (*models.Connection, error) {
	var conn models.Connection
	err := s.db.First(&conn, connID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// ListForUser returns every connection a user takes part in, latest first.
// Terminal rows are kept as history.
func (s *ConnectionService) ListForUser(userID uint, role models.Role) ([]models.Connection, error) {
	column := "patient_id"
	if role == models.RoleSpecialist {
		column = "specialist_id"
	}
	var conns []models.Connection
	err := s.db.Where(column+" = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&conns).Error
	return conns, err
}

// PendingFor lists the open requests waiting on a specialist.
func (s *ConnectionService) PendingFor(specialistID uint) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.db.
		Where("specialist_id = ? AND state = ?", specialistID, models.StatePending).
		Order("created_at ASC").
		Find(&conns).Error
	return conns, err
}

func stateWord(s models.ConnectionState) string {
	switch s {
	case models.StateApproved:
		return "approved"
	case models.StateDeclined:
		return "declined"
	default:
		return "updated"
	}
}
