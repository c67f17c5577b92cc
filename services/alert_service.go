package services

import (
	"time"

	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

// AlertService persists in-app alerts and mirrors them onto the realtime hub.
// Anything beyond that (email, push) belongs to an external collaborator.
type AlertService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewAlertService(db *gorm.DB, hub *RealtimeHub) *AlertService {
	return &AlertService{db: db, hub: hub}
}

func (s *AlertService) Emit(userID uint, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = s.db.Create(a).Error

	if s.hub != nil {
		s.hub.BroadcastToUser(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
}

func (s *AlertService) List(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

func (s *AlertService) MarkRead(userID, alertID uint) error {
	return s.db.Model(&models.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true).Error
}
