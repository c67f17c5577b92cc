package services

import (
	"errors"
	"strings"
	"time"

	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

var ErrEmptyMessage = errors.New("chat: message body is empty")

// ChatService stores the per-connection message log. Every read and write
// goes through the access gate first.
type ChatService struct {
	db     *gorm.DB
	access *AccessService
	hub    *RealtimeHub
	alerts *AlertService
}

func NewChatService(db *gorm.DB, access *AccessService, hub *RealtimeHub, alerts *AlertService) *ChatService {
	return &ChatService{db: db, access: access, hub: hub, alerts: alerts}
}

// Post appends a message to an approved connection's log. Messages are
// immutable once stored.
func (s *ChatService) Post(connID, senderID uint, body string) (*models.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}
	ok, err := s.access.CanMessage(connID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConnectionNotApproved
	}

	msg := &models.ChatMessage{
		ConnectionID: connID,
		SenderID:     senderID,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}

	var conn models.Connection
	if err := s.db.First(&conn, connID).Error; err == nil {
		receiver := conn.PatientID
		if senderID == conn.PatientID {
			receiver = conn.SpecialistID
		}
		if s.hub != nil {
			s.hub.BroadcastToUser(receiver, map[string]any{
				"kind":    "chat.message",
				"message": msg,
			})
		}
		if s.alerts != nil {
			s.alerts.Emit(receiver, "chat.message", "New message in your conversation.")
		}
	}
	return msg, nil
}

// History returns one page of the conversation, oldest first, ordered by
// sent time with id as the tie-break. Pagination is keyset (afterID), so a
// caller restarts the sequence by passing afterID=0 again.
func (s *ChatService) History(connID, actorID uint, afterID uint, limit int) ([]models.ChatMessage, error) {
	ok, err := s.access.CanMessage(connID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.Where("connection_id = ?", connID)
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	var msgs []models.ChatMessage
	err = q.Order("sent_at ASC, id ASC").Limit(limit).Find(&msgs).Error
	return msgs, err
}
