package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

// NotificationController exposes the reminder query an external scheduler
// consumes, plus the in-app alert feed. Delivery transport lives elsewhere.
type NotificationController struct {
	Diary  *services.DiaryService
	Alerts *services.AlertService
}

func NewNotificationController(diary *services.DiaryService, alerts *services.AlertService) *NotificationController {
	return &NotificationController{Diary: diary, Alerts: alerts}
}

// GET /notifications/overdue?date=
func (h *NotificationController) Overdue(c *gin.Context) {
	day, err := parseDay(c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	status, err := h.Diary.OverdueFor(c.GetUint("userID"), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// GET /notifications/alerts?limit=
func (h *NotificationController) ListAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	alerts, err := h.Alerts.List(c.GetUint("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// POST /notifications/alerts/:id/read
func (h *NotificationController) MarkAlertRead(c *gin.Context) {
	alertID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Alerts.MarkRead(c.GetUint("userID"), alertID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert marked read"})
}
