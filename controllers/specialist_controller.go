package controllers

import (
	"net/http"
	"time"

	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

// SpecialistController serves a specialist's gated view of a patient's diary.
// Every handler consults the access gate first; a revoked link answers 403 on
// the next request, with no grace period.
type SpecialistController struct {
	Access *services.AccessService
	Diary  *services.DiaryService
}

func NewSpecialistController(access *services.AccessService, diary *services.DiaryService) *SpecialistController {
	return &SpecialistController{Access: access, Diary: diary}
}

// GET /patients/:id/diary?date=
func (h *SpecialistController) PatientDiary(c *gin.Context) {
	patientID, ok := h.gate(c)
	if !ok {
		return
	}
	day, err := parseDay(c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	entries, err := h.Diary.EntriesFor(patientID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /patients/:id/totals?from=&to=
func (h *SpecialistController) PatientTotals(c *gin.Context) {
	patientID, ok := h.gate(c)
	if !ok {
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.Diary.TotalsFor(patientID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *SpecialistController) gate(c *gin.Context) (uint, bool) {
	patientID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	allowed, err := h.Access.CanViewDiary(c.GetUint("userID"), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return 0, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "no approved link with this patient"})
		return 0, false
	}
	return patientID, true
}
