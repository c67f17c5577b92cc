package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/elidrum/Nutrease/models"
	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

type DiaryController struct {
	Svc *services.DiaryService
}

func NewDiaryController(svc *services.DiaryService) *DiaryController {
	return &DiaryController{Svc: svc}
}

type entryInput struct {
	Kind       string    `json:"kind" binding:"required"`
	OccurredAt time.Time `json:"occurred_at" binding:"required"`
	Note       string    `json:"note"`

	// Meal
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`

	// Symptom
	Symptom  string `json:"symptom"`
	Severity string `json:"severity"`
}

// POST /diary/entries
func (h *DiaryController) CreateEntry(c *gin.Context) {
	var body entryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	switch models.EntryKind(body.Kind) {
	case models.KindMeal:
		in, err := mealInputFrom(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entry, err := h.Svc.AddMeal(uid, in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, entry)
	case models.KindSymptom:
		entry, err := h.Svc.AddSymptom(uid, services.SymptomInput{
			OccurredAt: body.OccurredAt,
			Symptom:    body.Symptom,
			Severity:   models.Severity(body.Severity),
			Note:       body.Note,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, entry)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be MEAL or SYMPTOM"})
	}
}

// GET /diary/entries?date=YYYY-MM-DD
func (h *DiaryController) ListEntries(c *gin.Context) {
	day, err := parseDay(c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	entries, err := h.Svc.EntriesFor(c.GetUint("userID"), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// PUT /diary/entries/:id
func (h *DiaryController) UpdateEntry(c *gin.Context) {
	entryID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body entryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	var entry *models.DiaryEntry
	switch models.EntryKind(body.Kind) {
	case models.KindMeal:
		in, ferr := mealInputFrom(body)
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ferr.Error()})
			return
		}
		entry, err = h.Svc.UpdateMeal(uid, entryID, in)
	case models.KindSymptom:
		entry, err = h.Svc.UpdateSymptom(uid, entryID, services.SymptomInput{
			OccurredAt: body.OccurredAt,
			Symptom:    body.Symptom,
			Severity:   models.Severity(body.Severity),
			Note:       body.Note,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be MEAL or SYMPTOM"})
		return
	}
	if errors.Is(err, services.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /diary/entries/:id
func (h *DiaryController) DeleteEntry(c *gin.Context) {
	entryID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	err = h.Svc.DeleteEntry(c.GetUint("userID"), entryID)
	if errors.Is(err, services.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// GET /diary/totals?from=&to=
func (h *DiaryController) GetTotals(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	totals, err := h.Svc.TotalsFor(c.GetUint("userID"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, totals)
}

func mealInputFrom(body entryInput) (services.MealInput, error) {
	unit, err := models.ParseUnit(body.Unit)
	if err != nil {
		return services.MealInput{}, err
	}
	return services.MealInput{
		OccurredAt:  body.OccurredAt,
		Description: body.Description,
		Quantity:    body.Quantity,
		Unit:        unit,
		Note:        body.Note,
	}, nil
}
