package services

import (
	"errors"
	"time"

	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("diary: entry not found")

// NutrientThresholds are the per-day flag limits, in grams.
type NutrientThresholds struct {
	Lactose  float64
	Sorbitol float64
	Gluten   float64
}

// DailyTotal is derived on demand from the entries of one patient/day; it is
// never persisted, so there is no cache to invalidate on entry edits.
type DailyTotal struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	Lactose         float64 `json:"lactose"`
	Sorbitol        float64 `json:"sorbitol"`
	Gluten          float64 `json:"gluten"`
	Flagged         bool    `json:"flagged"`
	UnresolvedCount int     `json:"unresolved_count"`
}

// DiaryService stores entry times in UTC and groups days in UTC, so the same
// instant always lands in the same daily bucket regardless of client offset.
type DiaryService struct {
	db         *gorm.DB
	resolver   *Resolver
	thresholds NutrientThresholds
}

func NewDiaryService(db *gorm.DB, resolver *Resolver, thresholds NutrientThresholds) *DiaryService {
	return &DiaryService{db: db, resolver: resolver, thresholds: thresholds}
}

type MealInput struct {
	OccurredAt  time.Time
	Description string
	Quantity    float64
	Unit        models.Unit
	Note        string
}

type SymptomInput struct {
	OccurredAt time.Time
	Symptom    string
	Severity   models.Severity
	Note       string
}

func (s *DiaryService) AddMeal(patientID uint, in MealInput) (*models.DiaryEntry, error) {
	entry := &models.DiaryEntry{
		PatientID:      patientID,
		Kind:           models.KindMeal,
		OccurredAt:     in.OccurredAt.UTC(),
		RawDescription: in.Description,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		Note:           in.Note,
	}
	s.applyResolution(entry)
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *DiaryService) AddSymptom(patientID uint, in SymptomInput) (*models.DiaryEntry, error) {
	entry := &models.DiaryEntry{
		PatientID:  patientID,
		Kind:       models.KindSymptom,
		OccurredAt: in.OccurredAt.UTC(),
		Symptom:    in.Symptom,
		Severity:   in.Severity,
		Note:       in.Note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateMeal replaces the raw fields of a meal entry and re-runs resolution,
// so resolved figures never go stale against their description.
func (s *DiaryService) UpdateMeal(patientID, entryID uint, in MealInput) (*models.DiaryEntry, error) {
	entry, err := s.getOwned(patientID, entryID, models.KindMeal)
	if err != nil {
		return nil, err
	}
	entry.OccurredAt = in.OccurredAt.UTC()
	entry.RawDescription = in.Description
	entry.Quantity = in.Quantity
	entry.Unit = in.Unit
	entry.Note = in.Note
	s.applyResolution(entry)
	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *DiaryService) UpdateSymptom(patientID, entryID uint, in SymptomInput) (*models.DiaryEntry, error) {
	entry, err := s.getOwned(patientID, entryID, models.KindSymptom)
	if err != nil {
		return nil, err
	}
	entry.OccurredAt = in.OccurredAt.UTC()
	entry.Symptom = in.Symptom
	entry.Severity = in.Severity
	entry.Note = in.Note
	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *DiaryService) DeleteEntry(patientID, entryID uint) error {
	res := s.db.Where("id = ? AND patient_id = ?", entryID, patientID).
		Delete(&models.DiaryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// EntriesFor returns the entries of one patient/day, oldest first.
func (s *DiaryService) EntriesFor(patientID uint, day time.Time) ([]models.DiaryEntry, error) {
	from, to := dayBounds(day)
	var entries []models.DiaryEntry
	err := s.db.
		Where("patient_id = ? AND occurred_at >= ? AND occurred_at < ?", patientID, from, to).
		Order("occurred_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// TotalsFor recomputes per-day nutrient sums over [from, to]. Unresolved meal
// entries contribute zero and are surfaced via UnresolvedCount so missing
// data is never hidden. Days with no entries are omitted.
func (s *DiaryService) TotalsFor(patientID uint, from, to time.Time) ([]DailyTotal, error) {
	start, _ := dayBounds(from)
	_, end := dayBounds(to)

	var entries []models.DiaryEntry
	err := s.db.
		Where("patient_id = ? AND occurred_at >= ? AND occurred_at < ?", patientID, start, end).
		Order("occurred_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DailyTotal{}
	var order []string
	for _, e := range entries {
		if e.Kind != models.KindMeal {
			continue
		}
		key := e.OccurredAt.UTC().Format("2006-01-02")
		t := byDay[key]
		if t == nil {
			t = &DailyTotal{Date: key}
			byDay[key] = t
			order = append(order, key)
		}
		if e.Resolved() {
			t.Lactose += *e.ResolvedLactose
			t.Sorbitol += *e.ResolvedSorbitol
			t.Gluten += *e.ResolvedGluten
		} else {
			t.UnresolvedCount++
		}
	}

	out := make([]DailyTotal, 0, len(order))
	for _, key := range order {
		t := byDay[key]
		t.Flagged = t.Lactose > s.thresholds.Lactose ||
			t.Sorbitol > s.thresholds.Sorbitol ||
			t.Gluten > s.thresholds.Gluten
		out = append(out, *t)
	}
	return out, nil
}

// OverdueStatus answers the notification collaborator's only question about
// a patient/day: is the diary missing, or does it hold unresolved entries.
type OverdueStatus struct {
	Date            string `json:"date"`
	DiaryMissing    bool   `json:"diary_missing"`
	UnresolvedCount int    `json:"unresolved_count"`
	Overdue         bool   `json:"overdue"`
}

func (s *DiaryService) OverdueFor(patientID uint, day time.Time) (*OverdueStatus, error) {
	from, to := dayBounds(day)

	var total, unresolved int64
	err := s.db.Model(&models.DiaryEntry{}).
		Where("patient_id = ? AND occurred_at >= ? AND occurred_at < ?", patientID, from, to).
		Count(&total).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.DiaryEntry{}).
		Where("patient_id = ? AND occurred_at >= ? AND occurred_at < ?", patientID, from, to).
		Where("kind = ? AND resolved_food_id IS NULL", models.KindMeal).
		Count(&unresolved).Error
	if err != nil {
		return nil, err
	}

	st := &OverdueStatus{
		Date:            from.Format("2006-01-02"),
		DiaryMissing:    total == 0,
		UnresolvedCount: int(unresolved),
	}
	st.Overdue = st.DiaryMissing || st.UnresolvedCount > 0
	return st, nil
}

func (s *DiaryService) applyResolution(entry *models.DiaryEntry) {
	res := s.resolver.Resolve(entry.RawDescription, entry.Quantity, entry.Unit)
	entry.ResolvedFoodID = res.FoodID
	entry.ResolvedLactose = res.Lactose
	entry.ResolvedSorbitol = res.Sorbitol
	entry.ResolvedGluten = res.Gluten
	entry.UnresolvedReason = res.Reason
}

func (s *DiaryService) getOwned(patientID, entryID uint, kind models.EntryKind) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	err := s.db.
		Where("id = ? AND patient_id = ? AND kind = ?", entryID, patientID, kind).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
