package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yurim-dev/healthmate/internal/model"
)

// MedicationDraft is the user input for creating a medication.
type MedicationDraft struct {
	Name        string
	Description string
	Dosage      model.Dosage
	Schedule    model.DaySchedule
	TimeSlots   []model.TimeSlot
	Memo        string
}

// DoseForm is the user input for recording a dose event.
type DoseForm struct {
	// Time is the HH:MM clock time of the dose; empty means "now".
	Time   string
	Status model.DoseStatus
	Amount float64
	Memo   string
}

// MealForm is the user input for recording a meal event.
type MealForm struct {
	Type        model.MealType
	Description string

	// Time is the HH:MM clock time of the meal; empty means "now".
	Time string
}

// AddMedication validates a draft and persists the new medication.
//
// Violations are checked in a fixed order and the first one found is
// returned: name, description, dosage, then for the daily method the day
// and time slot selections. DoseAmount is always recomputed from the
// dosage, never taken from the caller.
func (s *Service) AddMedication(ctx context.Context, d MedicationDraft) (*model.Medication, error) {
	if d.Name == "" {
		return nil, invalid("name", "약 이름을 입력해 주세요")
	}
	if d.Description == "" {
		return nil, invalid("description", "설명을 입력해 주세요")
	}

	switch d.Dosage.Method {
	case model.DoseMethodDaily:
		if d.Dosage.AmountPerIntake <= 0 || d.Dosage.TimesPerDay <= 0 || d.Dosage.Unit == "" {
			return nil, invalid("dosage", "복용량을 모두 입력해 주세요")
		}
	case model.DoseMethodTotal:
		if d.Dosage.TotalAmount <= 0 || d.Dosage.Unit == "" {
			return nil, invalid("dosage", "복용량을 모두 입력해 주세요")
		}
	default:
		return nil, invalid("dosage", "복용 방식을 선택해 주세요")
	}

	if d.Dosage.Method == model.DoseMethodDaily {
		if !d.Schedule.Restricted() || len(d.Schedule.Days()) == 0 {
			return nil, invalid("daySlots", "요일을 한 개 이상 선택해 주세요")
		}
		if len(d.TimeSlots) == 0 {
			return nil, invalid("timeSlots", "복용 시간을 한 개 이상 선택해 주세요")
		}
	}

	now := s.clock.Now()
	med := model.Medication{
		ID:          uuid.New().String(),
		Name:        d.Name,
		Description: d.Description,
		Dosage:      d.Dosage,
		DoseAmount:  d.Dosage.DailyAmount(),
		Schedule:    d.Schedule,
		TimeSlots:   append([]model.TimeSlot(nil), d.TimeSlots...),
		Memo:        d.Memo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SaveMedication(ctx, med); err != nil {
		s.log.WithError(err).WithField("medication_id", med.ID).
			Warn("persisting medication failed; continuing with in-memory value")
	}

	return &med, nil
}

// AddDoseRecord validates a dose form and appends the record to the given
// medication.
//
// A taken dose with a non-positive amount is a validation error. A missed
// dose always carries amount 0. When the medication no longer exists the
// call is a logged no-op, not an error: the store may have changed between
// read and write in another view, and deletes are idempotent.
func (s *Service) AddDoseRecord(ctx context.Context, medicationID string, f DoseForm) (*model.DoseRecord, error) {
	status := f.Status
	if status == "" {
		status = model.DoseStatusTaken
	}
	if status == model.DoseStatusTaken && f.Amount <= 0 {
		return nil, invalid("amount", "복용량은 0보다 커야 해요")
	}

	med, err := s.store.GetMedicationByID(ctx, medicationID)
	if err != nil {
		s.log.WithError(err).WithField("medication_id", medicationID).
			Warn("looking up medication failed; appending anyway")
	} else if med == nil {
		s.log.WithField("medication_id", medicationID).
			Info("dose record for missing medication dropped")
		return nil, nil
	}

	amount := f.Amount
	if status == model.DoseStatusMissed {
		amount = 0
	}

	rec := model.DoseRecord{
		ID:           uuid.New().String(),
		MedicationID: medicationID,
		Timestamp:    s.timestampToday(f.Time),
		Status:       status,
		Amount:       amount,
		Memo:         f.Memo,
	}

	if err := s.store.AppendDoseRecord(ctx, rec); err != nil {
		s.log.WithError(err).WithField("record_id", rec.ID).
			Warn("persisting dose record failed; continuing with in-memory value")
	}

	return &rec, nil
}

// AddMealRecord validates a meal form and appends the record keyed by
// today's date.
func (s *Service) AddMealRecord(ctx context.Context, f MealForm) (*model.MealRecord, error) {
	if f.Description == "" {
		return nil, invalid("description", "식사 내용을 입력해 주세요")
	}
	switch f.Type {
	case model.MealMorning, model.MealLunch, model.MealDinner, model.MealSnack:
	default:
		return nil, invalid("type", "식사 종류를 선택해 주세요")
	}

	at := f.Time
	if at == "" {
		at = s.clock.Now().Format(model.ClockLayout)
	}

	rec := model.MealRecord{
		ID:          uuid.New().String(),
		Date:        s.clock.Today(),
		Time:        at,
		Type:        f.Type,
		Description: f.Description,
	}

	if err := s.store.AppendMealRecord(ctx, rec); err != nil {
		s.log.WithError(err).WithField("record_id", rec.ID).
			Warn("persisting meal record failed; continuing with in-memory value")
	}

	return &rec, nil
}

// DeleteMedication removes a medication and its records. Repeating the
// call with the same id leaves the store unchanged.
func (s *Service) DeleteMedication(ctx context.Context, id string) error {
	if err := s.store.DeleteMedication(ctx, id); err != nil {
		s.log.WithError(err).WithField("medication_id", id).
			Warn("deleting medication failed")
	}
	return nil
}

// DeleteMealRecord removes a meal record; absent ids are a no-op.
func (s *Service) DeleteMealRecord(ctx context.Context, id string) error {
	if err := s.store.DeleteMealRecord(ctx, id); err != nil {
		s.log.WithError(err).WithField("record_id", id).
			Warn("deleting meal record failed")
	}
	return nil
}

// timestampToday combines today's date with a supplied HH:MM clock time,
// falling back to the current instant when the time is empty or malformed.
func (s *Service) timestampToday(clockTime string) time.Time {
	now := s.clock.Now()
	if clockTime == "" {
		return now
	}
	parsed, err := time.Parse(model.ClockLayout, clockTime)
	if err != nil {
		return now
	}
	return time.Date(
		now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location(),
	)
}
