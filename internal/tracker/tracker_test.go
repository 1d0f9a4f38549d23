package tracker_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurim-dev/healthmate/internal/clock"
	"github.com/yurim-dev/healthmate/internal/model"
	"github.com/yurim-dev/healthmate/internal/tracker"
	"github.com/yurim-dev/healthmate/tests/testutil"
)

// noon on 2025-03-10, a Monday.
var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func newService(t *testing.T) *tracker.Service {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	return tracker.New(testutil.NewTestStore(t), clock.At(noon), nil, log)
}

func validDraft() tracker.MedicationDraft {
	return tracker.MedicationDraft{
		Name:        "혈압약",
		Description: "아침 식후 복용",
		Dosage: model.Dosage{
			Method:          model.DoseMethodDaily,
			Unit:            model.DoseUnitPill,
			AmountPerIntake: 2,
			TimesPerDay:     3,
		},
		Schedule:  model.OnDays(model.AllWeekdays...),
		TimeSlots: []model.TimeSlot{model.TimeSlotMorning},
	}
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()

	var vErr *tracker.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, field, vErr.Field)
	assert.NotEmpty(t, vErr.Message)
}

func TestAddMedicationValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*tracker.MedicationDraft)
		wantField string
	}{
		{
			name:      "missing name",
			mutate:    func(d *tracker.MedicationDraft) { d.Name = "" },
			wantField: "name",
		},
		{
			name:      "missing description",
			mutate:    func(d *tracker.MedicationDraft) { d.Description = "" },
			wantField: "description",
		},
		{
			name:      "incomplete detailed dosage",
			mutate:    func(d *tracker.MedicationDraft) { d.Dosage.AmountPerIntake = 0 },
			wantField: "dosage",
		},
		{
			name: "incomplete simple dosage",
			mutate: func(d *tracker.MedicationDraft) {
				d.Dosage = model.Dosage{Method: model.DoseMethodTotal, Unit: model.DoseUnitML}
			},
			wantField: "dosage",
		},
		{
			name:      "daily method with empty day selection",
			mutate:    func(d *tracker.MedicationDraft) { d.Schedule = model.OnDays() },
			wantField: "daySlots",
		},
		{
			name:      "daily method without explicit days",
			mutate:    func(d *tracker.MedicationDraft) { d.Schedule = model.EveryDay() },
			wantField: "daySlots",
		},
		{
			name:      "daily method with no time slots",
			mutate:    func(d *tracker.MedicationDraft) { d.TimeSlots = nil },
			wantField: "timeSlots",
		},
		{
			name: "first violation wins over later ones",
			mutate: func(d *tracker.MedicationDraft) {
				d.Name = ""
				d.TimeSlots = nil
			},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			draft := validDraft()
			tt.mutate(&draft)

			med, err := svc.AddMedication(context.Background(), draft)
			assert.Nil(t, med)
			requireValidationError(t, err, tt.wantField)
		})
	}
}

func TestAddMedicationDerivesDoseAmount(t *testing.T) {
	svc := newService(t)

	med, err := svc.AddMedication(context.Background(), validDraft())
	require.NoError(t, err)
	require.NotNil(t, med)
	assert.Equal(t, 6.0, med.DoseAmount) // 2 per intake x 3 per day
	assert.NotEmpty(t, med.ID)
}

func TestAddMedicationSimpleDosage(t *testing.T) {
	svc := newService(t)

	// The simple quick-add flow: total dosage and no explicit schedule.
	med, err := svc.AddMedication(context.Background(), tracker.MedicationDraft{
		Name:        "유산균",
		Description: "하루 한 포",
		Dosage: model.Dosage{
			Method:      model.DoseMethodTotal,
			Unit:        model.DoseUnitPacket,
			TotalAmount: 1,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, med)
	assert.Equal(t, 1.0, med.DoseAmount)
	assert.False(t, med.Schedule.Restricted())
}

func TestAddDoseRecord(t *testing.T) {
	t.Run("taken dose with non-positive amount is rejected", func(t *testing.T) {
		svc := newService(t)

		rec, err := svc.AddDoseRecord(context.Background(), "whatever", tracker.DoseForm{
			Status: model.DoseStatusTaken,
			Amount: 0,
		})
		assert.Nil(t, rec)
		requireValidationError(t, err, "amount")
	})

	t.Run("missing medication is a silent no-op", func(t *testing.T) {
		svc := newService(t)

		rec, err := svc.AddDoseRecord(context.Background(), "gone", tracker.DoseForm{
			Status: model.DoseStatusTaken,
			Amount: 1,
		})
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("supplied time lands on today", func(t *testing.T) {
		svc := newService(t)
		med, err := svc.AddMedication(context.Background(), validDraft())
		require.NoError(t, err)

		rec, err := svc.AddDoseRecord(context.Background(), med.ID, tracker.DoseForm{
			Time:   "08:00",
			Status: model.DoseStatusTaken,
			Amount: 2,
		})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "2025-03-10", model.DateOf(rec.Timestamp))
		assert.Equal(t, 8, rec.Timestamp.Hour())
	})

	t.Run("missed dose forces amount to zero", func(t *testing.T) {
		svc := newService(t)
		med, err := svc.AddMedication(context.Background(), validDraft())
		require.NoError(t, err)

		rec, err := svc.AddDoseRecord(context.Background(), med.ID, tracker.DoseForm{
			Status: model.DoseStatusMissed,
			Amount: 3,
		})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Zero(t, rec.Amount)
	})
}

func TestAddMealRecord(t *testing.T) {
	t.Run("empty description is rejected", func(t *testing.T) {
		svc := newService(t)

		rec, err := svc.AddMealRecord(context.Background(), tracker.MealForm{
			Type: model.MealLunch,
		})
		assert.Nil(t, rec)
		requireValidationError(t, err, "description")
	})

	t.Run("record is keyed by today", func(t *testing.T) {
		svc := newService(t)

		rec, err := svc.AddMealRecord(context.Background(), tracker.MealForm{
			Type:        model.MealLunch,
			Description: "비빔밥",
		})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "2025-03-10", rec.Date)
		assert.Equal(t, "12:00", rec.Time) // clock time, none supplied
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	med, err := svc.AddMedication(ctx, validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedication(ctx, med.ID))
	require.NoError(t, svc.DeleteMedication(ctx, med.ID))

	overview := svc.Overview(ctx)
	assert.Empty(t, overview.Medications)
}

func TestOverview(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	med, err := svc.AddMedication(ctx, validDraft())
	require.NoError(t, err)

	_, err = svc.AddDoseRecord(ctx, med.ID, tracker.DoseForm{
		Time:   "08:00",
		Status: model.DoseStatusTaken,
		Amount: 2,
	})
	require.NoError(t, err)

	_, err = svc.AddMealRecord(ctx, tracker.MealForm{
		Type:        model.MealMorning,
		Description: "토스트",
		Time:        "07:30",
	})
	require.NoError(t, err)

	o := svc.Overview(ctx)

	assert.Equal(t, "2025-03-10", o.Date)
	require.Len(t, o.Medications, 1)
	assert.Equal(t, model.AdherencePartial, o.Medications[0].Status.State)
	assert.Equal(t, 2.0, o.Medications[0].Status.ConsumedAmount)

	assert.Equal(t, 1, o.Summary.Total)
	assert.Zero(t, o.Summary.CompletedCount)

	require.Len(t, o.Meals, 3)
	assert.True(t, o.Meals[0].Recorded)
	assert.False(t, o.Meals[1].Recorded)

	// Noon with an unmet morning target: the lunch meal alert leads,
	// medication alerts follow.
	require.NotEmpty(t, o.Reminders)
	assert.Equal(t, model.ReminderMeal, o.Reminders[0].Category)
	assert.LessOrEqual(t, len(o.Reminders), 5)
}

func TestChangeSignalFiresOnWrites(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var fired int
	cancel := svc.Subscribe(func() { fired++ })
	defer cancel()

	_, err := svc.AddMealRecord(ctx, tracker.MealForm{
		Type:        model.MealDinner,
		Description: "김치찌개",
	})
	require.NoError(t, err)
	assert.Positive(t, fired)
}
