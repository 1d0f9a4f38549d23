// Package tracker validates and applies dose and meal events, and serves
// the derived today view. It is the only writer in front of the store;
// everything it exposes recomputes on read, so the engine is pull-based
// and needs no background scheduler.
package tracker

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yurim-dev/healthmate/internal/adherence"
	"github.com/yurim-dev/healthmate/internal/clock"
	"github.com/yurim-dev/healthmate/internal/meal"
	"github.com/yurim-dev/healthmate/internal/model"
	"github.com/yurim-dev/healthmate/internal/reminder"
	"github.com/yurim-dev/healthmate/internal/store"
)

// Service wires the store, clock, and reminder generator behind the
// mutation and query operations exposed to the presentation layer.
type Service struct {
	store store.Store
	clock clock.Clock
	gen   *reminder.Generator
	log   *logrus.Logger
}

// New creates a Service. A nil generator falls back to the defaults and a
// nil logger falls back to the logrus standard logger.
func New(st store.Store, clk clock.Clock, gen *reminder.Generator, log *logrus.Logger) *Service {
	if gen == nil {
		gen = reminder.NewGenerator()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: st, clock: clk, gen: gen, log: log}
}

// Subscribe registers fn to run after every store write. Callers use the
// signal to recompute derived views; the engine never pushes data.
func (s *Service) Subscribe(fn func()) (cancel func()) {
	return s.store.Subscribe(fn)
}

// MedicationStatus pairs a medication with its adherence status for a day.
type MedicationStatus struct {
	Medication model.Medication `json:"medication"`
	Status     adherence.Status `json:"status"`
}

// Overview is the full derived today view.
type Overview struct {
	Date        string               `json:"date"`
	Medications []MedicationStatus   `json:"medications"`
	Summary     adherence.Summary    `json:"summary"`
	Meals       []meal.SlotStatus    `json:"meals"`
	Reminders   []model.ReminderItem `json:"reminders"`
}

// Overview computes the current today view: per-medication adherence, the
// daily summary, meal slot status, and the reminder list.
//
// Storage read faults are absorbed: the affected collection is served
// empty and the condition is logged, per the non-fatal storage rule.
func (s *Service) Overview(ctx context.Context) *Overview {
	now := s.clock.Now()
	today := s.clock.Today()

	meds, err := s.store.GetMedications(ctx)
	if err != nil {
		s.log.WithError(err).Warn("loading medications failed; serving empty set")
		meds = nil
	}

	mealRecords, err := s.store.GetMealRecords(ctx, today)
	if err != nil {
		s.log.WithError(err).Warn("loading meal records failed; serving empty set")
		mealRecords = nil
	}

	statuses := make([]MedicationStatus, 0, len(meds))
	for _, m := range meds {
		statuses = append(statuses, MedicationStatus{
			Medication: m,
			Status:     adherence.StatusOn(m, now),
		})
	}

	mealStatus := meal.DayStatus(mealRecords, today)

	return &Overview{
		Date:        today,
		Medications: statuses,
		Summary:     adherence.DailySummary(meds, now),
		Meals:       mealStatus,
		Reminders:   s.gen.Generate(now, meds, mealStatus, nil),
	}
}

// Reminders recomputes only the reminder list, optionally merging a
// general feed after the meal and medication phases.
func (s *Service) Reminders(ctx context.Context, feed []model.ReminderItem) []model.ReminderItem {
	now := s.clock.Now()
	today := s.clock.Today()

	meds, err := s.store.GetMedications(ctx)
	if err != nil {
		s.log.WithError(err).Warn("loading medications failed; serving empty set")
		meds = nil
	}
	mealRecords, err := s.store.GetMealRecords(ctx, today)
	if err != nil {
		s.log.WithError(err).Warn("loading meal records failed; serving empty set")
		mealRecords = nil
	}

	return s.gen.Generate(now, meds, meal.DayStatus(mealRecords, today), feed)
}
