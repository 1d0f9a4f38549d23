// Package adherence computes consumed-vs-target dose status for a calendar
// day from a medication's append-only records.
package adherence

import (
	"math"
	"time"

	"github.com/yurim-dev/healthmate/internal/model"
	"github.com/yurim-dev/healthmate/internal/schedule"
)

// Status is the derived adherence view of one medication for one day.
type Status struct {
	ConsumedAmount float64              `json:"consumed_amount"`
	TargetAmount   float64              `json:"target_amount"`
	State          model.AdherenceState `json:"state"`
}

// Summary aggregates completion across all medications due on a day.
type Summary struct {
	Total          int `json:"total"`
	CompletedCount int `json:"completed_count"`
	Percentage     int `json:"percentage"`
}

// StatusOn computes the adherence status of a medication on a date.
//
// The target is doseAmount scaled by the intake count (1 when the dosage
// has no per-day intake count). Consumed sums the amounts of taken records
// whose timestamp falls on the date; missed records carry amount 0 and
// contribute nothing. A zero target is complete unconditionally so that a
// medication without a measurable target never sits forever in partial.
func StatusOn(m model.Medication, date time.Time) Status {
	times := m.Dosage.TimesPerDay
	if times < 1 {
		times = 1
	}
	target := m.DoseAmount * float64(times)

	day := model.DateOf(date)
	var consumed float64
	for _, r := range m.Records {
		if r.Status != model.DoseStatusTaken {
			continue
		}
		if model.DateOf(r.Timestamp) != day {
			continue
		}
		consumed += r.Amount
	}

	st := Status{ConsumedAmount: consumed, TargetAmount: target}

	if !schedule.IsDueOn(m, date) {
		st.State = model.AdherenceNotApplicable
		return st
	}

	switch {
	case target == 0 || consumed >= target:
		st.State = model.AdherenceComplete
	case consumed > 0:
		st.State = model.AdherencePartial
	default:
		st.State = model.AdherenceNotTaken
	}
	return st
}

// DailySummary aggregates adherence over the medications due on a date.
// Medications not due that day are excluded from the total. The percentage
// is 0 when nothing is due.
func DailySummary(meds []model.Medication, date time.Time) Summary {
	var sum Summary
	for _, m := range meds {
		if !schedule.IsDueOn(m, date) {
			continue
		}
		sum.Total++
		if StatusOn(m, date).State == model.AdherenceComplete {
			sum.CompletedCount++
		}
	}
	if sum.Total > 0 {
		sum.Percentage = int(math.Round(float64(sum.CompletedCount) / float64(sum.Total) * 100))
	}
	return sum
}
