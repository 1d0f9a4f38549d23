// Package reminder produces the prioritized notification list shown on the
// today view. Generation is pull-based: callers invoke Generate on every
// render or store-change signal, and items are derived fresh each time,
// never persisted.
package reminder

import (
	"fmt"
	"time"

	"github.com/yurim-dev/healthmate/internal/adherence"
	"github.com/yurim-dev/healthmate/internal/meal"
	"github.com/yurim-dev/healthmate/internal/model"
	"github.com/yurim-dev/healthmate/internal/schedule"
)

// Window is a half-open [Start, End) interval in minutes of day.
type Window struct {
	Start int
	End   int
}

// Contains reports whether the minute-of-day m falls inside the window.
func (w Window) Contains(m int) bool {
	return m >= w.Start && m < w.End
}

// DefaultLimit caps the generated list. The cap and the fixed phase order
// below are product decisions: meal alerts outrank medication alerts, which
// outrank general notices, and truncation keeps the front of that order.
const DefaultLimit = 5

// DefaultWindows are the meal time windows used when the config does not
// override them.
func DefaultWindows() map[model.MealType]Window {
	return map[model.MealType]Window{
		model.MealMorning: {Start: 7 * 60, End: 9 * 60},
		model.MealLunch:   {Start: 11 * 60, End: 13 * 60},
		model.MealDinner:  {Start: 18 * 60, End: 20 * 60},
	}
}

// DefaultSlotHours map medication time slots to their nominal hour of day.
func DefaultSlotHours() map[model.TimeSlot]int {
	return map[model.TimeSlot]int{
		model.TimeSlotMorning: 8,
		model.TimeSlotLunch:   12,
		model.TimeSlotDinner:  18,
		model.TimeSlotBedtime: 22,
	}
}

// Generator derives reminder items from the current adherence picture.
type Generator struct {
	Windows   map[model.MealType]Window
	SlotHours map[model.TimeSlot]int
	Limit     int
}

// NewGenerator returns a Generator with the default windows, slot hours,
// and item cap.
func NewGenerator() *Generator {
	return &Generator{
		Windows:   DefaultWindows(),
		SlotHours: DefaultSlotHours(),
		Limit:     DefaultLimit,
	}
}

// Generate evaluates the three reminder phases in fixed priority order and
// returns their concatenation truncated to the configured cap:
//
//  1. meal alerts (in-window first-person nudges, then nothing-recorded
//     alerts for elapsed windows),
//  2. medication alerts (overdue before upcoming, at most one per
//     medication time slot),
//  3. general feed items passed through verbatim, minus anything tagged as
//     a medication item to avoid duplicating phase 2.
//
// The phases are concatenated, not re-sorted, so truncation always favors
// meals over medications over notices.
func (g *Generator) Generate(
	now time.Time,
	meds []model.Medication,
	mealStatus []meal.SlotStatus,
	feed []model.ReminderItem,
) []model.ReminderItem {
	items := g.mealAlerts(now, mealStatus)
	items = append(items, g.medicationAlerts(now, meds)...)

	for _, it := range feed {
		if it.Category.IsMedication() {
			continue
		}
		items = append(items, it)
	}

	limit := g.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// mealAlerts produces one item per unrecorded meal slot whose window has
// started: an in-progress nudge while the window contains now, a missed
// alert once it has fully elapsed. Slots before their window stay silent.
func (g *Generator) mealAlerts(now time.Time, mealStatus []meal.SlotStatus) []model.ReminderItem {
	minute := now.Hour()*60 + now.Minute()

	var items []model.ReminderItem
	for _, st := range mealStatus {
		if st.Recorded {
			continue
		}
		w, ok := g.Windows[st.Type]
		if !ok {
			continue
		}
		label := st.Type.Label()

		switch {
		case w.Contains(minute):
			items = append(items, model.ReminderItem{
				ID:           fmt.Sprintf("meal-%s-now", st.Type),
				Title:        label + " 식사",
				Message:      fmt.Sprintf("지금 %s 식사 시간이에요", label),
				RelativeTime: "지금",
				Category:     model.ReminderMeal,
			})
		case minute >= w.End:
			items = append(items, model.ReminderItem{
				ID:           fmt.Sprintf("meal-%s-missed", st.Type),
				Title:        label + " 식사",
				Message:      fmt.Sprintf("%s 식사를 아직 기록하지 않았어요", label),
				RelativeTime: relativePast(minute - w.End),
				Category:     model.ReminderMeal,
			})
		}
	}
	return items
}

// medicationAlerts produces at most one item per medication time slot:
// overdue once the slot's hour has arrived and the day's target is not yet
// met, upcoming when the slot starts within the next hour. Overdue takes
// precedence. Medications not due today, or already complete, are skipped.
func (g *Generator) medicationAlerts(now time.Time, meds []model.Medication) []model.ReminderItem {
	minute := now.Hour()*60 + now.Minute()

	var items []model.ReminderItem
	for _, m := range meds {
		if !schedule.IsDueOn(m, now) {
			continue
		}
		if adherence.StatusOn(m, now).State == model.AdherenceComplete {
			continue
		}

		for _, slot := range m.TimeSlots {
			hour, ok := g.SlotHours[slot]
			if !ok {
				continue
			}
			slotMinute := hour * 60

			switch {
			case minute >= slotMinute:
				items = append(items, model.ReminderItem{
					ID:           fmt.Sprintf("med-%s-%s-overdue", m.ID, slot),
					Title:        m.Name,
					Message:      fmt.Sprintf("%s 약 복용 시간이 지났어요", slot.Label()),
					RelativeTime: relativePast(minute - slotMinute),
					Category:     model.ReminderMedicationOverdue,
				})
			case slotMinute-minute <= 60:
				items = append(items, model.ReminderItem{
					ID:           fmt.Sprintf("med-%s-%s-upcoming", m.ID, slot),
					Title:        m.Name,
					Message:      fmt.Sprintf("곧 %s 약 복용 시간이에요", slot.Label()),
					RelativeTime: relativeFuture(slotMinute - minute),
					Category:     model.ReminderMedicationUpcoming,
				})
			}
		}
	}
	return items
}

// relativePast renders elapsed minutes as display text.
func relativePast(minutes int) string {
	if minutes < 60 {
		return "지금"
	}
	return fmt.Sprintf("%d시간 전", minutes/60)
}

// relativeFuture renders remaining minutes as display text, rounding up to
// whole hours.
func relativeFuture(minutes int) string {
	hours := (minutes + 59) / 60
	return fmt.Sprintf("%d시간 후", hours)
}
