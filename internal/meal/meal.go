// Package meal derives per-slot recorded/unrecorded status from a day's
// meal records.
package meal

import "github.com/yurim-dev/healthmate/internal/model"

// SlotStatus is the derived state of one meal slot for a day.
type SlotStatus struct {
	Type     model.MealType `json:"type"`
	Recorded bool           `json:"recorded"`

	// Time and Description come from the winning record when Recorded.
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
}

// DayStatus computes the status of the morning, lunch, and dinner slots
// from a day's meal records, in that order. Snack records are ignored.
//
// When several records exist for the same slot the last appended one wins.
// Records arrive in store append order, so "last" means most recently
// entered, not latest clock time; this tolerates manually backdated
// entries.
func DayStatus(records []model.MealRecord, date string) []SlotStatus {
	statuses := make([]SlotStatus, 0, len(model.AdherenceMealTypes))
	for _, t := range model.AdherenceMealTypes {
		st := SlotStatus{Type: t}
		for _, r := range records {
			if r.Date != date || r.Type != t {
				continue
			}
			st.Recorded = true
			st.Time = r.Time
			st.Description = r.Description
		}
		statuses = append(statuses, st)
	}
	return statuses
}
