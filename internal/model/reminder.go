package model

// ReminderCategory classifies a reminder item for prioritization.
type ReminderCategory string

const (
	ReminderMedicationOverdue  ReminderCategory = "medication-overdue"
	ReminderMedicationUpcoming ReminderCategory = "medication-upcoming"
	ReminderMeal               ReminderCategory = "meal"
	ReminderGeneral            ReminderCategory = "general"
)

// IsMedication reports whether the category is one of the medication
// reminder kinds.
func (c ReminderCategory) IsMedication() bool {
	return c == ReminderMedicationOverdue || c == ReminderMedicationUpcoming
}

// ReminderItem is a derived notification. Items are produced fresh on every
// evaluation and are never persisted.
type ReminderItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`

	// RelativeTime is display text like "2시간 전" or "1시간 후".
	RelativeTime string `json:"relative_time"`

	Category ReminderCategory `json:"category"`
}
