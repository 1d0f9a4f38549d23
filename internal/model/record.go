package model

import "time"

// DoseStatus marks whether a dose record was taken or skipped.
type DoseStatus string

const (
	DoseStatusTaken  DoseStatus = "taken"
	DoseStatusMissed DoseStatus = "missed"
)

// DoseRecord is a single dose event. Records are append-only: once created
// they are never updated, and they disappear only when their owning
// medication is deleted.
type DoseRecord struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	Timestamp    time.Time  `json:"timestamp"`
	Status       DoseStatus `json:"status"`

	// Amount is the consumed amount; always 0 for a missed record.
	Amount float64 `json:"amount"`

	Memo string `json:"memo"`
}

// MealType identifies a meal slot. Snack is representable but is excluded
// from adherence and reminder logic.
type MealType string

const (
	MealMorning MealType = "morning"
	MealLunch   MealType = "lunch"
	MealDinner  MealType = "dinner"
	MealSnack   MealType = "snack"
)

// AdherenceMealTypes are the meal slots that participate in adherence
// tracking, in display order.
var AdherenceMealTypes = []MealType{MealMorning, MealLunch, MealDinner}

// Label returns the Korean display label for the meal type.
func (m MealType) Label() string {
	switch m {
	case MealMorning:
		return "아침"
	case MealLunch:
		return "점심"
	case MealDinner:
		return "저녁"
	case MealSnack:
		return "간식"
	}
	return string(m)
}

// MealRecord is a single meal event, keyed by calendar day.
type MealRecord struct {
	ID string `json:"id"`

	// Date is the calendar day key, formatted YYYY-MM-DD.
	Date string `json:"date"`

	// Time is the clock time the user entered, formatted HH:MM.
	// It is display data; slot resolution uses append order, not Time.
	Time string `json:"time"`

	Type        MealType `json:"type"`
	Description string   `json:"description"`
}

// DateLayout is the calendar-day key format used throughout the store.
const DateLayout = "2006-01-02"

// ClockLayout is the HH:MM display format for entered times.
const ClockLayout = "15:04"

// DateOf returns the calendar-day key for a timestamp, in its location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
