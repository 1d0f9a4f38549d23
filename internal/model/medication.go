package model

import "time"

// DoseMethod describes how a medication's daily target is expressed.
type DoseMethod string

const (
	// DoseMethodDaily targets a fixed amount per intake, a fixed number
	// of times per day.
	DoseMethodDaily DoseMethod = "daily"

	// DoseMethodTotal targets a simple total amount per day.
	DoseMethodTotal DoseMethod = "total"
)

// DoseUnit is the measurement unit of a dose amount.
type DoseUnit string

const (
	DoseUnitPill   DoseUnit = "pill"
	DoseUnitML     DoseUnit = "ml"
	DoseUnitDrop   DoseUnit = "drop"
	DoseUnitPacket DoseUnit = "packet"
	DoseUnitSpray  DoseUnit = "spray"
	DoseUnitGram   DoseUnit = "g"
)

// Dosage is the tagged union of the two ways a dose target can be entered:
// detailed (amount per intake x times per day) or simple (one total amount).
// Which fields are meaningful depends on Method.
type Dosage struct {
	Method DoseMethod `json:"method"`
	Unit   DoseUnit   `json:"unit"`

	// AmountPerIntake and TimesPerDay are meaningful only for DoseMethodDaily.
	AmountPerIntake float64 `json:"amount_per_intake,omitempty"`
	TimesPerDay     int     `json:"times_per_day,omitempty"`

	// TotalAmount is meaningful only for DoseMethodTotal.
	TotalAmount float64 `json:"total_amount,omitempty"`
}

// DailyAmount derives the canonical daily target from the dosage.
// This is the single derivation point: Medication.DoseAmount is always
// recomputed from here, never set independently.
func (d Dosage) DailyAmount() float64 {
	if d.Method == DoseMethodDaily {
		return d.AmountPerIntake * float64(d.TimesPerDay)
	}
	return d.TotalAmount
}

// Medication is a tracked medication with its schedule and owned dose records.
type Medication struct {
	// ID is the stable identifier, immutable after creation.
	ID string `json:"id"`

	// Name is the display name of the medication.
	Name string `json:"name"`

	// Description is the free-form display description.
	Description string `json:"description"`

	// Dosage is how the daily target was entered (detailed or simple).
	Dosage Dosage `json:"dosage"`

	// DoseAmount is the derived total daily target, in Dosage.Unit.
	DoseAmount float64 `json:"dose_amount"`

	// Schedule restricts which weekdays the medication applies to.
	Schedule DaySchedule `json:"day_slots"`

	// TimeSlots are the times of day the medication should be taken.
	TimeSlots []TimeSlot `json:"time_slots"`

	// Memo is free text attached by the user.
	Memo string `json:"memo"`

	// Records is the append-only list of dose records owned by this
	// medication. Records are never referenced from anywhere else and are
	// removed only when the medication itself is deleted.
	Records []DoseRecord `json:"records,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
