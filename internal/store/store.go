package store

import (
	"context"

	"github.com/yurim-dev/healthmate/internal/model"
)

// Store defines the persistence interface for medications, dose records,
// and meal records. It owns no domain logic beyond load/save; adherence and
// reminder computation happen in the packages that read from it.
//
// Every successful write broadcasts a payload-free change signal to all
// subscribers. Readers use the signal to invalidate derived state
// (adherence summaries, reminder lists); the store itself never pushes data.
type Store interface {
	// === Medications ===

	// SaveMedication inserts or replaces a medication. Owned dose records
	// are persisted through AppendDoseRecord, not through this call.
	SaveMedication(ctx context.Context, m model.Medication) error

	// GetMedications returns all medications with their owned dose records
	// attached in append order.
	GetMedications(ctx context.Context) ([]model.Medication, error)

	// GetMedicationByID returns a single medication with its records, or
	// (nil, nil) when no medication has the given id.
	GetMedicationByID(ctx context.Context, id string) (*model.Medication, error)

	// DeleteMedication removes a medication and its dose records.
	// Deleting an absent id is a no-op.
	DeleteMedication(ctx context.Context, id string) error

	// === Dose records (flat cross-medication index) ===

	AppendDoseRecord(ctx context.Context, r model.DoseRecord) error
	GetDoseRecords(ctx context.Context, date string) ([]model.DoseRecord, error)

	// === Meal records, keyed by calendar day ===

	AppendMealRecord(ctx context.Context, r model.MealRecord) error
	GetMealRecords(ctx context.Context, date string) ([]model.MealRecord, error)

	// DeleteMealRecord removes a meal record. Absent ids are a no-op.
	DeleteMealRecord(ctx context.Context, id string) error

	// Subscribe registers fn to run synchronously after every successful
	// write. The returned cancel func removes the subscription.
	Subscribe(fn func()) (cancel func())

	Close() error
}
