package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/yurim-dev/healthmate/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
// All rows are namespaced by the user identity given at construction.
type SQLiteStore struct {
	db     *sqlx.DB
	userID string

	mu        sync.Mutex
	listeners map[int]func()
	nextSubID int
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations. userID namespaces all
// collections owned by this store.
func NewSQLiteStore(dbPath, userID string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// PRAGMAs are per-connection and :memory: databases are too; a single
	// pooled connection keeps both stable.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys so dose records cascade with their medication.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:        db,
		userID:    userID,
		listeners: make(map[int]func()),
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Subscribe registers fn to run after every successful write.
func (s *SQLiteStore) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notify broadcasts a payload-free change signal to all subscribers.
func (s *SQLiteStore) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SaveMedication inserts or replaces a medication row.
func (s *SQLiteStore) SaveMedication(ctx context.Context, m model.Medication) error {
	daySlots := sql.NullString{}
	if m.Schedule.Restricted() {
		b, err := json.Marshal(m.Schedule)
		if err != nil {
			return fmt.Errorf("marshaling day slots for medication %s: %w", m.ID, err)
		}
		daySlots = sql.NullString{String: string(b), Valid: true}
	}

	timeSlots, err := json.Marshal(m.TimeSlots)
	if err != nil {
		return fmt.Errorf("marshaling time slots for medication %s: %w", m.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO medications (
			id, user_id, name, description,
			dose_method, dose_unit, amount_per_intake, times_per_day,
			total_amount, dose_amount, day_slots, time_slots,
			memo, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, s.userID, m.Name, m.Description,
		string(m.Dosage.Method), string(m.Dosage.Unit),
		m.Dosage.AmountPerIntake, m.Dosage.TimesPerDay,
		m.Dosage.TotalAmount, m.DoseAmount, daySlots, string(timeSlots),
		m.Memo, m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving medication %s: %w", m.ID, err)
	}

	s.notify()
	return nil
}

// GetMedications returns all medications with their owned dose records
// attached in append order.
func (s *SQLiteStore) GetMedications(ctx context.Context) ([]model.Medication, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM medications WHERE user_id = ? ORDER BY created_at, id",
		s.userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying medications: %w", err)
	}
	defer rows.Close()

	var meds []model.Medication
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(meds)
		meds = append(meds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating medications: %w", err)
	}

	recRows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM dose_records WHERE user_id = ? ORDER BY seq",
		s.userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dose records: %w", err)
	}
	defer recRows.Close()

	for recRows.Next() {
		r, err := scanDoseRecord(recRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[r.MedicationID]; ok {
			meds[i].Records = append(meds[i].Records, r)
		}
	}

	return meds, recRows.Err()
}

// GetMedicationByID returns a single medication with its records, or
// (nil, nil) when absent.
func (s *SQLiteStore) GetMedicationByID(ctx context.Context, id string) (*model.Medication, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM medications WHERE user_id = ? AND id = ?",
		s.userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying medication %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	m, err := scanMedication(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	recRows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM dose_records WHERE medication_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dose records for %s: %w", id, err)
	}
	defer recRows.Close()

	for recRows.Next() {
		r, err := scanDoseRecord(recRows)
		if err != nil {
			return nil, err
		}
		m.Records = append(m.Records, r)
	}

	return &m, recRows.Err()
}

// DeleteMedication removes a medication and, via cascade, its dose records.
// Deleting an absent id is a no-op.
func (s *SQLiteStore) DeleteMedication(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM medications WHERE user_id = ? AND id = ?",
		s.userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting medication %s: %w", id, err)
	}

	s.notify()
	return nil
}

// AppendDoseRecord inserts a dose record into the flat index and bumps the
// owning medication's updated_at.
func (s *SQLiteStore) AppendDoseRecord(ctx context.Context, r model.DoseRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dose_records (
			id, medication_id, user_id, record_date,
			taken_at, status, amount, memo
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.MedicationID, s.userID, model.DateOf(r.Timestamp),
		r.Timestamp.UTC(), string(r.Status), r.Amount, r.Memo,
	)
	if err != nil {
		return fmt.Errorf("appending dose record %s: %w", r.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE medications SET updated_at = ? WHERE id = ?",
		time.Now().UTC(), r.MedicationID,
	)
	if err != nil {
		return fmt.Errorf("touching medication %s: %w", r.MedicationID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dose record %s: %w", r.ID, err)
	}

	s.notify()
	return nil
}

// GetDoseRecords returns all dose records for a calendar day across every
// medication, in append order.
func (s *SQLiteStore) GetDoseRecords(ctx context.Context, date string) ([]model.DoseRecord, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM dose_records WHERE user_id = ? AND record_date = ? ORDER BY seq",
		s.userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dose records for %s: %w", date, err)
	}
	defer rows.Close()

	var records []model.DoseRecord
	for rows.Next() {
		r, err := scanDoseRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// AppendMealRecord inserts a meal record keyed by its calendar day.
func (s *SQLiteStore) AppendMealRecord(ctx context.Context, r model.MealRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_records (
			id, user_id, record_date, meal_time, meal_type, description
		) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, s.userID, r.Date, r.Time, string(r.Type), r.Description,
	)
	if err != nil {
		return fmt.Errorf("appending meal record %s: %w", r.ID, err)
	}

	s.notify()
	return nil
}

// GetMealRecords returns all meal records for a calendar day in append order.
func (s *SQLiteStore) GetMealRecords(ctx context.Context, date string) ([]model.MealRecord, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM meal_records WHERE user_id = ? AND record_date = ? ORDER BY seq",
		s.userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("querying meal records for %s: %w", date, err)
	}
	defer rows.Close()

	var records []model.MealRecord
	for rows.Next() {
		r, err := scanMealRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// DeleteMealRecord removes a meal record. Absent ids are a no-op.
func (s *SQLiteStore) DeleteMealRecord(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM meal_records WHERE user_id = ? AND id = ?",
		s.userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting meal record %s: %w", id, err)
	}

	s.notify()
	return nil
}

// scanMedication scans a medication row from a sqlx.Rows result set.
func scanMedication(rows *sqlx.Rows) (model.Medication, error) {
	var (
		m          model.Medication
		userID     string
		doseMethod string
		doseUnit   string
		daySlots   sql.NullString
		timeSlots  string
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := rows.Scan(
		&m.ID, &userID, &m.Name, &m.Description,
		&doseMethod, &doseUnit, &m.Dosage.AmountPerIntake, &m.Dosage.TimesPerDay,
		&m.Dosage.TotalAmount, &m.DoseAmount, &daySlots, &timeSlots,
		&m.Memo, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Medication{}, fmt.Errorf("scanning medication row: %w", err)
	}

	m.Dosage.Method = model.DoseMethod(doseMethod)
	m.Dosage.Unit = model.DoseUnit(doseUnit)
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt

	// NULL round-trips to the unrestricted schedule, '[]' to "never".
	scheduleJSON := "null"
	if daySlots.Valid {
		scheduleJSON = daySlots.String
	}
	if err := json.Unmarshal([]byte(scheduleJSON), &m.Schedule); err != nil {
		return model.Medication{}, fmt.Errorf("unmarshaling day slots: %w", err)
	}

	if timeSlots != "" {
		if err := json.Unmarshal([]byte(timeSlots), &m.TimeSlots); err != nil {
			return model.Medication{}, fmt.Errorf("unmarshaling time slots: %w", err)
		}
	}

	return m, nil
}

// scanDoseRecord scans a dose record row from a sqlx.Rows result set.
func scanDoseRecord(rows *sqlx.Rows) (model.DoseRecord, error) {
	var (
		r          model.DoseRecord
		seq        int64
		userID     string
		recordDate string
		takenAt    time.Time
		status     string
	)

	err := rows.Scan(
		&seq, &r.ID, &r.MedicationID, &userID, &recordDate,
		&takenAt, &status, &r.Amount, &r.Memo,
	)
	if err != nil {
		return model.DoseRecord{}, fmt.Errorf("scanning dose record row: %w", err)
	}

	r.Timestamp = takenAt.Local()
	r.Status = model.DoseStatus(status)

	return r, nil
}

// scanMealRecord scans a meal record row from a sqlx.Rows result set.
func scanMealRecord(rows *sqlx.Rows) (model.MealRecord, error) {
	var (
		r        model.MealRecord
		seq      int64
		userID   string
		mealType string
	)

	err := rows.Scan(
		&seq, &r.ID, &userID, &r.Date, &r.Time, &mealType, &r.Description,
	)
	if err != nil {
		return model.MealRecord{}, fmt.Errorf("scanning meal record row: %w", err)
	}

	r.Type = model.MealType(mealType)

	return r, nil
}
