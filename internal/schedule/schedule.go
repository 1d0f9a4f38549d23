// Package schedule resolves medication recurrence rules against dates.
//
// The resolver exposes two distinct query forms because the two readings of
// an unrestricted schedule diverge on purpose: a medication created without
// an explicit weekday set is displayed as "daily", and it is also due every
// date; a medication whose weekday set was explicitly cleared is due on no
// date at all. Callers must pick the semantics they want instead of relying
// on a single boolean.
package schedule

import (
	"time"

	"github.com/yurim-dev/healthmate/internal/model"
)

// IsScheduledDaily reports the display semantics: a medication with no
// explicit weekday restriction is shown as taken every day.
func IsScheduledDaily(m model.Medication) bool {
	return !m.Schedule.Restricted()
}

// IsDueOn reports the adherence-counting semantics for a date:
// unrestricted schedules are due every date, an explicitly empty weekday
// set is due never, and otherwise the date's weekday must be a member.
func IsDueOn(m model.Medication, date time.Time) bool {
	if !m.Schedule.Restricted() {
		return true
	}
	return m.Schedule.Contains(model.WeekdayOf(date.Weekday()))
}
