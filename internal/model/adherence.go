package model

// AdherenceState is the tri-state adherence status of a medication for a
// day, plus not-applicable for days the medication is not due.
//
// Within a day the state only ever advances not-taken -> partial ->
// complete, because dose records are append-only and consumed amounts
// never decrease. It resets implicitly at date rollover since every
// computation is scoped to a single day's records.
type AdherenceState string

const (
	AdherenceNotApplicable AdherenceState = "not-applicable"
	AdherenceNotTaken      AdherenceState = "not-taken"
	AdherencePartial       AdherenceState = "partial"
	AdherenceComplete      AdherenceState = "complete"
)
