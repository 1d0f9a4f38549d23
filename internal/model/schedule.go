package model

import (
	"encoding/json"
	"time"
)

// Weekday is a day-of-week tag used in medication schedules.
type Weekday string

const (
	WeekdaySunday    Weekday = "sun"
	WeekdayMonday    Weekday = "mon"
	WeekdayTuesday   Weekday = "tue"
	WeekdayWednesday Weekday = "wed"
	WeekdayThursday  Weekday = "thu"
	WeekdayFriday    Weekday = "fri"
	WeekdaySaturday  Weekday = "sat"
)

// AllWeekdays lists the weekday tags in calendar order.
var AllWeekdays = []Weekday{
	WeekdaySunday, WeekdayMonday, WeekdayTuesday, WeekdayWednesday,
	WeekdayThursday, WeekdayFriday, WeekdaySaturday,
}

// WeekdayOf maps a time.Weekday to its schedule tag.
func WeekdayOf(w time.Weekday) Weekday {
	return AllWeekdays[int(w)%7]
}

// TimeSlot is a time-of-day tag in a medication schedule.
type TimeSlot string

const (
	TimeSlotMorning TimeSlot = "morning"
	TimeSlotLunch   TimeSlot = "lunch"
	TimeSlotDinner  TimeSlot = "dinner"
	TimeSlotBedtime TimeSlot = "bedtime"
)

// Label returns the Korean display label for the slot.
func (t TimeSlot) Label() string {
	switch t {
	case TimeSlotMorning:
		return "아침"
	case TimeSlotLunch:
		return "점심"
	case TimeSlotDinner:
		return "저녁"
	case TimeSlotBedtime:
		return "자기 전"
	}
	return string(t)
}

// DaySchedule is a tagged variant distinguishing "no day restriction"
// from "restricted to these weekdays". The two states behave differently:
// an unrestricted schedule is shown as daily and is due every date, while
// a restricted schedule with an empty day set is due on no date at all.
// Collapsing the two into one slice silently diverges, so the tag is
// explicit and survives serialization (JSON null vs JSON array).
type DaySchedule struct {
	restricted bool
	days       []Weekday
}

// EveryDay returns the unrestricted schedule.
func EveryDay() DaySchedule {
	return DaySchedule{}
}

// OnDays returns a schedule restricted to the given weekdays.
// An empty argument list yields a schedule that is never due.
func OnDays(days ...Weekday) DaySchedule {
	return DaySchedule{restricted: true, days: append([]Weekday(nil), days...)}
}

// Restricted reports whether the schedule carries an explicit weekday set.
func (s DaySchedule) Restricted() bool { return s.restricted }

// Days returns the explicit weekday set; nil when unrestricted.
func (s DaySchedule) Days() []Weekday {
	if !s.restricted {
		return nil
	}
	return append([]Weekday(nil), s.days...)
}

// Contains reports whether w is in the explicit weekday set.
// It is false for unrestricted schedules; callers that want the
// "due on every date" reading must check Restricted first.
func (s DaySchedule) Contains(w Weekday) bool {
	for _, d := range s.days {
		if d == w {
			return true
		}
	}
	return false
}

// MarshalJSON encodes an unrestricted schedule as null and a restricted
// one as the array of weekday tags.
func (s DaySchedule) MarshalJSON() ([]byte, error) {
	if !s.restricted {
		return []byte("null"), nil
	}
	if s.days == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.days)
}

// UnmarshalJSON accepts null (unrestricted) or an array of weekday tags.
func (s *DaySchedule) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = DaySchedule{}
		return nil
	}
	var days []Weekday
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	if days == nil {
		days = []Weekday{}
	}
	*s = DaySchedule{restricted: true, days: days}
	return nil
}
