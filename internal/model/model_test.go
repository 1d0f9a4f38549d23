package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurim-dev/healthmate/internal/model"
)

func TestDosageDailyAmount(t *testing.T) {
	tests := []struct {
		name   string
		dosage model.Dosage
		want   float64
	}{
		{
			name: "daily multiplies amount by intake count",
			dosage: model.Dosage{
				Method:          model.DoseMethodDaily,
				Unit:            model.DoseUnitPill,
				AmountPerIntake: 2,
				TimesPerDay:     3,
			},
			want: 6,
		},
		{
			name: "total passes the amount through",
			dosage: model.Dosage{
				Method:      model.DoseMethodTotal,
				Unit:        model.DoseUnitML,
				TotalAmount: 15,
			},
			want: 15,
		},
		{
			name: "daily with zero intakes is zero",
			dosage: model.Dosage{
				Method:          model.DoseMethodDaily,
				AmountPerIntake: 2,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dosage.DailyAmount())
		})
	}
}

func TestDayScheduleJSON(t *testing.T) {
	t.Run("unrestricted encodes as null", func(t *testing.T) {
		b, err := json.Marshal(model.EveryDay())
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))

		var s model.DaySchedule
		require.NoError(t, json.Unmarshal(b, &s))
		assert.False(t, s.Restricted())
	})

	t.Run("explicitly empty stays restricted", func(t *testing.T) {
		b, err := json.Marshal(model.OnDays())
		require.NoError(t, err)
		assert.Equal(t, "[]", string(b))

		var s model.DaySchedule
		require.NoError(t, json.Unmarshal(b, &s))
		assert.True(t, s.Restricted())
		assert.Empty(t, s.Days())
	})

	t.Run("weekday set round-trips", func(t *testing.T) {
		orig := model.OnDays(model.WeekdayMonday, model.WeekdayFriday)
		b, err := json.Marshal(orig)
		require.NoError(t, err)

		var s model.DaySchedule
		require.NoError(t, json.Unmarshal(b, &s))
		assert.True(t, s.Restricted())
		assert.Equal(t, []model.Weekday{model.WeekdayMonday, model.WeekdayFriday}, s.Days())
		assert.True(t, s.Contains(model.WeekdayFriday))
		assert.False(t, s.Contains(model.WeekdaySunday))
	})
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, model.WeekdaySunday, model.WeekdayOf(time.Sunday))
	assert.Equal(t, model.WeekdayMonday, model.WeekdayOf(time.Monday))
	assert.Equal(t, model.WeekdaySaturday, model.WeekdayOf(time.Saturday))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2025-03-10", model.DateOf(ts))
}
