package schedule_test

import (
	"testing"
	"time"

	"github.com/finfam/family_finance_app/internal/utils/schedule"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"mid-month step", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"two months", date(2024, time.January, 15), 2, date(2024, time.March, 15)},
		{"jan 31 clamps to leap feb", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 clamps to non-leap feb", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"aug 31 clamps to sep 30", date(2024, time.August, 31), 1, date(2024, time.September, 30)},
		{"year rollover", date(2024, time.November, 15), 3, date(2025, time.February, 15)},
		{"zero months", date(2024, time.January, 15), 0, date(2024, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestNextDayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		day  int
		from time.Time
		want time.Time
	}{
		{"upcoming this month", 20, date(2024, time.February, 15), date(2024, time.February, 20)},
		{"already passed rolls over", 10, date(2024, time.February, 15), date(2024, time.March, 10)},
		{"day 31 clamps to leap feb", 31, date(2024, time.February, 15), date(2024, time.February, 29)},
		{"day 31 clamps to non-leap feb", 31, date(2023, time.February, 15), date(2023, time.February, 28)},
		{"same day counts as due", 15, date(2024, time.February, 15), date(2024, time.February, 15)},
		{"december rolls into january", 5, date(2024, time.December, 20), date(2025, time.January, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.NextDayOfMonth(tt.day, tt.from))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, schedule.DaysUntil(now, now))
	assert.Equal(t, 1, schedule.DaysUntil(now.Add(6*time.Hour), now), "partial day rounds up")
	assert.Equal(t, 5, schedule.DaysUntil(now.Add(5*24*time.Hour), now))
	assert.Equal(t, -1, schedule.DaysUntil(now.Add(-30*time.Hour), now), "past due is negative")
	assert.Equal(t, -3, schedule.DaysUntil(now.Add(-3*24*time.Hour), now))
}
