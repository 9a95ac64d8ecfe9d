package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-web/internal/models"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestWeekDays(t *testing.T) {
	cases := []struct {
		name   string
		anchor time.Time
		monday time.Time
	}{
		{"wednesday anchor", date(2024, time.March, 13, 15), date(2024, time.March, 11, 0)},
		{"monday anchor", date(2024, time.March, 11, 0), date(2024, time.March, 11, 0)},
		{"sunday anchor maps six days back", date(2024, time.March, 17, 23), date(2024, time.March, 11, 0)},
		{"across month boundary", date(2024, time.April, 2, 9), date(2024, time.April, 1, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days := WeekDays(tc.anchor)

			require.Len(t, days, 7)
			assert.Equal(t, tc.monday, days[0])
			assert.Equal(t, time.Monday, days[0].Weekday())

			for i := 1; i < 7; i++ {
				assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
			}
		})
	}
}

func TestWeekDaysContainAnchor(t *testing.T) {
	for offset := 0; offset < 14; offset++ {
		anchor := date(2024, time.February, 26, 12).AddDate(0, 0, offset)
		days := WeekDays(anchor)

		found := false
		for _, d := range days {
			if d.Year() == anchor.Year() && d.YearDay() == anchor.YearDay() {
				found = true
			}
		}
		assert.True(t, found, "week of %s must contain the anchor", anchor)
	}
}

func TestGridLabels(t *testing.T) {
	g := DefaultGrid()

	labels := g.Labels()

	require.Len(t, labels, 11)
	assert.Equal(t, "08:00", labels[0])
	assert.Equal(t, "18:00", labels[10])
}

func TestIsPast(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 12, 20) // cutoff is 2024-03-13 08:00

	assert.True(t, g.IsPast(date(2024, time.March, 12, 0), 18, now))
	assert.True(t, g.IsPast(date(2024, time.March, 13, 0), 7, now))

	// A slot exactly at now+minAdvance is still bookable.
	assert.False(t, g.IsPast(date(2024, time.March, 13, 0), 8, now))
	assert.False(t, g.IsPast(date(2024, time.March, 13, 0), 9, now))
}

func TestIsPastMonotonic(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 12, 20)

	day := date(2024, time.March, 13, 0)
	wasPast := true
	for h := g.StartHour; h <= g.EndHour; h++ {
		past := g.IsPast(day, h, now)
		if !wasPast {
			assert.False(t, past, "hour %d past although an earlier hour was not", h)
		}
		wasPast = past
	}
}

func TestIsBooked(t *testing.T) {
	bookings := []models.ExistingBooking{
		{Start: date(2024, time.March, 11, 10), DurationHours: 2},
	}

	day := date(2024, time.March, 11, 0)

	assert.False(t, IsBooked(day, 9, bookings))
	assert.True(t, IsBooked(day, 10, bookings))
	assert.True(t, IsBooked(day, 11, bookings))

	// Half-open interval: the slot at start+duration is free.
	assert.False(t, IsBooked(day, 12, bookings))

	assert.False(t, IsBooked(date(2024, time.March, 12, 0), 10, bookings))
}

func TestParseDurationHours(t *testing.T) {
	assert.Equal(t, 2, ParseDurationHours("Duration: 2 hour(s)"))
	assert.Equal(t, 1, ParseDurationHours("Duration: 1 hour(s)"))
	assert.Equal(t, 3, ParseDurationHours("Duration: 3 hour(s)\nplease call ahead"))
	assert.Equal(t, 1, ParseDurationHours("looking forward to it"))
	assert.Equal(t, 1, ParseDurationHours(""))
	assert.Equal(t, 1, ParseDurationHours("Duration: 0 hour(s)"))
}

func TestSelectionClick(t *testing.T) {
	s := &Selection{}

	s.Click(2, 3)
	assert.Equal(t, 2, s.DayIndex)
	assert.Equal(t, []int{3}, s.Rows)

	// Idempotent add.
	s.Click(2, 3)
	assert.Equal(t, []int{3}, s.Rows)

	// Rows stay sorted regardless of click order.
	s.Click(2, 1)
	s.Click(2, 5)
	assert.Equal(t, []int{1, 3, 5}, s.Rows)

	// A different day column discards the old block.
	s.Click(4, 0)
	assert.Equal(t, 4, s.DayIndex)
	assert.Equal(t, []int{0}, s.Rows)
}

func TestReservationRange(t *testing.T) {
	g := DefaultGrid()

	s := &Selection{DayIndex: 0, Rows: []int{1}}
	assert.Equal(t, "09:00 - 10:00", g.ReservationRange(s))

	// Clicking 09:00 and 11:00 with a gap at 10:00 renders one span.
	s.Rows = []int{1, 3}
	assert.Equal(t, "09:00 - 12:00", g.ReservationRange(s))

	assert.Equal(t, "", g.ReservationRange(nil))
	assert.Equal(t, "", g.ReservationRange(&Selection{}))
}

func TestWidgetClickSlot(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 10, 12)

	w := NewWidget(now)
	require.Equal(t, date(2024, time.March, 4, 0), w.Anchor)

	w.Navigate(1)
	require.Equal(t, date(2024, time.March, 11, 0), w.Anchor)

	bookings := []models.ExistingBooking{
		{Start: date(2024, time.March, 13, 10), DurationHours: 2},
	}

	// Booked slot: ignored.
	assert.False(t, w.ClickSlot(g, 2, 10, now, bookings))
	assert.True(t, w.Selection.Empty())

	// Too-soon slot: ignored.
	assert.False(t, w.ClickSlot(g, 0, 8, date(2024, time.March, 11, 8), bookings))
	assert.True(t, w.Selection.Empty())

	assert.True(t, w.ClickSlot(g, 2, 9, now, bookings))
	assert.True(t, w.ClickSlot(g, 2, 12, now, bookings))
	assert.Equal(t, 2, w.Selection.DayIndex)
	assert.Equal(t, []int{1, 4}, w.Selection.Rows)

	// Out-of-range input does nothing.
	assert.False(t, w.ClickSlot(g, 7, 9, now, bookings))
	assert.False(t, w.ClickSlot(g, 2, 19, now, bookings))
}

func TestWidgetNavigateKeepsSelection(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 10, 12)

	w := NewWidget(now)
	w.Navigate(1)
	require.True(t, w.ClickSlot(g, 2, 9, now, nil))

	// Navigation does not clear the block, even though its column index
	// now addresses a day in another week.
	w.Navigate(1)
	assert.Equal(t, date(2024, time.March, 18, 0), w.Anchor)
	assert.False(t, w.Selection.Empty())

	w.Navigate(-1)
	assert.Equal(t, date(2024, time.March, 11, 0), w.Anchor)
	assert.Equal(t, []int{1}, w.Selection.Rows)
}

func TestWidgetStartInstantAndDuration(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 10, 12)

	w := NewWidget(now)

	_, err := w.StartInstant(g)
	assert.Error(t, err)
	assert.Equal(t, 0, w.DurationHours())

	w.Navigate(1)
	require.True(t, w.ClickSlot(g, 2, 11, now, nil))
	require.True(t, w.ClickSlot(g, 2, 9, now, nil))

	start, err := w.StartInstant(g)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 13, 9), start)

	// Count of clicked rows, not the span.
	assert.Equal(t, 2, w.DurationHours())
}

func TestWidgetClear(t *testing.T) {
	g := DefaultGrid()
	now := date(2024, time.March, 10, 12)

	w := NewWidget(now)
	w.Navigate(1)
	require.True(t, w.ClickSlot(g, 1, 9, now, nil))

	w.Clear()
	assert.True(t, w.Selection.Empty())
}
