package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"portfolio-web/internal/models"
	"portfolio-web/pkg/response"
)

// Grid describes the bookable hour range and the minimum lead time a
// slot must keep ahead of "now" before it counts as past.
type Grid struct {
	StartHour  int
	EndHour    int
	MinAdvance time.Duration
}

const (
	DefaultStartHour       = 8
	DefaultEndHour         = 18
	DefaultMinAdvanceHours = 12
)

func DefaultGrid() Grid {
	return Grid{
		StartHour:  DefaultStartHour,
		EndHour:    DefaultEndHour,
		MinAdvance: DefaultMinAdvanceHours * time.Hour,
	}
}

// durationPattern matches the duration the widget encodes into the notes
// field of a booking ("Duration: 2 hour(s)"). The backend contract has no
// structured duration field, so both sides share this encoding.
var durationPattern = regexp.MustCompile(`Duration: (\d+) hour`)

// ParseDurationHours extracts the occupied-hours count from a booking's
// notes. Bookings without the marker count as one hour.
func ParseDurationHours(notes string) int {
	m := durationPattern.FindStringSubmatch(notes)
	if m == nil {
		return 1
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}

	return n
}

func EncodeDurationNotes(hours int) string {
	return fmt.Sprintf("Duration: %d hour(s)", hours)
}

// WeekOf returns the Monday 00:00 of the week containing anchor.
// Sunday is treated as day 7, so a Sunday anchor maps six days back.
func WeekOf(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	shift := (int(day.Weekday()) + 6) % 7

	return day.AddDate(0, 0, -shift)
}

// WeekDays returns the seven consecutive days Monday..Sunday of the week
// containing anchor.
func WeekDays(anchor time.Time) []time.Time {
	monday := WeekOf(anchor)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}

	return days
}

func (g Grid) Hours() []int {
	hours := make([]int, 0, g.EndHour-g.StartHour+1)
	for h := g.StartHour; h <= g.EndHour; h++ {
		hours = append(hours, h)
	}

	return hours
}

func (g Grid) Labels() []string {
	hours := g.Hours()

	labels := make([]string, len(hours))
	for i, h := range hours {
		labels[i] = HourLabel(h)
	}

	return labels
}

func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SlotInstant pins an hour row onto a calendar day.
func SlotInstant(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// IsPast reports whether day@hour is too close to book. The cutoff
// instant itself is still bookable.
func (g Grid) IsPast(day time.Time, hour int, now time.Time) bool {
	return SlotInstant(day, hour).Before(now.Add(g.MinAdvance))
}

// IsBooked reports whether day@hour falls inside [start, start+duration)
// of any existing booking. The slot at exactly start+duration is free.
func IsBooked(day time.Time, hour int, bookings []models.ExistingBooking) bool {
	slot := SlotInstant(day, hour)

	for _, b := range bookings {
		end := b.Start.Add(time.Duration(b.DurationHours) * time.Hour)
		if !slot.Before(b.Start) && slot.Before(end) {
			return true
		}
	}

	return false
}

func (g Grid) CanSelect(day time.Time, hour int, now time.Time, bookings []models.ExistingBooking) bool {
	return !g.IsPast(day, hour, now) && !IsBooked(day, hour, bookings)
}

// Selection is the block of hour rows picked within a single day column.
type Selection struct {
	DayIndex int   `json:"day_index"`
	Rows     []int `json:"rows"`
}

// Click folds one more row into the selection. A click in a different
// day column discards the old block and starts over with a single row.
// Within the same column the row is inserted in ascending order; rows
// are never removed, so re-clicking an included row is a no-op.
func (s *Selection) Click(dayIndex, row int) {
	if s.DayIndex != dayIndex || len(s.Rows) == 0 {
		s.DayIndex = dayIndex
		s.Rows = []int{row}
		return
	}

	for i, r := range s.Rows {
		if r == row {
			return
		}
		if r > row {
			s.Rows = append(s.Rows[:i], append([]int{row}, s.Rows[i:]...)...)
			return
		}
	}

	s.Rows = append(s.Rows, row)
}

func (s *Selection) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

func (s *Selection) Contains(dayIndex, row int) bool {
	if s.Empty() || s.DayIndex != dayIndex {
		return false
	}

	for _, r := range s.Rows {
		if r == row {
			return true
		}
	}

	return false
}

// ReservationRange renders the block as one span from the earliest row
// to one hour past the latest. Gaps between clicked rows are bridged;
// contiguity is deliberately not enforced.
func (g Grid) ReservationRange(s *Selection) string {
	if s.Empty() {
		return ""
	}

	first := g.StartHour + s.Rows[0]
	last := g.StartHour + s.Rows[len(s.Rows)-1]

	return HourLabel(first) + " - " + HourLabel(last+1)
}

// ContactInfo is what the visitor fills into the confirmation form.
type ContactInfo struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Widget is one visitor's calendar state: the anchored week plus the
// in-progress selection. Week navigation keeps the selection; the block
// is addressed by column index only.
type Widget struct {
	Anchor    time.Time  `json:"anchor"`
	Selection *Selection `json:"selection,omitempty"`
}

func NewWidget(now time.Time) *Widget {
	return &Widget{Anchor: WeekOf(now)}
}

func (w *Widget) Week() []time.Time {
	return WeekDays(w.Anchor)
}

// Navigate shifts the anchor by whole weeks.
func (w *Widget) Navigate(deltaWeeks int) {
	w.Anchor = w.Anchor.AddDate(0, 0, 7*deltaWeeks)
}

// ClickSlot applies one slot click. Clicks on past or booked slots are
// ignored. Reports whether the selection changed.
func (w *Widget) ClickSlot(g Grid, dayIndex, hour int, now time.Time, bookings []models.ExistingBooking) bool {
	if dayIndex < 0 || dayIndex > 6 || hour < g.StartHour || hour > g.EndHour {
		return false
	}

	day := w.Week()[dayIndex]
	if !g.CanSelect(day, hour, now, bookings) {
		return false
	}

	if w.Selection == nil {
		w.Selection = &Selection{DayIndex: dayIndex}
	}
	w.Selection.Click(dayIndex, hour-g.StartHour)

	return true
}

func (w *Widget) Clear() {
	w.Selection = nil
}

// StartInstant is the booking start derived from the block: the day at
// the block's column, at the hour of its earliest row.
func (w *Widget) StartInstant(g Grid) (time.Time, error) {
	if w.Selection.Empty() {
		return time.Time{}, response.ErrEmptySelection
	}

	day := w.Week()[w.Selection.DayIndex]

	return SlotInstant(day, g.StartHour+w.Selection.Rows[0]), nil
}

// DurationHours is the number of clicked rows, not the span between the
// first and last row.
func (w *Widget) DurationHours() int {
	if w.Selection.Empty() {
		return 0
	}

	return len(w.Selection.Rows)
}
