package models

import "time"

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

type Album struct {
	ID          int
	Title       string
	Description string
	IsPublic    bool
	SortOrder   int
}

type Photo struct {
	ID           int
	AlbumID      int
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string
}

type Booking struct {
	ID          int
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceName string
	BookingDate time.Time
	Status      BookingStatus
	Notes       string
}

// ExistingBooking is the slice of a public booking the calendar needs:
// when it starts and how many hourly slots it occupies.
type ExistingBooking struct {
	Start         time.Time
	DurationHours int
}
