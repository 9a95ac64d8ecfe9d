package api

import "time"

// Backend wire types. Field names follow the backend's JSON contract.

type AlbumResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
	SortOrder   int    `json:"sort_order"`
}

type AlbumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

type AlbumReorderRequest struct {
	AlbumIDs []int `json:"album_ids"`
}

type PhotoResponse struct {
	ID           int    `json:"id"`
	AlbumID      int    `json:"album_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type PhotoUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AlbumID     *int    `json:"album_id,omitempty"`
}

type BookingRequest struct {
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone string    `json:"client_phone,omitempty"`
	ServiceName string    `json:"service_name"`
	BookingDate time.Time `json:"booking_date"`
	Notes       string    `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID          int       `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone string    `json:"client_phone,omitempty"`
	ServiceName string    `json:"service_name"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

// PublicBookingResponse is the trimmed shape of GET /bookings/public:
// enough to block out occupied slots, nothing about the client.
type PublicBookingResponse struct {
	ID          int       `json:"id"`
	BookingDate time.Time `json:"booking_date"`
	Notes       string    `json:"notes,omitempty"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Calendar widget types served by this service.

type CalendarDay struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type CalendarCell struct {
	Available bool `json:"available"`
	Past      bool `json:"past"`
	Booked    bool `json:"booked"`
	Selected  bool `json:"selected"`
}

type SelectionResponse struct {
	DayIndex int    `json:"day_index"`
	Rows     []int  `json:"rows"`
	Range    string `json:"range"`
}

type CalendarResponse struct {
	WeekStart string             `json:"week_start"`
	Days      []CalendarDay      `json:"days"`
	Slots     []string           `json:"slots"`
	Cells     [][]CalendarCell   `json:"cells"`
	Selection *SelectionResponse `json:"selection,omitempty"`
}
