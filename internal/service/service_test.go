package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-web/api"
	"portfolio-web/internal/backend"
	"portfolio-web/internal/calendar"
	"portfolio-web/pkg/response"
)

type fakeStore struct {
	widgets map[string]*calendar.Widget
}

func newFakeStore() *fakeStore {
	return &fakeStore{widgets: make(map[string]*calendar.Widget)}
}

func (f *fakeStore) Get(_ context.Context, sessionID string) (*calendar.Widget, error) {
	return f.widgets[sessionID], nil
}

func (f *fakeStore) Save(_ context.Context, sessionID string, w *calendar.Widget) error {
	f.widgets[sessionID] = w
	return nil
}

type fakeBackend struct {
	public    []api.PublicBookingResponse
	publicErr error
	created   []*api.BookingRequest
	createErr error
}

func (f *fakeBackend) PublicBookings(context.Context) ([]api.PublicBookingResponse, error) {
	return f.public, f.publicErr
}

func (f *fakeBackend) CreateBooking(_ context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.created = append(f.created, req)

	return &api.BookingResponse{
		ID:          len(f.created),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ServiceName: req.ServiceName,
		BookingDate: req.BookingDate,
		Status:      "pending",
		Notes:       req.Notes,
	}, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func newTestService(be *fakeBackend) (*Service, *fakeStore) {
	store := newFakeStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := NewService(log, store, be, noopCache{}, calendar.DefaultGrid(), "Photo Session", time.Minute)
	s.now = func() time.Time { return date(2024, time.March, 11, 8) }

	return s, store
}

func TestViewMarksBookedSlots(t *testing.T) {
	be := &fakeBackend{
		public: []api.PublicBookingResponse{
			{ID: 1, BookingDate: date(2024, time.March, 13, 10), Notes: "Duration: 2 hour(s)"},
		},
	}
	s, _ := newTestService(be)

	cal, err := s.View(context.Background(), "sess")
	require.NoError(t, err)

	require.Len(t, cal.Days, 7)
	assert.Equal(t, "2024-03-11", cal.WeekStart)
	assert.Equal(t, "Monday", cal.Days[0].Label)

	// Wednesday 10:00 and 11:00 occupied, 12:00 free.
	assert.True(t, cal.Cells[2][2].Booked)
	assert.True(t, cal.Cells[2][3].Booked)
	assert.False(t, cal.Cells[2][4].Booked)
	assert.True(t, cal.Cells[2][4].Available)
}

func TestViewFailsOpenOnFetchError(t *testing.T) {
	be := &fakeBackend{publicErr: errors.New("backend down")}
	s, _ := newTestService(be)

	cal, err := s.View(context.Background(), "sess")
	require.NoError(t, err)

	for d := range cal.Cells {
		for _, cell := range cal.Cells[d] {
			assert.False(t, cell.Booked)
		}
	}
}

func TestSelectSlotBuildsBlock(t *testing.T) {
	s, _ := newTestService(&fakeBackend{})
	ctx := context.Background()

	cal, err := s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)
	require.NotNil(t, cal.Selection)
	assert.Equal(t, 2, cal.Selection.DayIndex)
	assert.Equal(t, []int{1}, cal.Selection.Rows)

	// Same click again: unchanged.
	cal, err = s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, cal.Selection.Rows)

	// Gap at 10:00 still renders one contiguous span.
	cal, err = s.SelectSlot(ctx, "sess", 2, 11)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, cal.Selection.Rows)
	assert.Equal(t, "09:00 - 12:00", cal.Selection.Range)

	// New column discards the previous block.
	cal, err = s.SelectSlot(ctx, "sess", 4, 14)
	require.NoError(t, err)
	assert.Equal(t, 4, cal.Selection.DayIndex)
	assert.Equal(t, []int{6}, cal.Selection.Rows)
}

func TestSelectSlotIgnoresUnavailable(t *testing.T) {
	be := &fakeBackend{
		public: []api.PublicBookingResponse{
			{ID: 1, BookingDate: date(2024, time.March, 13, 10), Notes: "Duration: 1 hour(s)"},
		},
	}
	s, _ := newTestService(be)

	cal, err := s.SelectSlot(context.Background(), "sess", 2, 10)
	require.NoError(t, err)
	assert.Nil(t, cal.Selection)

	// Monday 08:00 is inside the 12h minimum advance at 08:00 "now".
	cal, err = s.SelectSlot(context.Background(), "sess", 0, 8)
	require.NoError(t, err)
	assert.Nil(t, cal.Selection)
}

func TestNavigateKeepsSelection(t *testing.T) {
	s, _ := newTestService(&fakeBackend{})
	ctx := context.Background()

	_, err := s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)

	cal, err := s.Navigate(ctx, "sess", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", cal.WeekStart)
	require.NotNil(t, cal.Selection)
	assert.Equal(t, []int{1}, cal.Selection.Rows)

	cal, err = s.Navigate(ctx, "sess", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", cal.WeekStart)
}

func TestClearSelection(t *testing.T) {
	s, _ := newTestService(&fakeBackend{})
	ctx := context.Background()

	_, err := s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)

	cal, err := s.ClearSelection(ctx, "sess")
	require.NoError(t, err)
	assert.Nil(t, cal.Selection)
}

func TestSubmitWithoutSelection(t *testing.T) {
	s, _ := newTestService(&fakeBackend{})

	_, err := s.Submit(context.Background(), "sess", calendar.ContactInfo{Name: "Anna", Email: "anna@example.com"})
	assert.ErrorIs(t, err, response.ErrEmptySelection)
}

func TestSubmitBuildsBookingRequest(t *testing.T) {
	be := &fakeBackend{}
	s, store := newTestService(be)
	ctx := context.Background()

	_, err := s.SelectSlot(ctx, "sess", 2, 11)
	require.NoError(t, err)
	_, err = s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)

	booking, err := s.Submit(ctx, "sess", calendar.ContactInfo{
		Name:    "Anna Nowak",
		Email:   "anna@example.com",
		Phone:   "123123123",
		Message: "outdoor shoot preferred",
	})
	require.NoError(t, err)
	require.Len(t, be.created, 1)

	req := be.created[0]
	assert.Equal(t, "Anna Nowak", req.ClientName)
	assert.Equal(t, "Photo Session", req.ServiceName)
	assert.Equal(t, date(2024, time.March, 13, 9), req.BookingDate)
	assert.Contains(t, req.Notes, "Duration: 2 hour(s)")
	assert.Contains(t, req.Notes, "outdoor shoot preferred")
	assert.Equal(t, "pending", booking.Status)

	// Success clears the stored selection.
	w, _ := store.Get(ctx, "sess")
	assert.True(t, w.Selection.Empty())
}

func TestSubmitFailureKeepsSelection(t *testing.T) {
	be := &fakeBackend{
		createErr: &backend.APIError{Status: 409, Detail: "Slot already booked"},
	}
	s, store := newTestService(be)
	ctx := context.Background()

	_, err := s.SelectSlot(ctx, "sess", 2, 9)
	require.NoError(t, err)

	_, err = s.Submit(ctx, "sess", calendar.ContactInfo{Name: "Anna", Email: "anna@example.com"})
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Slot already booked", apiErr.Detail)

	w, _ := store.Get(ctx, "sess")
	assert.False(t, w.Selection.Empty())
}
