package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-web/api"
	"portfolio-web/internal/calendar"
	"portfolio-web/internal/models"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type Service struct {
	log         *slog.Logger
	store       WidgetStore
	backend     Backend
	cache       Cache
	grid        calendar.Grid
	serviceName string
	cacheTTL    time.Duration
	now         func() time.Time
}

type WidgetStore interface {
	Get(ctx context.Context, sessionID string) (*calendar.Widget, error)
	Save(ctx context.Context, sessionID string, w *calendar.Widget) error
}

type Backend interface {
	PublicBookings(ctx context.Context) ([]api.PublicBookingResponse, error)
	CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error)
}

type Cache interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

func NewService(log *slog.Logger, store WidgetStore, backend Backend, cache Cache, grid calendar.Grid, serviceName string, cacheTTL time.Duration) *Service {
	return &Service{
		log:         log,
		store:       store,
		backend:     backend,
		cache:       cache,
		grid:        grid,
		serviceName: serviceName,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

const bookingsCacheKey = "bookings:public"

func (s *Service) widget(ctx context.Context, sessionID string) (*calendar.Widget, error) {
	const op = "service.widget"

	w, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if w == nil {
		w = calendar.NewWidget(s.now())
	}

	return w, nil
}

// existingBookings returns the occupied slots fetched from the backend's
// public booking list. A fetch failure is logged and degrades to an
// empty list: availability fails open.
func (s *Service) existingBookings(ctx context.Context) []models.ExistingBooking {
	const op = "service.existingBookings"

	var bookings []models.ExistingBooking

	hit, err := s.cache.Get(ctx, bookingsCacheKey, &bookings)
	if err != nil {
		s.log.Warn("Bookings cache read failed", slog.String("op", op), sl.Err(err))
	}
	if hit {
		return bookings
	}

	public, err := s.backend.PublicBookings(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch public bookings, showing all slots as free",
			slog.String("op", op), sl.Err(err))

		return nil
	}

	bookings = make([]models.ExistingBooking, len(public))
	for i, b := range public {
		bookings[i] = models.ExistingBooking{
			Start:         b.BookingDate,
			DurationHours: calendar.ParseDurationHours(b.Notes),
		}
	}

	if err := s.cache.Set(ctx, bookingsCacheKey, bookings, s.cacheTTL); err != nil {
		s.log.Warn("Bookings cache write failed", slog.String("op", op), sl.Err(err))
	}

	return bookings
}

func (s *Service) render(w *calendar.Widget, bookings []models.ExistingBooking) *api.CalendarResponse {
	now := s.now()
	week := w.Week()
	hours := s.grid.Hours()

	days := make([]api.CalendarDay, len(week))
	cells := make([][]api.CalendarCell, len(week))

	for d, day := range week {
		days[d] = api.CalendarDay{
			Date:  day.Format("2006-01-02"),
			Label: day.Weekday().String(),
		}

		cells[d] = make([]api.CalendarCell, len(hours))
		for row, hour := range hours {
			past := s.grid.IsPast(day, hour, now)
			booked := calendar.IsBooked(day, hour, bookings)

			cells[d][row] = api.CalendarCell{
				Available: !past && !booked,
				Past:      past,
				Booked:    booked,
				Selected:  w.Selection.Contains(d, row),
			}
		}
	}

	resp := &api.CalendarResponse{
		WeekStart: week[0].Format("2006-01-02"),
		Days:      days,
		Slots:     s.grid.Labels(),
		Cells:     cells,
	}

	if !w.Selection.Empty() {
		resp.Selection = &api.SelectionResponse{
			DayIndex: w.Selection.DayIndex,
			Rows:     w.Selection.Rows,
			Range:    s.grid.ReservationRange(w.Selection),
		}
	}

	return resp
}

// View renders the visitor's current calendar week.
func (s *Service) View(ctx context.Context, sessionID string) (*api.CalendarResponse, error) {
	const op = "service.View"

	w, err := s.widget(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := s.existingBookings(ctx)

	if err := s.store.Save(ctx, sessionID, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.render(w, bookings), nil
}

// Navigate shifts the visible week. The in-progress selection is kept,
// matching the widget's established behavior, even though its column
// index now points into a different week.
func (s *Service) Navigate(ctx context.Context, sessionID string, deltaWeeks int) (*api.CalendarResponse, error) {
	const op = "service.Navigate"

	w, err := s.widget(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.Navigate(deltaWeeks)

	if err := s.store.Save(ctx, sessionID, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.render(w, s.existingBookings(ctx)), nil
}

// SelectSlot applies one slot click. Clicks on past or booked slots are
// ignored and simply re-render the grid.
func (s *Service) SelectSlot(ctx context.Context, sessionID string, dayIndex, hour int) (*api.CalendarResponse, error) {
	const op = "service.SelectSlot"

	w, err := s.widget(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := s.existingBookings(ctx)

	if changed := w.ClickSlot(s.grid, dayIndex, hour, s.now(), bookings); changed {
		if err := s.store.Save(ctx, sessionID, w); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		s.log.Debug("Ignored click on unavailable slot",
			slog.Int("day_index", dayIndex), slog.Int("hour", hour))
	}

	return s.render(w, bookings), nil
}

// ClearSelection drops the in-progress block.
func (s *Service) ClearSelection(ctx context.Context, sessionID string) (*api.CalendarResponse, error) {
	const op = "service.ClearSelection"

	w, err := s.widget(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.Clear()

	if err := s.store.Save(ctx, sessionID, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.render(w, s.existingBookings(ctx)), nil
}

// Submit converts the selection block into a booking request and sends
// it to the backend. On success the selection is cleared; on failure it
// is kept so the visitor can retry.
func (s *Service) Submit(ctx context.Context, sessionID string, contact calendar.ContactInfo) (*api.BookingResponse, error) {
	const op = "service.Submit"

	w, err := s.widget(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start, err := w.StartInstant(s.grid)
	if err != nil {
		return nil, response.ErrEmptySelection
	}

	notes := calendar.EncodeDurationNotes(w.DurationHours())
	if contact.Message != "" {
		notes += "\n" + contact.Message
	}

	req := &api.BookingRequest{
		ClientName:  contact.Name,
		ClientEmail: contact.Email,
		ClientPhone: contact.Phone,
		ServiceName: s.serviceName,
		BookingDate: start,
		Notes:       notes,
	}

	booking, err := s.backend.CreateBooking(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.Clear()
	if err := s.store.Save(ctx, sessionID, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}
