package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"portfolio-web/api"
	"portfolio-web/internal/auth"
	"portfolio-web/internal/backend"
	"portfolio-web/internal/models"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type StatusUpdater interface {
	UpdateBookingStatus(ctx context.Context, token string, id int, status string) (*api.BookingResponse, error)
}

type Request struct {
	Status string `json:"status"`
}

type Response struct {
	response.Response
	Booking *api.BookingResponse `json:"booking,omitempty"`
}

func validStatus(s string) bool {
	switch models.BookingStatus(s) {
	case models.BOOKING_PENDING, models.BOOKING_CONFIRMED, models.BOOKING_CANCELLED:
		return true
	}

	return false
}

func New(log *slog.Logger, updater StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.status.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("Invalid booking id")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "booking id must be a number"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if !validStatus(req.Status) {
			log.Error("Unknown booking status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "status must be pending, confirmed or cancelled"))
			return
		}

		booking, err := updater.UpdateBookingStatus(r.Context(), auth.Token(r.Context()), id, req.Status)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Booking not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			log.Error("Backend rejected status update", slog.Int("status", apiErr.Status))
			w.WriteHeader(apiErr.Status)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), apiErr.Detail))
			return
		}

		if err != nil {
			log.Error("Failed to update booking status", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update booking status"))
			return
		}

		log.Info("Booking status updated", slog.Int("id", id), slog.String("status", req.Status))

		render.JSON(w, r, Response{Booking: booking})
	}
}
