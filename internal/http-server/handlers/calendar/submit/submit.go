package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"portfolio-web/api"
	"portfolio-web/internal/backend"
	"portfolio-web/internal/calendar"
	"portfolio-web/internal/widget"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type BookingSubmitter interface {
	Submit(ctx context.Context, sessionID string, contact calendar.ContactInfo) (*api.BookingResponse, error)
}

type Request struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

type Response struct {
	response.Response
	Booking *api.BookingResponse `json:"booking,omitempty"`
}

var validate = validator.New()

func New(log *slog.Logger, submitter BookingSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.submit.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if err := validate.Struct(req); err != nil {
			log.Error("Invalid contact info", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION), "name and a valid email are required"))
			return
		}

		sessionID := widget.SessionID(w, r)

		contact := calendar.ContactInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		}

		booking, err := submitter.Submit(r.Context(), sessionID, contact)

		if errors.Is(err, response.ErrEmptySelection) {
			log.Error("Submit with no slots selected")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.EMPTY_SELECTION), "select at least one slot first"))
			return
		}

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			// The backend arbitrates conflicts; its detail message is
			// shown to the visitor as-is and the selection is kept for
			// a retry.
			log.Error("Backend rejected booking",
				slog.Int("status", apiErr.Status), slog.String("detail", apiErr.Detail))

			msg := apiErr.Detail
			if msg == "" {
				msg = "could not complete the booking, please try again"
			}

			w.WriteHeader(apiErr.Status)
			render.JSON(w, r, response.Error(string(response.BOOKING_REJECTED), msg))
			return
		}

		if err != nil {
			log.Error("Failed to submit booking", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "could not complete the booking, please try again"))
			return
		}

		log.Info("Booking submitted", slog.Int("booking_id", booking.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Booking: booking})
	}
}
