package navigate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"portfolio-web/api"
	"portfolio-web/internal/widget"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type WeekNavigator interface {
	Navigate(ctx context.Context, sessionID string, deltaWeeks int) (*api.CalendarResponse, error)
}

type Request struct {
	Direction string `json:"direction"`
}

type Response struct {
	response.Response
	Calendar *api.CalendarResponse `json:"calendar,omitempty"`
}

func New(log *slog.Logger, navigator WeekNavigator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.navigate.New"

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

		var delta int
		switch req.Direction {
		case "previous":
			delta = -1
		case "next":
			delta = 1
		default:
			log.Error("Unknown direction", slog.String("direction", req.Direction))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "direction must be 'previous' or 'next'"))
			return
		}

		sessionID := widget.SessionID(w, r)

		cal, err := navigator.Navigate(r.Context(), sessionID, delta)
		if err != nil {
			log.Error("Failed to navigate week", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to navigate week"))
			return
		}

		log.Info("Week changed", slog.String("week_start", cal.WeekStart))

		render.JSON(w, r, Response{Calendar: cal})
	}
}
