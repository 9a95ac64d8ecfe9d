package selectslot

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

type SlotSelector interface {
	SelectSlot(ctx context.Context, sessionID string, dayIndex, hour int) (*api.CalendarResponse, error)
}

type Request struct {
	DayIndex int `json:"day_index"`
	Hour     int `json:"hour"`
}

type Response struct {
	response.Response
	Calendar *api.CalendarResponse `json:"calendar,omitempty"`
}

func New(log *slog.Logger, selector SlotSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.selectslot.New"

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

		if req.DayIndex < 0 || req.DayIndex > 6 {
			log.Error("day_index out of range", slog.Int("day_index", req.DayIndex))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "day_index must be between 0 and 6"))
			return
		}

		sessionID := widget.SessionID(w, r)

		cal, err := selector.SelectSlot(r.Context(), sessionID, req.DayIndex, req.Hour)
		if err != nil {
			log.Error("Failed to select slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to select slot"))
			return
		}

		render.JSON(w, r, Response{Calendar: cal})
	}
}
