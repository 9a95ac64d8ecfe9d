package view

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

type CalendarViewer interface {
	View(ctx context.Context, sessionID string) (*api.CalendarResponse, error)
}

type Response struct {
	response.Response
	Calendar *api.CalendarResponse `json:"calendar,omitempty"`
}

func New(log *slog.Logger, viewer CalendarViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.view.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID := widget.SessionID(w, r)

		cal, err := viewer.View(r.Context(), sessionID)
		if err != nil {
			log.Error("Failed to render calendar", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to render calendar"))
			return
		}

		render.JSON(w, r, Response{Calendar: cal})
	}
}
