package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"portfolio-web/internal/auth"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type PhotoDeleter interface {
	DeletePhoto(ctx context.Context, token string, id int) error
}

func New(log *slog.Logger, deleter PhotoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photos.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("Invalid photo id")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "photo id must be a number"))
			return
		}

		err = deleter.DeletePhoto(r.Context(), auth.Token(r.Context()), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Photo not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "photo not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete photo", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete photo"))
			return
		}

		log.Info("Photo deleted", slog.Int("id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
