package get

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
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type PhotoGetter interface {
	ListPhotos(ctx context.Context) ([]api.PhotoResponse, error)
	PhotosByAlbum(ctx context.Context, albumID int) ([]api.PhotoResponse, error)
}

type Response struct {
	response.Response
	Photos []api.PhotoResponse `json:"photos,omitempty"`
}

func New(log *slog.Logger, getter PhotoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photos.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var (
			photos []api.PhotoResponse
			err    error
		)

		albumIDStr := chi.URLParam(r, "albumID")

		if albumIDStr != "" {
			albumID, convErr := strconv.Atoi(albumIDStr)
			if convErr != nil {
				log.Error("Invalid album id", slog.String("album_id", albumIDStr))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "album id must be a number"))
				return
			}

			photos, err = getter.PhotosByAlbum(r.Context(), albumID)
		} else {
			photos, err = getter.ListPhotos(r.Context())
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Album not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "album not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list photos", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list photos"))
			return
		}

		log.Info("Photos retrieved", slog.Int("count", len(photos)))

		render.JSON(w, r, Response{Photos: photos})
	}
}
