package update

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
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type AlbumUpdater interface {
	UpdateAlbum(ctx context.Context, token string, id int, req *api.AlbumRequest) (*api.AlbumResponse, error)
}

type Request struct {
	api.AlbumRequest
}

type Response struct {
	response.Response
	Album *api.AlbumResponse `json:"album,omitempty"`
}

func New(log *slog.Logger, updater AlbumUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.albums.update.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("Invalid album id")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "album id must be a number"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		album, err := updater.UpdateAlbum(r.Context(), auth.Token(r.Context()), id, &req.AlbumRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Album not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "album not found"))
			return
		}

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			log.Error("Backend rejected update", slog.Int("status", apiErr.Status))
			w.WriteHeader(apiErr.Status)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), apiErr.Detail))
			return
		}

		if err != nil {
			log.Error("Failed to update album", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update album"))
			return
		}

		log.Info("Album updated", slog.Int("id", id))

		render.JSON(w, r, Response{Album: album})
	}
}
