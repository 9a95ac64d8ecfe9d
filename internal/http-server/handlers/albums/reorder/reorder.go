package reorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"portfolio-web/internal/auth"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type AlbumReorderer interface {
	ReorderAlbums(ctx context.Context, token string, albumIDs []int) error
}

type Request struct {
	AlbumIDs []int `json:"album_ids"`
}

func New(log *slog.Logger, reorderer AlbumReorderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.albums.reorder.New"

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

		if len(req.AlbumIDs) == 0 {
			log.Error("album_ids is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "album_ids is required"))
			return
		}

		if err := reorderer.ReorderAlbums(r.Context(), auth.Token(r.Context()), req.AlbumIDs); err != nil {
			log.Error("Failed to reorder albums", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to reorder albums"))
			return
		}

		log.Info("Albums reordered", slog.Int("count", len(req.AlbumIDs)))

		render.JSON(w, r, response.Response{})
	}
}
