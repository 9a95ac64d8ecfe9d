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

type AlbumGetter interface {
	ListAlbums(ctx context.Context) ([]api.AlbumResponse, error)
	GetAlbum(ctx context.Context, id int) (*api.AlbumResponse, error)
}

type Response struct {
	response.Response
	Albums []api.AlbumResponse `json:"albums,omitempty"`
	Album  *api.AlbumResponse  `json:"album,omitempty"`
}

func New(log *slog.Logger, getter AlbumGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.albums.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		idStr := chi.URLParam(r, "id")

		if idStr != "" {
			id, err := strconv.Atoi(idStr)
			if err != nil {
				log.Error("Invalid album id", slog.String("id", idStr))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "album id must be a number"))
				return
			}

			album, err := getter.GetAlbum(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("Album not found", slog.Int("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "album not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get album", sl.Err(err))
				w.WriteHeader(http.StatusBadGateway)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get album"))
				return
			}

			render.JSON(w, r, Response{Album: album})
			return
		}

		albums, err := getter.ListAlbums(r.Context())
		if err != nil {
			log.Error("Failed to list albums", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list albums"))
			return
		}

		log.Info("Albums retrieved", slog.Int("count", len(albums)))

		render.JSON(w, r, Response{Albums: albums})
	}
}
