package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"portfolio-web/api"
	"portfolio-web/internal/auth"
	"portfolio-web/internal/backend"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type AlbumCreator interface {
	CreateAlbum(ctx context.Context, token string, req *api.AlbumRequest) (*api.AlbumResponse, error)
}

type Request struct {
	api.AlbumRequest
}

type Response struct {
	response.Response
	Album *api.AlbumResponse `json:"album,omitempty"`
}

func New(log *slog.Logger, creator AlbumCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.albums.create.New"

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

		if req.Title == "" {
			log.Error("title is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "title is required"))
			return
		}

		album, err := creator.CreateAlbum(r.Context(), auth.Token(r.Context()), &req.AlbumRequest)

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			log.Error("Backend rejected album", slog.Int("status", apiErr.Status))
			w.WriteHeader(apiErr.Status)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), apiErr.Detail))
			return
		}

		if err != nil {
			log.Error("Failed to create album", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create album"))
			return
		}

		log.Info("Album created", slog.Int("id", album.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Album: album})
	}
}
