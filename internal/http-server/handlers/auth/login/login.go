package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"portfolio-web/api"
	"portfolio-web/internal/auth"
	"portfolio-web/internal/backend"
	"portfolio-web/pkg/response"
	"portfolio-web/pkg/sl"
)

type TokenExchanger interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
}

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	response.Response
	Token *api.TokenResponse `json:"token,omitempty"`
}

var validate = validator.New()

func New(log *slog.Logger, exchanger TokenExchanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

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
			log.Error("Invalid credentials payload", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION), "email and password are required"))
			return
		}

		token, err := exchanger.Login(r.Context(), req.Email, req.Password)

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			log.Error("Login rejected", slog.Int("status", apiErr.Status))

			msg := apiErr.Detail
			if msg == "" {
				msg = "invalid email or password"
			}

			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), msg))
			return
		}

		if err != nil {
			log.Error("Failed to log in", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to log in"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.TokenCookie,
			Value:    token.AccessToken,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("Admin logged in")

		render.JSON(w, r, Response{Token: token})
	}
}
