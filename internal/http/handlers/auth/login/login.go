// Package login implements the HTTP handler that checks credentials
// and issues a JWT.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fondosapp/fondos-api/internal/http/response"
	"github.com/fondosapp/fondos-api/internal/lib/sl"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Handler serves login requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic for login.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Iniciar sesión
// @Description Verifica las credenciales y devuelve un token JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Credenciales"
// @Success 200 {object} map[string]string "Token de acceso"
// @Failure 400 {object} response.ErrorResponse "Cuerpo inválido"
// @Failure 401 {object} response.ErrorResponse "Credenciales inválidas"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Info("invalid credentials", slog.String("id_usuario", req.IDUsuario))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Credenciales inválidas."))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al iniciar sesión."))
		return
	}

	log.Info("user logged in", slog.String("id_usuario", req.IDUsuario))
	render.JSON(w, r, map[string]string{
		"token": token,
	})
}
