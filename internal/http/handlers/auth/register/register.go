// Package register implements the HTTP handler that creates a new
// user with the opening balance.
package register

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

// Handler serves user registration requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic for registration.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) error
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
// @Summary Registrar un usuario
// @Description Crea un usuario nuevo con el saldo inicial.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.RegisterRequest true "Datos del usuario"
// @Success 200 {object} response.Message "Usuario creado"
// @Failure 400 {object} response.ErrorResponse "Cuerpo inválido o usuario existente"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
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

	if err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			log.Info("user already exists", slog.String("id_usuario", req.IDUsuario))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("El usuario ya existe."))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al registrar el usuario."))
		return
	}

	log.Info("user registered", slog.String("id_usuario", req.IDUsuario))
	render.JSON(w, r, response.OK("Usuario registrado con éxito."))
}
