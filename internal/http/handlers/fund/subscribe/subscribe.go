// Package subscribe implements the HTTP handler that opens a fund
// subscription for a user.
//
// The handler decodes the JSON request, validates it, calls the fund
// service and maps the domain errors to HTTP statuses: lookup misses
// answer 404, an insufficient balance answers 400 naming the fund, and
// anything else answers 500 wrapping the underlying failure.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fondosapp/fondos-api/internal/http/response"
	"github.com/fondosapp/fondos-api/internal/lib/sl"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Handler serves subscription open requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic for opening a subscription.
type Service interface {
	Subscribe(ctx context.Context, idUsuario string, idFondo int) (*models.Fund, error)
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
// @Summary Suscribirse a un fondo
// @Description Abre una suscripción del usuario al fondo, debitando el monto mínimo del saldo.
// @Tags Fondos
// @Accept  json
// @Produce  json
// @Param request body models.SubscriptionRequest true "Datos de la suscripción"
// @Success 200 {object} response.Message "Suscripción realizada"
// @Failure 400 {object} response.ErrorResponse "Saldo insuficiente o cuerpo inválido"
// @Failure 404 {object} response.ErrorResponse "Usuario o fondo no encontrado"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /fondos/suscribir [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	idFondo, err := req.IDFondo.Int64()
	if err != nil {
		log.Error("invalid fund id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("field id_fondo must be a number"))
		return
	}

	fund, err := h.service.Subscribe(r.Context(), req.IDUsuario, int(idFondo))
	if err != nil {
		var insufficientErr *models.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficientErr):
			log.Info("insufficient balance",
				slog.String("id_usuario", req.IDUsuario),
				slog.String("fondo", insufficientErr.Nombre))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf(
				"No tiene saldo disponible para vincularse al fondo %s.", insufficientErr.Nombre)))
		case errors.Is(err, models.ErrFundNotFound):
			log.Info("fund not found", slog.Int64("id_fondo", idFondo))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Fondo no encontrado."))
		case errors.Is(err, models.ErrUserNotFound):
			log.Info("user not found", slog.String("id_usuario", req.IDUsuario))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Usuario no encontrado."))
		default:
			log.Error("failed to subscribe", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Error al suscribir al fondo: %v", err)))
		}
		return
	}

	log.Info("subscription opened",
		slog.String("id_usuario", req.IDUsuario),
		slog.String("fondo", fund.Nombre))
	render.JSON(w, r, response.OK("Suscripción realizada con éxito."))
}
