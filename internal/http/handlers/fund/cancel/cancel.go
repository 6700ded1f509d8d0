// Package cancel implements the HTTP handler that closes a fund
// subscription and returns the fund minimum to the user's balance.
package cancel

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

// Handler serves subscription cancel requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic for closing a subscription.
type Service interface {
	Cancel(ctx context.Context, idUsuario string, idFondo int) (*models.Fund, error)
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
// @Summary Cancelar la suscripción a un fondo
// @Description Cierra una suscripción del usuario al fondo y devuelve el monto mínimo al saldo.
// @Tags Fondos
// @Accept  json
// @Produce  json
// @Param request body models.SubscriptionRequest true "Datos de la cancelación"
// @Success 200 {object} response.Message "Cancelación realizada"
// @Failure 400 {object} response.ErrorResponse "Usuario no suscrito o cuerpo inválido"
// @Failure 404 {object} response.ErrorResponse "Usuario o fondo no encontrado"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /fondos/cancelar [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.cancel"
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

	fund, err := h.service.Cancel(r.Context(), req.IDUsuario, int(idFondo))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotSubscribed):
			log.Info("user not subscribed",
				slog.String("id_usuario", req.IDUsuario),
				slog.Int64("id_fondo", idFondo))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("El usuario no está suscrito a este fondo."))
		case errors.Is(err, models.ErrFundNotFound):
			log.Info("fund not found", slog.Int64("id_fondo", idFondo))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Fondo no encontrado."))
		case errors.Is(err, models.ErrUserNotFound):
			log.Info("user not found", slog.String("id_usuario", req.IDUsuario))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Usuario no encontrado."))
		default:
			log.Error("failed to cancel subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf(
				"Error al cancelar la suscripción al fondo: %v", err)))
		}
		return
	}

	log.Info("subscription canceled",
		slog.String("id_usuario", req.IDUsuario),
		slog.String("fondo", fund.Nombre))
	render.JSON(w, r, response.OK("Cancelación realizada con éxito."))
}
