// Package history implements the HTTP handler that returns the full
// transaction ledger of a user. An unknown user gets an empty array.
package history

import (
	"context"
	"encoding/json"
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

// Handler serves transaction history requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic for reading the ledger.
type Service interface {
	History(ctx context.Context, idUsuario string) ([]*models.Transaction, error)
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
// @Summary Historial de transacciones
// @Description Devuelve todas las transacciones del usuario en orden cronológico.
// @Tags Fondos
// @Accept  json
// @Produce  json
// @Param request body models.HistoryRequest true "Usuario a consultar"
// @Success 200 {array} models.Transaction "Historial de transacciones"
// @Failure 400 {object} response.ErrorResponse "Cuerpo inválido"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /fondos/historial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	items, err := h.service.History(r.Context(), req.IDUsuario)
	if err != nil {
		log.Error("failed to read transaction history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(fmt.Sprintf(
			"Error al obtener el historial de transacciones: %v", err)))
		return
	}

	log.Info("transaction history read",
		slog.String("id_usuario", req.IDUsuario),
		slog.Int("count", len(items)))
	render.JSON(w, r, items)
}
