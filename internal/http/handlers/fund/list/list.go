// Package list implements the HTTP handler that returns the fund
// catalog.
package list

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fondosapp/fondos-api/internal/http/response"
	"github.com/fondosapp/fondos-api/internal/lib/sl"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Handler serves fund catalog requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic for listing the catalog.
type Service interface {
	List(ctx context.Context) ([]*models.Fund, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Listar fondos
// @Description Devuelve el catálogo completo de fondos disponibles.
// @Tags Fondos
// @Produce  json
// @Success 200 {array} models.Fund "Catálogo de fondos"
// @Failure 500 {object} response.ErrorResponse "Error del servidor"
// @Router /fondos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list funds", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(fmt.Sprintf("Error al listar los fondos: %v", err)))
		return
	}

	render.JSON(w, r, items)
}
