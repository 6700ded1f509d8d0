package subscribe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fondosapp/fondos-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, idUsuario string, idFondo int) (*models.Fund, error) {
	args := m.Called(ctx, idUsuario, idFondo)
	fund, _ := args.Get(0).(*models.Fund)
	return fund, args.Error(1)
}

func TestSubscribeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"id_usuario": "usuario1", "id_fondo": 1}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "usuario1", 1).
					Return(&models.Fund{IDFondo: 1, Nombre: "FPV_BTG_PACTUAL_RECAUDADORA"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mensaje":"Suscripción realizada con éxito."}`,
		},
		{
			name: "fund id as string",
			body: `{"id_usuario": "usuario1", "id_fondo": "3"}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "usuario1", 3).
					Return(&models.Fund{IDFondo: 3, Nombre: "DEUDAPRIVADA"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mensaje":"Suscripción realizada con éxito."}`,
		},
		{
			name: "insufficient balance",
			body: `{"id_usuario": "usuario1", "id_fondo": 4}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "usuario1", 4).
					Return(nil, &models.InsufficientBalanceError{Nombre: "FDO-ACCIONES"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"No tiene saldo disponible para vincularse al fondo FDO-ACCIONES."}`,
		},
		{
			name: "fund not found",
			body: `{"id_usuario": "usuario1", "id_fondo": 99}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "usuario1", 99).
					Return(nil, models.ErrFundNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Fondo no encontrado."}`,
		},
		{
			name: "user not found",
			body: `{"id_usuario": "desconocido", "id_fondo": 1}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "desconocido", 1).
					Return(nil, models.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Usuario no encontrado."}`,
		},
		{
			name: "store failure",
			body: `{"id_usuario": "usuario1", "id_fondo": 1}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "usuario1", 1).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `Error al suscribir al fondo: db down`,
		},
		{
			name:           "invalid body",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "missing fields",
			body:           `{"id_usuario": "usuario1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `IDFondo`,
		},
		{
			name:           "non numeric fund id",
			body:           `{"id_usuario": "usuario1", "id_fondo": "abc"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/fondos/suscribir", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
