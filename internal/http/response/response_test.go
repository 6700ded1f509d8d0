package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestOK_Serialization(t *testing.T) {
	body, err := json.Marshal(OK("Suscripción realizada con éxito."))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"mensaje":"Suscripción realizada con éxito."}`, string(body))
}

func TestError_Serialization(t *testing.T) {
	body, err := json.Marshal(Error("Fondo no encontrado."))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":"Fondo no encontrado."}`, string(body))
}

func TestValidationError(t *testing.T) {
	type request struct {
		IDUsuario string `validate:"required"`
		Email     string `validate:"omitempty,email"`
	}

	validate := validator.New()
	err := validate.Struct(request{Email: "no-es-un-email"})
	assert.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field IDUsuario is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
}
