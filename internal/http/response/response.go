// Package response holds the helper types and functions the HTTP
// handlers use to build uniform JSON replies. Successful operations
// answer with a "mensaje" body, failures with an "error" body.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Message is the body of a successful operation.
type Message struct {
	Mensaje string `json:"mensaje"`
}

// ErrorResponse is the body of a failed operation.
type ErrorResponse struct {
	Error string `json:"error" example:"Fondo no encontrado."`
}

// OK returns a Message with the given text.
func OK(mensaje string) Message {
	return Message{Mensaje: mensaje}
}

// Error returns an ErrorResponse with the given text.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError builds an ErrorResponse from validation failures.
// Each violation becomes a readable sentence, joined by commas.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of the allowed values", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
