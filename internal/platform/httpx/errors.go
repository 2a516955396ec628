// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Expected outcomes travel as
// values; only unexpected failures reach the default branch, which
// never leaks internal detail to the caller.
var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrDuplicate    = errors.New("registro duplicado")
	ErrValidation   = errors.New("dados inválidos")
	ErrForbidden    = errors.New("acesso negado")
	ErrUnauthorized = errors.New("não autenticado")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Não encontrado", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicado", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validação falhou", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Acesso negado", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Não autenticado", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Erro interno", "")
	}
}
