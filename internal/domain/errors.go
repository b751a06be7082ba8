package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStore        = errors.New("error de persistencia")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrNoValidRows la importación CSV no dejó ninguna fila insertable.
	ErrNoValidRows = fmt.Errorf("%w: no se encontró ningún lead válido", ErrInvalidInput)
)

// ValidationError precondición de entrada incumplida. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError violación de una regla de dominio. errors.Is(err, ErrConflict) es true.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Conflict construye un ConflictError.
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// NotFound envuelve ErrNotFound con el recurso que no se resolvió.
func NotFound(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrNotFound)
}
