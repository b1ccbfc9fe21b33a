package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMalformedRecord    = errors.New("documento con formato inválido")
)

// MalformedRecordError describe un documento del store que no cumple el esquema esperado
// (campo requerido ausente o de tipo incorrecto). errors.Is(err, ErrMalformedRecord) es true.
type MalformedRecordError struct {
	Collection string
	ID         string
	Field      string
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s/%s: campo %q %s", e.Collection, e.ID, e.Field, e.Reason)
}

// Unwrap permite comparar con ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }
