package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrStorageUnavailable = errors.New("almacenamiento local no disponible")
	ErrCorruptData        = errors.New("datos almacenados corruptos")
	ErrStorageWrite       = errors.New("no se pudo escribir en el almacenamiento local")
	ErrQuotaExceeded      = errors.New("cuota de almacenamiento excedida")
)

// ValidationError detalla los campos rechazados. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string // campo -> mensaje legible
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
