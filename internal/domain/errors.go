package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StorageError envuelve una falla del almacenamiento con el SKU afectado.
// Las fallas por ítem dentro de un lote no abortan a los ítems hermanos: el
// caller las captura en los diagnósticos del resultado correspondiente.
type StorageError struct {
	SKU string
	Err error
}

func (e *StorageError) Error() string {
	if e.SKU == "" {
		return fmt.Sprintf("error de almacenamiento: %v", e.Err)
	}
	return fmt.Sprintf("error de almacenamiento (sku %s): %v", e.SKU, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError construye un StorageError con el SKU afectado.
func NewStorageError(sku string, err error) *StorageError {
	return &StorageError{SKU: sku, Err: err}
}
