package repository

import (
	"context"

	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
)

// InventoryStore define el puerto de persistencia de la colección completa de inventario.
// No hay granularidad por registro: se lee y se escribe la secuencia entera.
type InventoryStore interface {
	// Load nunca devuelve nil: ante un error entrega una colección vacía junto con el error clasificado
	// (domain.ErrStorageUnavailable o domain.ErrCorruptData).
	Load(ctx context.Context) ([]entity.InventoryItem, error)
	Save(ctx context.Context, items []entity.InventoryItem) error
}
