package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/cafe-inventory/internal/domain"
	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
	"github.com/jhoicas/cafe-inventory/internal/domain/repository"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

// itemRecord mantiene la representación persistida (arreglo JSON bajo una sola clave).
type itemRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"createdAt"`
}

// InventoryStore implementa repository.InventoryStore sobre un KeyValueStore.
type InventoryStore struct {
	kv  repository.KeyValueStore
	key string
	log *logger.Logger
}

// NewInventoryStore construye el adaptador para la clave indicada.
func NewInventoryStore(kv repository.KeyValueStore, key string, log *logger.Logger) *InventoryStore {
	return &InventoryStore{kv: kv, key: key, log: log.Component("localstore")}
}

// Load lee la colección. Falla suave: ante cualquier error devuelve una colección vacía,
// registra el error y lo entrega clasificado para que el llamador decida si reintenta.
func (s *InventoryStore) Load(ctx context.Context) ([]entity.InventoryItem, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) && !errors.Is(err, domain.ErrCorruptData) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		s.log.Error().Err(err).Str("key", s.key).Msg("no se pudo cargar el inventario")
		return []entity.InventoryItem{}, err
	}
	if !ok || raw == "" {
		return []entity.InventoryItem{}, nil
	}

	var records []itemRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		err = fmt.Errorf("%w: clave %s: %v", domain.ErrCorruptData, s.key, err)
		s.log.Error().Err(err).Msg("inventario almacenado ilegible")
		return []entity.InventoryItem{}, err
	}

	items := make([]entity.InventoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, entity.InventoryItem{
			ID:        r.ID,
			Name:      r.Name,
			Quantity:  r.Quantity,
			Unit:      r.Unit,
			Date:      r.Date,
			CreatedAt: r.CreatedAt,
		})
	}
	return items, nil
}

// Save escribe la colección completa como un único valor.
func (s *InventoryStore) Save(ctx context.Context, items []entity.InventoryItem) error {
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, itemRecord{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Date:      it.Date,
			CreatedAt: it.CreatedAt,
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: serializar inventario: %v", domain.ErrStorageWrite, err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		if !errors.Is(err, domain.ErrStorageWrite) {
			err = fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
		}
		return err
	}
	return nil
}
