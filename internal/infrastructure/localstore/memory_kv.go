package localstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/cafe-inventory/internal/domain"
)

// MemoryKV es un espacio clave/valor en memoria. Sirve como driver "memory" y como
// doble de pruebas: permite inyectar fallos de lectura y escritura.
type MemoryKV struct {
	mu        sync.Mutex
	data      map[string]string
	readErr   error
	writeErr  error
	readCalls int
}

// NewMemoryKV crea un namespace vacío.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

// FailReads hace que las lecturas siguientes fallen con err (nil restablece).
func (s *MemoryKV) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites hace que Set y Remove fallen con err (nil restablece).
func (s *MemoryKV) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// ReadCalls cuenta las llamadas a Get, incluidas las fallidas.
func (s *MemoryKV) ReadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCalls
}

func (s *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readCalls++
	if s.readErr != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, s.readErr)
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, s.writeErr)
	}
	s.data[key] = value
	return nil
}

func (s *MemoryKV) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, s.writeErr)
	}
	delete(s.data, key)
	return nil
}
