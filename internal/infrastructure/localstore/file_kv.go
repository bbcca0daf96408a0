package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/cafe-inventory/internal/domain"
)

// FileKV implementa repository.KeyValueStore sobre un archivo JSON por namespace
// (<dir>/<namespace>.json con un objeto {"clave": "valor"}).
// Cada escritura reescribe el snapshot completo vía archivo temporal + rename.
type FileKV struct {
	mu         sync.Mutex
	path       string
	quotaBytes int64
	readFile   func(name string) ([]byte, error)
}

// FileKVOption ajusta el FileKV en construcción.
type FileKVOption func(*FileKV)

// WithReadFile reemplaza la lectura del archivo (tests de fallos de E/S).
func WithReadFile(fn func(name string) ([]byte, error)) FileKVOption {
	return func(s *FileKV) { s.readFile = fn }
}

// NewFileKV crea el directorio si no existe. quotaBytes <= 0 desactiva el límite.
func NewFileKV(dir, namespace string, quotaBytes int64, opts ...FileKVOption) (*FileKV, error) {
	if namespace == "" {
		return nil, fmt.Errorf("localstore: namespace vacío")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: crear directorio %s: %w", dir, err)
	}
	s := &FileKV{
		path:       filepath.Join(dir, namespace+".json"),
		quotaBytes: quotaBytes,
		readFile:   os.ReadFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path devuelve la ruta del archivo del namespace.
func (s *FileKV) Path() string { return s.path }

// Get lee una clave. Un archivo inexistente equivale a un namespace vacío.
func (s *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readSnapshot()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set escribe una clave respetando la cuota del namespace.
func (s *FileKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, _, err := s.snapshotForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return s.writeSnapshot(data)
}

// Remove elimina una clave; eliminar una clave inexistente no es error.
func (s *FileKV) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, replaced, err := s.snapshotForWrite()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok && !replaced {
		return nil
	}
	delete(data, key)
	return s.writeSnapshot(data)
}

// snapshotForWrite lee el snapshot antes de reescribirlo. Solo un snapshot corrupto se
// reemplaza por uno vacío (replaced = true); un fallo de lectura aborta la escritura
// para no pisar claves que podrían volver a leerse.
func (s *FileKV) snapshotForWrite() (data map[string]string, replaced bool, err error) {
	data, err = s.readSnapshot()
	switch {
	case err == nil:
		return data, false, nil
	case errors.Is(err, domain.ErrCorruptData):
		return map[string]string{}, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
}

func (s *FileKV) readSnapshot() (map[string]string, error) {
	raw, err := s.readFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrStorageUnavailable, s.path, err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, s.path, err)
	}
	return data, nil
}

func (s *FileKV) writeSnapshot(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: serializar: %v", domain.ErrStorageWrite, err)
	}
	if s.quotaBytes > 0 && int64(len(raw)) > s.quotaBytes {
		return fmt.Errorf("%w: %w (%d > %d bytes)", domain.ErrStorageWrite, domain.ErrQuotaExceeded, len(raw), s.quotaBytes)
	}
	temp := s.path + ".tmp"
	if err := os.WriteFile(temp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := os.Rename(temp, s.path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}
