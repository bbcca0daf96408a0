package repository

import "context"

// KeyValueStore define el puerto del espacio clave/valor local del dispositivo (DIP).
// Los valores son texto; la serialización es responsabilidad de quien escribe.
type KeyValueStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
