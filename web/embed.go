// Package web contiene las plantillas HTML y los archivos estáticos de la PWA,
// embebidos en el binario para que la aplicación funcione sin red.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var static embed.FS

// Static devuelve los archivos estáticos con raíz en static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// fs.Sub solo falla con una ruta inválida, y "static" es constante.
		panic(err)
	}
	return sub
}
