package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// CommonUnits sugerencias del formulario; la unidad sigue siendo texto libre.
var CommonUnits = []string{
	"Box", "Bag", "Bottle", "Can", "Carton", "Case", "Container", "Each",
	"Gallon", "Jar", "kg", "lbs", "Liter", "Pack", "Piece",
}

// UnitSuggestions filtra CommonUnits por subcadena sin distinguir mayúsculas.
// Una consulta vacía devuelve la lista completa.
func UnitSuggestions(query string) []string {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	out := make([]string, 0, len(CommonUnits))
	for _, u := range CommonUnits {
		if strings.Contains(fold.String(u), q) {
			out = append(out, u)
		}
	}
	return out
}
