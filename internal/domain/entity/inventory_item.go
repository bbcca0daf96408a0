package entity

import "time"

// DateLayout formato de la fecha de la entrada (calendario, sin hora).
const DateLayout = "2006-01-02"

// InventoryItem representa una entrada de stock del café.
// Se crea en el gestor de inventario y nunca se modifica; solo se elimina por ID.
type InventoryItem struct {
	ID        string // item_<epochMillis>_<sufijo aleatorio>, inmutable
	Name      string
	Quantity  int // >= 0
	Unit      string
	Date      string // YYYY-MM-DD, aportada por el usuario
	CreatedAt int64  // epoch en milisegundos; solo para ordenar (desc)
}

// CreatedTime devuelve CreatedAt como time.Time.
func (i InventoryItem) CreatedTime() time.Time {
	return time.UnixMilli(i.CreatedAt)
}
