package dto

// CreateInventoryItemRequest entrada para registrar una entrada de inventario
// (POST /api/inventory y formulario de /inventory). ID y CreatedAt los asigna el gestor.
type CreateInventoryItemRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Quantity int    `json:"quantity" form:"quantity" validate:"gte=0"`
	Unit     string `json:"unit" form:"unit" validate:"required,max=50"`
	Date     string `json:"date" form:"date" validate:"required,datetime=2006-01-02"` // vacío = hoy
}

// InventoryItemResponse salida de una entrada de inventario.
type InventoryItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"createdAt"`
}

// InventoryListResponse colección completa, más reciente primero.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Total int                     `json:"total"`
}

// UnitSuggestionsResponse sugerencias de unidad para el formulario.
type UnitSuggestionsResponse struct {
	Units []string `json:"units"`
}
