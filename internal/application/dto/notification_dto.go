package dto

import "time"

// NotificationResponse un aviso para el usuario.
type NotificationResponse struct {
	ID        uint64    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse avisos posteriores a Last del pedido anterior.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Last  uint64                 `json:"last"`
}
