package dto

// ConnectivityRequest señal reportada por el navegador (navigator.onLine).
type ConnectivityRequest struct {
	Online *bool `json:"online"`
}

// ConnectivityResponse estado actual de conectividad.
type ConnectivityResponse struct {
	Online bool `json:"online"`
}
