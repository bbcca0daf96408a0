package dto

// LoginRequest entrada para POST /api/access/login y el formulario de /enter-password.
type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

// AccessStatusResponse estado del acceso en este dispositivo.
type AccessStatusResponse struct {
	HasAccess       bool `json:"hasAccess"`
	CanAttemptLogin bool `json:"canAttemptLogin"`
}
