package dto

import "encoding/json"

// CredentialsRequest es el body de POST <auth>/token/
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest es el body de POST <auth>/token/refresh/
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenResponse es la respuesta de ambos endpoints de autenticación.
// User y Tenant no se usan acá pero el backend siempre los envía.
type TokenResponse struct {
	Access           string          `json:"access"`
	Refresh          string          `json:"refresh"`
	ExpiresIn        int64           `json:"expires_in"`
	RefreshExpiresIn int64           `json:"refresh_expires_in"`
	User             json.RawMessage `json:"user,omitempty"`
	Tenant           json.RawMessage `json:"tenant,omitempty"`
}
