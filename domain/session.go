package domain

// TokenPair es el par de tokens que entrega el backend al autenticar
// o refrescar una sesión. Los TTL vienen en segundos.
type TokenPair struct {
	Access           string
	Refresh          string
	ExpiresIn        int64
	RefreshExpiresIn int64
}
