package services

import (
	"sync"
	"time"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/repositories"
)

// TokenStore mantiene la sesión de autenticación del proceso: token
// de acceso, token de refresco y sus expiraciones. Es estado puro:
// acá no se origina ninguna llamada de red. Solo el AuthGateway
// escribe; el resto del sistema lee.
type TokenStore interface {
	SetTokens(pair domain.TokenPair)
	AccessToken() string
	RefreshToken() string
	IsAccessTokenValid() bool
	IsRefreshTokenValid() bool
	// ExpireAccess invalida solo el token de acceso, conservando el
	// de refresco. Se usa cuando el backend rechaza el token antes
	// de su expiración local (401 con reloj adelantado, revocación).
	ExpireAccess()
	Clear()
}

// tokenStore implementa TokenStore en memoria, con persistencia
// de respaldo en el store repository para sobrevivir reinicios
type tokenStore struct {
	mu    sync.RWMutex
	store repositories.StoreRepository

	access        string
	refresh       string
	accessExpiry  time.Time
	refreshExpiry time.Time
}

// NewTokenStore crea el TokenStore e intenta restaurar la sesión persistida
func NewTokenStore(store repositories.StoreRepository) TokenStore {
	ts := &tokenStore{store: store}
	ts.restore()
	return ts
}

// restore recarga una sesión previa desde el store repository
func (ts *tokenStore) restore() {
	var access, refresh string
	var accessExpiry, refreshExpiry int64
	if !ts.store.Get(repositories.KeyToken, &access) {
		return
	}
	ts.store.Get(repositories.KeyTokenExpiry, &accessExpiry)
	ts.store.Get(repositories.KeyTokenRefresh, &refresh)
	ts.store.Get(repositories.KeyRefreshExpiry, &refreshExpiry)

	ts.access = access
	ts.refresh = refresh
	ts.accessExpiry = time.Unix(accessExpiry, 0)
	ts.refreshExpiry = time.Unix(refreshExpiry, 0)
}

// SetTokens guarda un par de tokens recién emitido. La expiración se
// calcula una sola vez como emisión + TTL, para no contar dos veces
// la deriva de reloj al revalidar.
func (ts *tokenStore) SetTokens(pair domain.TokenPair) {
	issuedAt := time.Now()

	ts.mu.Lock()
	ts.access = pair.Access
	ts.refresh = pair.Refresh
	ts.accessExpiry = issuedAt.Add(time.Duration(pair.ExpiresIn) * time.Second)
	ts.refreshExpiry = issuedAt.Add(time.Duration(pair.RefreshExpiresIn) * time.Second)
	accessExpiry := ts.accessExpiry.Unix()
	refreshExpiry := ts.refreshExpiry.Unix()
	ts.mu.Unlock()

	// Un par ya vencido no se persiste: Memcached rechaza TTL
	// negativos y un token muerto no sirve tras un reinicio
	ttl := time.Duration(pair.RefreshExpiresIn) * time.Second
	if ttl <= 0 {
		return
	}
	ts.store.Set(repositories.KeyToken, pair.Access, ttl)
	ts.store.Set(repositories.KeyTokenExpiry, accessExpiry, ttl)
	ts.store.Set(repositories.KeyTokenRefresh, pair.Refresh, ttl)
	ts.store.Set(repositories.KeyRefreshExpiry, refreshExpiry, ttl)
}

func (ts *tokenStore) AccessToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.access
}

func (ts *tokenStore) RefreshToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.refresh
}

func (ts *tokenStore) IsAccessTokenValid() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.access != "" && time.Now().Before(ts.accessExpiry)
}

func (ts *tokenStore) IsRefreshTokenValid() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.refresh != "" && time.Now().Before(ts.refreshExpiry)
}

func (ts *tokenStore) ExpireAccess() {
	ts.mu.Lock()
	ts.accessExpiry = time.Time{}
	ts.mu.Unlock()
	ts.store.Set(repositories.KeyTokenExpiry, int64(0), 0)
}

func (ts *tokenStore) Clear() {
	ts.mu.Lock()
	ts.access = ""
	ts.refresh = ""
	ts.accessExpiry = time.Time{}
	ts.refreshExpiry = time.Time{}
	ts.mu.Unlock()

	ts.store.Delete(repositories.KeyToken)
	ts.store.Delete(repositories.KeyTokenExpiry)
	ts.store.Delete(repositories.KeyTokenRefresh)
	ts.store.Delete(repositories.KeyRefreshExpiry)
}
