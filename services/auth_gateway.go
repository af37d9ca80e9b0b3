package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/utils"
)

// AuthGateway mantiene una sesión válida contra el backend.
// EnsureAuthenticated es idempotente bajo llamadas concurrentes:
// nunca dispara dos refrescos simultáneos que puedan pisarse.
type AuthGateway interface {
	EnsureAuthenticated(ctx context.Context) bool
	// Invalidate marca el token de acceso como vencido para forzar
	// un refresco en la próxima llamada (lo usa el catalog client
	// cuando el backend responde 401)
	Invalidate()
}

// authGateway implementa AuthGateway
type authGateway struct {
	tokens      TokenStore
	authBaseURL string
	username    string
	password    string
	httpClient  *http.Client
	group       singleflight.Group
}

// NewAuthGateway crea una nueva instancia de AuthGateway
func NewAuthGateway(tokens TokenStore, authBaseURL, username, password string) AuthGateway {
	return &authGateway{
		tokens:      tokens,
		authBaseURL: strings.TrimSuffix(authBaseURL, "/"),
		username:    username,
		password:    password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// EnsureAuthenticated garantiza una sesión válida:
//  1. Token de acceso vigente -> true sin tocar la red.
//  2. Token de refresco vigente -> refrescar.
//  3. Autenticación completa con credenciales.
//
// Cualquier falla (red, no-2xx, body malformado) colapsa a false y
// limpia el TokenStore: el caller nunca ve un estado a medias.
func (g *authGateway) EnsureAuthenticated(ctx context.Context) bool {
	if g.tokens.IsAccessTokenValid() {
		return true
	}

	// singleflight serializa los refrescos: las llamadas concurrentes
	// comparten el resultado del que llegó primero en vez de duplicar
	// requests que podrían pisar un token recién emitido con uno viejo
	result, _, _ := g.group.Do("authenticate", func() (interface{}, error) {
		// Re-verificar dentro del guard: otro caller pudo habernos
		// dejado un token fresco mientras esperábamos
		if g.tokens.IsAccessTokenValid() {
			return true, nil
		}

		if g.tokens.IsRefreshTokenValid() {
			if g.refresh(ctx) {
				return true, nil
			}
			log.Printf("AuthGateway: refresh failed, falling back to full authentication")
		}

		if g.authenticate(ctx) {
			return true, nil
		}

		g.tokens.Clear()
		return false, nil
	})

	return result.(bool)
}

func (g *authGateway) Invalidate() {
	g.tokens.ExpireAccess()
}

// refresh intercambia el refresh token por un nuevo par de tokens
func (g *authGateway) refresh(ctx context.Context) bool {
	payload := dto.RefreshRequest{Refresh: g.tokens.RefreshToken()}
	return g.requestTokens(ctx, g.authBaseURL+"/token/refresh/", payload)
}

// authenticate realiza la autenticación completa con credenciales
func (g *authGateway) authenticate(ctx context.Context) bool {
	payload := dto.CredentialsRequest{Username: g.username, Password: g.password}
	return g.requestTokens(ctx, g.authBaseURL+"/token/", payload)
}

// requestTokens hace el POST al endpoint de tokens y guarda el resultado
func (g *authGateway) requestTokens(ctx context.Context, url string, payload interface{}) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("AuthGateway: error marshaling request: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("AuthGateway: error creating request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("AuthGateway: error executing request: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("AuthGateway: token endpoint returned status %d", resp.StatusCode)
		return false
	}

	var tokenResp dto.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		log.Printf("AuthGateway: error parsing token response: %v", err)
		return false
	}
	if tokenResp.Access == "" {
		log.Printf("AuthGateway: token response has no access token")
		return false
	}

	g.tokens.SetTokens(g.buildTokenPair(tokenResp))
	return true
}

// buildTokenPair convierte la respuesta del backend en un TokenPair.
// Si el backend no envía los TTL, se derivan del claim exp del JWT.
func (g *authGateway) buildTokenPair(resp dto.TokenResponse) domain.TokenPair {
	pair := domain.TokenPair{
		Access:           resp.Access,
		Refresh:          resp.Refresh,
		ExpiresIn:        resp.ExpiresIn,
		RefreshExpiresIn: resp.RefreshExpiresIn,
	}
	if pair.ExpiresIn == 0 {
		if expiry, err := utils.TokenExpiry(resp.Access); err == nil {
			pair.ExpiresIn = int64(time.Until(expiry) / time.Second)
		}
	}
	if pair.RefreshExpiresIn == 0 && resp.Refresh != "" {
		if expiry, err := utils.TokenExpiry(resp.Refresh); err == nil {
			pair.RefreshExpiresIn = int64(time.Until(expiry) / time.Second)
		}
	}
	return pair
}
