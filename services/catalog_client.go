package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/repositories"
)

// snapshotTTL es cuánto vive la copia del catálogo en el almacén
// compartido si nadie la refresca antes
const snapshotTTL = 12 * time.Hour

// CatalogClient realiza las operaciones autenticadas contra el
// backend de propiedades y mantiene la copia local del catálogo.
type CatalogClient interface {
	GetProperties(ctx context.Context) ([]domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	// Operaciones del panel de administración: el backend es quien
	// asigna identidad y muta; acá solo se reenvían los borradores
	CreateProperty(ctx context.Context, draft domain.Property) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id string, draft domain.Property) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	// CachedProperties lee la copia local sin tocar la red
	CachedProperties() ([]domain.Property, bool)
}

// fetchStatus hace visible la transición de reintento por 401:
// el resultado de cada GET es un estado explícito, no control de
// flujo escondido en ifs sobre el status code
type fetchStatus int

const (
	fetchOK fetchStatus = iota
	fetchAuthExpired
	fetchFailed
)

type fetchResult struct {
	status fetchStatus
	body   []byte
	err    error
}

// catalogClient implementa CatalogClient
type catalogClient struct {
	gateway    AuthGateway
	tokens     TokenStore
	store      repositories.StoreRepository
	baseURL    string
	httpClient *http.Client

	// Las respuestas de lista se etiquetan con una secuencia
	// monotónica: una respuesta que llega fuera de orden no debe
	// pisar en el almacén a una más nueva que ya se aplicó
	mu          sync.Mutex
	seq         int64
	lastApplied int64
}

// NewCatalogClient crea una nueva instancia de CatalogClient
func NewCatalogClient(gateway AuthGateway, tokens TokenStore, store repositories.StoreRepository, baseURL string) CatalogClient {
	return &catalogClient{
		gateway: gateway,
		tokens:  tokens,
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetProperties obtiene la colección completa y sobreescribe la copia local
func (c *catalogClient) GetProperties(ctx context.Context) ([]domain.Property, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	body, err := c.authorizedRequest(ctx, http.MethodGet, c.baseURL+"/properties", nil)
	if err != nil {
		return nil, err
	}

	var properties []domain.Property
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if c.applySnapshot(seq, properties) {
		log.Printf("CatalogClient: snapshot updated with %d properties (seq=%d)", len(properties), seq)
	} else {
		log.Printf("CatalogClient: discarding out-of-order response (seq=%d)", seq)
	}

	return properties, nil
}

// GetProperty obtiene una propiedad individual
func (c *catalogClient) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	url := fmt.Sprintf("%s/properties/%s/update", c.baseURL, id)
	body, err := c.authorizedRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var property domain.Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &property, nil
}

// CreateProperty reenvía un borrador nuevo al backend
func (c *catalogClient) CreateProperty(ctx context.Context, draft domain.Property) (*domain.Property, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	body, err := c.authorizedRequest(ctx, http.MethodPost, c.baseURL+"/properties", payload)
	if err != nil {
		return nil, err
	}

	var created domain.Property
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &created, nil
}

// UpdateProperty reenvía una actualización al backend
func (c *catalogClient) UpdateProperty(ctx context.Context, id string, draft domain.Property) (*domain.Property, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	url := fmt.Sprintf("%s/properties/%s", c.baseURL, id)
	body, err := c.authorizedRequest(ctx, http.MethodPut, url, payload)
	if err != nil {
		return nil, err
	}

	var updated domain.Property
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &updated, nil
}

// DeleteProperty elimina una propiedad en el backend
func (c *catalogClient) DeleteProperty(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/properties/%s", c.baseURL, id)
	_, err := c.authorizedRequest(ctx, http.MethodDelete, url, nil)
	return err
}

// CachedProperties lee la copia local del catálogo
func (c *catalogClient) CachedProperties() ([]domain.Property, bool) {
	var properties []domain.Property
	if !c.store.Get(repositories.KeyProperties, &properties) {
		return nil, false
	}
	return properties, true
}

// authorizedRequest implementa la política de autenticación completa:
// asegurar sesión, una request, y ante un 401 exactamente una
// re-autenticación con exactamente un reintento. Un segundo 401 es
// falla terminal (nunca un loop de reintentos).
func (c *catalogClient) authorizedRequest(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	if !c.gateway.EnsureAuthenticated(ctx) {
		return nil, &AuthError{Reason: "could not establish session"}
	}

	result := c.do(ctx, method, url, payload)
	if result.status == fetchAuthExpired {
		log.Printf("CatalogClient: got 401 from %s, re-authenticating once", url)
		c.gateway.Invalidate()
		if !c.gateway.EnsureAuthenticated(ctx) {
			return nil, &AuthError{Reason: "re-authentication failed"}
		}
		result = c.do(ctx, method, url, payload)
		if result.status == fetchAuthExpired {
			return nil, &HttpError{Status: http.StatusUnauthorized}
		}
	}

	if result.status == fetchFailed {
		return nil, result.err
	}
	return result.body, nil
}

// do ejecuta una request con el bearer token vigente
func (c *catalogClient) do(ctx context.Context, method, url string, payload []byte) fetchResult {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fetchResult{status: fetchFailed, err: &NetworkError{Err: err}}
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchResult{status: fetchFailed, err: &NetworkError{Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fetchResult{status: fetchAuthExpired}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchResult{status: fetchFailed, err: &HttpError{Status: resp.StatusCode}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{status: fetchFailed, err: &NetworkError{Err: err}}
	}
	return fetchResult{status: fetchOK, body: body}
}

// applySnapshot sobreescribe la copia local (overwrite, no merge)
// descartando respuestas que llegan fuera de orden
func (c *catalogClient) applySnapshot(seq int64, properties []domain.Property) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.lastApplied {
		return false
	}
	c.lastApplied = seq
	c.store.Set(repositories.KeyProperties, properties, snapshotTTL)
	return true
}
