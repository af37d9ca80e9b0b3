package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jromanati/vivienda-chile-sub000/domain"
)

// DefaultQuietWindow es la ventana de silencio del debounce: un
// segundo disparo dentro de esta ventana se ignora
const DefaultQuietWindow = 2 * time.Second

// Invalidator es lo único que necesitan conocer los consumidores
// del canal de notificaciones para pedir un refresco
type Invalidator interface {
	Trigger()
}

// AdminInvalidator agrega el refresco inmediato que usa el panel de
// administración después de cada mutación
type AdminInvalidator interface {
	Invalidator
	TriggerNow()
}

// CatalogRefresher re-ejecuta el fetch completo del catálogo cuando
// el backend anuncia un cambio, con debounce para no bombardear al
// backend ante ráfagas de eventos, y propaga la lista fresca a los
// suscriptores vivos.
type CatalogRefresher struct {
	client  CatalogClient
	limiter *rate.Limiter

	mu          sync.Mutex
	subscribers []func([]domain.Property)
}

// NewCatalogRefresher crea el refresher con la ventana de silencio dada
func NewCatalogRefresher(client CatalogClient, quietWindow time.Duration) *CatalogRefresher {
	if quietWindow <= 0 {
		quietWindow = DefaultQuietWindow
	}
	return &CatalogRefresher{
		client: client,
		// burst 1: el primer disparo pasa, los siguientes esperan
		// a que la ventana de silencio se rellene
		limiter: rate.NewLimiter(rate.Every(quietWindow), 1),
	}
}

// Subscribe registra un lector vivo que recibe cada lista fresca
func (r *CatalogRefresher) Subscribe(fn func([]domain.Property)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Trigger pide un refresco del catálogo. Los disparos dentro de la
// ventana de silencio se descartan; el refetch sobreescribe la copia
// local (el client descarta respuestas fuera de orden).
func (r *CatalogRefresher) Trigger() {
	if !r.limiter.Allow() {
		log.Printf("CatalogRefresher: trigger ignored (inside quiet window)")
		return
	}
	r.refresh()
}

// TriggerNow refresca sin pasar por la ventana de silencio. Es para
// mutaciones del panel de administración: son escasas y el snapshot
// debe reflejarlas de inmediato, no en el próximo resync.
func (r *CatalogRefresher) TriggerNow() {
	r.refresh()
}

func (r *CatalogRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	properties, err := r.client.GetProperties(ctx)
	if err != nil {
		log.Printf("CatalogRefresher: refresh failed: %v", err)
		return
	}
	log.Printf("CatalogRefresher: catalog refreshed, %d properties", len(properties))

	r.mu.Lock()
	subscribers := make([]func([]domain.Property), len(r.subscribers))
	copy(subscribers, r.subscribers)
	r.mu.Unlock()

	for _, fn := range subscribers {
		fn(properties)
	}
}
