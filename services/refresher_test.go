package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jromanati/vivienda-chile-sub000/domain"
)

// ============================================
// MOCK del cliente de catálogo
// ============================================

type mockCatalogClient struct {
	fetchCalls int64
	properties []domain.Property
	fetchErr   error
}

func (m *mockCatalogClient) GetProperties(ctx context.Context) ([]domain.Property, error) {
	atomic.AddInt64(&m.fetchCalls, 1)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.properties, nil
}

func (m *mockCatalogClient) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	return nil, nil
}

func (m *mockCatalogClient) CreateProperty(ctx context.Context, draft domain.Property) (*domain.Property, error) {
	return nil, nil
}

func (m *mockCatalogClient) UpdateProperty(ctx context.Context, id string, draft domain.Property) (*domain.Property, error) {
	return nil, nil
}

func (m *mockCatalogClient) DeleteProperty(ctx context.Context, id string) error {
	return nil
}

func (m *mockCatalogClient) CachedProperties() ([]domain.Property, bool) {
	return m.properties, true
}

func (m *mockCatalogClient) calls() int64 {
	return atomic.LoadInt64(&m.fetchCalls)
}

// ============================================
// TESTS del debounce
// ============================================

// Test: dos disparos dentro de la ventana de silencio producen un
// único refetch
func TestTrigger_DebouncesBurst(t *testing.T) {
	client := &mockCatalogClient{properties: makeProperties(3)}
	refresher := NewCatalogRefresher(client, 100*time.Millisecond)

	refresher.Trigger()
	refresher.Trigger()

	if client.calls() != 1 {
		t.Errorf("Expected exactly 1 fetch for a burst, got %d", client.calls())
	}
}

// Test: disparos separados por más de la ventana producen refetchs
// independientes
func TestTrigger_SeparatedTriggersBothFetch(t *testing.T) {
	client := &mockCatalogClient{properties: makeProperties(3)}
	refresher := NewCatalogRefresher(client, 100*time.Millisecond)

	refresher.Trigger()
	time.Sleep(150 * time.Millisecond)
	refresher.Trigger()

	if client.calls() != 2 {
		t.Errorf("Expected 2 fetches for separated triggers, got %d", client.calls())
	}
}

// Test: TriggerNow refresca aunque un disparo reciente haya dejado
// la ventana de silencio activa
func TestTriggerNow_BypassesQuietWindow(t *testing.T) {
	client := &mockCatalogClient{properties: makeProperties(3)}
	refresher := NewCatalogRefresher(client, time.Minute)

	refresher.Trigger()
	refresher.TriggerNow()
	refresher.TriggerNow()

	if client.calls() != 3 {
		t.Errorf("Expected 3 fetches (1 debounced + 2 immediate), got %d", client.calls())
	}
}

// Test: los suscriptores reciben la lista fresca tras cada refetch
func TestTrigger_NotifiesSubscribers(t *testing.T) {
	client := &mockCatalogClient{properties: makeProperties(4)}
	refresher := NewCatalogRefresher(client, 100*time.Millisecond)

	received := make(chan []domain.Property, 1)
	refresher.Subscribe(func(list []domain.Property) {
		received <- list
	})

	refresher.Trigger()

	select {
	case list := <-received:
		if len(list) != 4 {
			t.Errorf("Expected 4 properties delivered, got %d", len(list))
		}
	case <-time.After(time.Second):
		t.Fatal("Subscriber was not notified")
	}
}

// Test: un refetch fallido no notifica a los suscriptores y no rompe
// los disparos futuros
func TestTrigger_FetchFailureIsSilent(t *testing.T) {
	client := &mockCatalogClient{fetchErr: &NetworkError{Err: context.DeadlineExceeded}}
	refresher := NewCatalogRefresher(client, 50*time.Millisecond)

	notified := false
	refresher.Subscribe(func(list []domain.Property) {
		notified = true
	})

	refresher.Trigger()

	if notified {
		t.Error("Subscribers should not be notified on fetch failure")
	}

	// la siguiente ventana debe permitir reintentar
	client.fetchErr = nil
	client.properties = makeProperties(2)
	time.Sleep(80 * time.Millisecond)
	refresher.Trigger()

	if client.calls() != 2 {
		t.Errorf("Expected a second fetch after the quiet window, got %d", client.calls())
	}
}
