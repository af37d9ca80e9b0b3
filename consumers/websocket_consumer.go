package consumers

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jromanati/vivienda-chile-sub000/services"
)

// ConnectionState es el estado del canal de notificaciones.
// La conexión es una máquina de estados explícita
// (Disconnected -> Connecting -> Open -> Disconnected) para que la
// política de reconexión sea testeable y no un nido de callbacks.
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateOpen
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "disconnected"
	}
}

// Backoff de reconexión
const (
	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// invalidationMessage acepta las dos formas que emite el backend:
// {"event": "properties_updated"} y {"type": "properties.updated"}
type invalidationMessage struct {
	Event string `json:"event"`
	Type  string `json:"type"`
}

// isCatalogChange indica si el mensaje anuncia un cambio del catálogo
func (m invalidationMessage) isCatalogChange() bool {
	return m.Event == "properties_updated" || m.Type == "properties.updated"
}

// WebSocketConsumer mantiene la conexión push con el backend y
// dispara el refresco del catálogo ante eventos de cambio.
// Los mensajes malformados o de tipo desconocido se ignoran en
// silencio: nunca botan la conexión ni se propagan.
type WebSocketConsumer struct {
	url         string
	invalidator services.Invalidator
	dialer      *websocket.Dialer

	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketConsumer crea una nueva instancia de WebSocketConsumer
func NewWebSocketConsumer(url string, invalidator services.Invalidator) *WebSocketConsumer {
	return &WebSocketConsumer{
		url:         url,
		invalidator: invalidator,
		dialer:      websocket.DefaultDialer,
		done:        make(chan struct{}),
	}
}

// State retorna el estado actual de la conexión
func (c *WebSocketConsumer) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

func (c *WebSocketConsumer) setState(state ConnectionState) {
	c.state.Store(int32(state))
}

// Start arranca el loop de conexión en segundo plano
func (c *WebSocketConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.run(ctx)
}

// run es el loop de conexión: conectar, leer hasta que se caiga,
// reconectar con backoff exponencial acotado
func (c *WebSocketConsumer) run(ctx context.Context) {
	defer close(c.done)
	backoff := reconnectBase

	for {
		if ctx.Err() != nil {
			c.setState(StateDisconnected)
			return
		}

		c.setState(StateConnecting)
		log.Printf("WebSocketConsumer: connecting to %s", c.url)

		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.setState(StateDisconnected)
			log.Printf("WebSocketConsumer: connection failed: %v (retrying in %s)", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > reconnectMax {
				backoff = reconnectMax
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		c.setState(StateOpen)
		log.Printf("WebSocketConsumer: connected")
		backoff = reconnectBase

		c.readLoop(conn)

		c.setState(StateDisconnected)
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
	}
}

// readLoop procesa mensajes hasta que la conexión se cierre
func (c *WebSocketConsumer) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocketConsumer: read error: %v", err)
			return
		}

		var message invalidationMessage
		if err := json.Unmarshal(data, &message); err != nil {
			log.Printf("WebSocketConsumer: ignoring malformed message: %v", err)
			continue
		}

		if !message.isCatalogChange() {
			continue
		}

		log.Printf("WebSocketConsumer: catalog change event received")
		c.invalidator.Trigger()
	}
}

// Close cierra la conexión y detiene el loop de reconexión.
// Es seguro llamarlo aunque Start nunca haya corrido.
func (c *WebSocketConsumer) Close() error {
	if c.cancel == nil {
		return nil
	}
	c.cancel()

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}

	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		log.Printf("WebSocketConsumer: timed out waiting for shutdown")
	}
	return nil
}
