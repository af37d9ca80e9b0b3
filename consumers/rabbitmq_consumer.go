package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"github.com/jromanati/vivienda-chile-sub000/services"
)

// PropertyMessage es el mensaje que publica el backend en la cola
// cuando una propiedad cambia
type PropertyMessage struct {
	Action     string `json:"action"` // "create", "update", "delete"
	PropertyID string `json:"property_id"`
}

// RabbitMQConsumer es la fuente alternativa de invalidación: algunos
// despliegues publican los cambios en una cola en vez del websocket.
// Ambas fuentes alimentan el mismo refresher con el mismo debounce.
type RabbitMQConsumer struct {
	connection  *amqp.Connection
	channel     *amqp.Channel
	queueName   string
	invalidator services.Invalidator
}

// NewRabbitMQConsumer crea una nueva instancia de RabbitMQConsumer
func NewRabbitMQConsumer(rabbitURL, queueName string, invalidator services.Invalidator) (*RabbitMQConsumer, error) {
	log.Printf("Connecting to RabbitMQ at %s", rabbitURL)

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = "properties_queue"
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Printf("Queue '%s' declared successfully", queueName)

	return &RabbitMQConsumer{
		connection:  conn,
		channel:     ch,
		queueName:   queueName,
		invalidator: invalidator,
	}, nil
}

// Start inicia el consumo de mensajes de RabbitMQ
func (c *RabbitMQConsumer) Start() error {
	// Procesar de a un mensaje: el refresco es un fetch completo,
	// no tiene sentido paralelizar
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manejamos manualmente)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("RabbitMQ consumer registered, waiting for messages...")

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	return nil
}

// processMessage procesa un mensaje individual. Como el refresco
// siempre sobreescribe la copia completa del catálogo, cualquier
// acción válida colapsa en el mismo trigger debounced.
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	var propertyMsg PropertyMessage
	if err := json.Unmarshal(msg.Body, &propertyMsg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		// Rechazar sin requeue: el formato nunca va a mejorar
		msg.Nack(false, false)
		return
	}

	switch propertyMsg.Action {
	case "create", "update", "delete":
		log.Printf("RabbitMQ: %s event for property %s, triggering refresh", propertyMsg.Action, propertyMsg.PropertyID)
		c.invalidator.Trigger()
	default:
		log.Printf("Unknown action: %s", propertyMsg.Action)
		msg.Nack(false, false)
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Error acknowledging message: %v", err)
	}
}

// Close cierra las conexiones de RabbitMQ
func (c *RabbitMQConsumer) Close() error {
	var errs []error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ consumer: %v", errs)
	}
	log.Printf("RabbitMQ consumer closed successfully")
	return nil
}
