package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config contiene la configuración de la aplicación
type Config struct {
	Port string

	// Backend remoto de propiedades (API REST con token)
	APIBaseURL   string
	AuthBaseURL  string
	AuthUsername string
	AuthPassword string

	// Canal de notificaciones en vivo
	WebSocketURL string
	// RabbitMQ es opcional: solo para despliegues donde el backend
	// publica los cambios en una cola en vez del websocket
	RabbitMQURL string

	// Token del panel de administración. Si está vacío, las rutas
	// de administración rechazan todas las requests.
	AdminAPIToken string

	// Caché local
	MemcachedHost string

	// Base de datos de leads de contacto
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Notificaciones por correo de nuevos leads
	SMTPHost         string
	SMTPPort         string
	SMTPFrom         string
	SMTPPassword     string
	ContactRecipient string

	// Re-sincronización periódica del catálogo (formato cron)
	ResyncSpec string
}

// LoadConfig carga la configuración desde variables de entorno con valores por defecto
func LoadConfig() *Config {
	// Cargar .env si existe (en producción se usan variables del sistema)
	godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8000/api"),
		AuthBaseURL:      getEnv("AUTH_BASE_URL", "http://localhost:8000/auth"),
		AuthUsername:     os.Getenv("AUTH_USERNAME"),
		AuthPassword:     os.Getenv("AUTH_PASSWORD"),
		WebSocketURL:     getEnv("WEBSOCKET_URL", "ws://localhost:8000/ws/properties"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		AdminAPIToken:    os.Getenv("ADMIN_API_TOKEN"),
		MemcachedHost:    getEnv("MEMCACHED_HOST", "localhost:11211"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "vivienda_user"),
		DBPassword:       getEnv("DB_PASSWORD", "vivienda_password"),
		DBName:           getEnv("DB_NAME", "vivienda_db"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPFrom:         os.Getenv("SMTP_FROM"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		ContactRecipient: os.Getenv("CONTACT_RECIPIENT"),
		ResyncSpec:       getEnv("RESYNC_SPEC", "@every 1h"),
	}
	return cfg
}

// getEnv obtiene una variable de entorno o retorna un valor por defecto
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
