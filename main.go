package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/jromanati/vivienda-chile-sub000/config"
	"github.com/jromanati/vivienda-chile-sub000/consumers"
	"github.com/jromanati/vivienda-chile-sub000/controllers"
	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/middleware"
	"github.com/jromanati/vivienda-chile-sub000/repositories"
	"github.com/jromanati/vivienda-chile-sub000/services"
)

func main() {
	log.Println("Starting Catalog API...")

	// ============================================
	// 1. CONFIGURACIÓN
	// ============================================
	cfg := config.LoadConfig()
	log.Printf("Configuration loaded: Port=%s, APIBaseURL=%s, MemcachedHost=%s",
		cfg.Port, cfg.APIBaseURL, cfg.MemcachedHost)

	// ============================================
	// 2. BASE DE DATOS DE LEADS (MySQL)
	// ============================================
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	log.Println("Connecting to MySQL...")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := db.AutoMigrate(&domain.ContactLead{}); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("MySQL connection ready")

	// ============================================
	// 3. REPOSITORIOS Y SERVICIOS
	// ============================================
	store := repositories.NewStoreRepository(cfg.MemcachedHost)
	leadRepo := repositories.NewLeadRepository(db)

	tokenStore := services.NewTokenStore(store)
	gateway := services.NewAuthGateway(tokenStore, cfg.AuthBaseURL, cfg.AuthUsername, cfg.AuthPassword)
	client := services.NewCatalogClient(gateway, tokenStore, store, cfg.APIBaseURL)
	refresher := services.NewCatalogRefresher(client, services.DefaultQuietWindow)

	mailer := &services.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPFrom,
		Password: cfg.SMTPPassword,
	}
	contactService := services.NewContactService(leadRepo, mailer, cfg.ContactRecipient)
	log.Println("Services initialized")

	// ============================================
	// 4. CARGA INICIAL DEL CATÁLOGO
	// ============================================
	// En frío: poblar la copia local en segundo plano para que la
	// primera visita no pague el round-trip completo
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := client.GetProperties(ctx); err != nil {
			log.Printf("Initial catalog load failed (will retry on demand): %v", err)
		}
	}()

	// ============================================
	// 5. CANAL DE INVALIDACIÓN EN VIVO
	// ============================================
	wsConsumer := consumers.NewWebSocketConsumer(cfg.WebSocketURL, refresher)
	wsConsumer.Start()
	log.Println("WebSocket consumer started")

	// Fuente alternativa por cola (solo si está configurada)
	var mqConsumer *consumers.RabbitMQConsumer
	if cfg.RabbitMQURL != "" {
		mqConsumer, err = consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, "properties_queue", refresher)
		if err != nil {
			log.Fatalf("Failed to create RabbitMQ consumer: %v", err)
		}
		if err := mqConsumer.Start(); err != nil {
			log.Fatalf("Failed to start RabbitMQ consumer: %v", err)
		}
		log.Println("RabbitMQ consumer started")
	}

	// Re-sincronización periódica por si el canal en vivo se pierde
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ResyncSpec, refresher.Trigger); err != nil {
		log.Fatalf("Failed to schedule catalog resync: %v", err)
	}
	scheduler.Start()

	// ============================================
	// 6. CONTROLADORES Y RUTAS
	// ============================================
	catalogController := controllers.NewCatalogController(client)
	contactController := controllers.NewContactController(contactService)
	adminController := controllers.NewAdminController(client, refresher, leadRepo)

	router := gin.Default()

	// CORS - permitir requests desde el frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", catalogController.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/properties", catalogController.List)
		api.GET("/properties/:id", catalogController.Detail)
		api.GET("/featured", catalogController.Featured)
		api.POST("/contact", contactController.Submit)
	}

	if cfg.AdminAPIToken == "" {
		log.Println("WARNING: ADMIN_API_TOKEN not set, admin routes will reject all requests")
	}
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminAPIToken))
	{
		admin.POST("/properties", adminController.CreateProperty)
		admin.PUT("/properties/:id", adminController.UpdateProperty)
		admin.DELETE("/properties/:id", adminController.DeleteProperty)
		admin.GET("/leads", adminController.ListLeads)
	}

	log.Println("Routes configured:")
	log.Println("   - GET  /health")
	log.Println("   - GET  /api/properties")
	log.Println("   - GET  /api/properties/:id")
	log.Println("   - GET  /api/featured")
	log.Println("   - POST /api/contact")
	log.Println("   - POST /api/admin/properties")
	log.Println("   - PUT  /api/admin/properties/:id")
	log.Println("   - DELETE /api/admin/properties/:id")
	log.Println("   - GET  /api/admin/leads")

	// ============================================
	// 7. SERVIDOR HTTP CON GRACEFUL SHUTDOWN
	// ============================================
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Catalog API listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Catalog API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	scheduler.Stop()
	wsConsumer.Close()
	if mqConsumer != nil {
		if err := mqConsumer.Close(); err != nil {
			log.Printf("Error closing RabbitMQ consumer: %v", err)
		}
	}

	log.Println("Catalog API shut down complete")
}
