package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/media"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("API_URL", "/api/v1")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	api := viper.GetString("API_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenTTL := time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour

	// --- Database ---
	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which the repositories rely on for conflict detection.
	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Media store ---
	var mediaStore media.Store
	if url := viper.GetString("CLOUDINARY_URL"); url != "" {
		store, err := media.NewCloudinaryStore(url)
		if err != nil {
			log.Fatalf("Failed to initialize media store: %v", err)
		}
		mediaStore = store
	} else {
		log.Println("CLOUDINARY_URL not set; image uploads are disabled")
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; order events are disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	userService := services.NewUserService(userRepo, mediaStore)
	categoryService := services.NewCategoryService(categoryRepo, mediaStore)
	productService := services.NewProductService(productRepo, categoryRepo, mediaStore)
	orderService := services.NewOrderService(orderRepo, events)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Fiber App ---
	// The request pipeline is composed explicitly: logger, then the access
	// gate, then the entity routes, then the 404 fallback.
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.AccessGate(api, authService))

	apiRoutes := app.Group(api)
	authHandler.RegisterRoutes(apiRoutes)
	userHandler.RegisterRoutes(apiRoutes)
	categoryHandler.RegisterRoutes(apiRoutes)
	productHandler.RegisterRoutes(apiRoutes)
	orderHandler.RegisterRoutes(apiRoutes)

	// Unmatched routes: negotiate the 404 body on the Accept header.
	app.Use(func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNotFound)
		switch c.Accepts("html", "json", "txt") {
		case "html":
			c.Type("html")
			return c.SendString("<h1>404 Not Found</h1>")
		case "json":
			return c.JSON(fiber.Map{"message": "404 Not Found"})
		default:
			c.Type("txt")
			return c.SendString("404 Not Found")
		}
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
