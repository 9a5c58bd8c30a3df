package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventaria/internal/handlers"
	"inventaria/internal/models"
	"inventaria/internal/repositories"
	"inventaria/internal/services"
	"inventaria/pkg/events"
	"inventaria/pkg/uploads"
)

func main() {
	seed := flag.Bool("seed", false, "Seed the database with sample categories and items")
	flag.Parse()

	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "inventaria.db")
	viper.SetDefault("UPLOAD_DIR", "./data/uploads")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publication
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	uploadDir := viper.GetString("UPLOAD_DIR")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Database (GORM) ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Item{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Events Client (optional) ---
	var publisher services.Publisher
	if rabbitMQURL != "" {
		eventsClient, err := events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: events disabled, failed to initialize RabbitMQ client: %v", err)
		} else {
			publisher = eventsClient
			defer eventsClient.Close()
			// Change-log consumer: every published change lands in the log.
			if err := eventsClient.ConsumeChanges(func(ev events.Event) error {
				log.Printf("Inventory change: %s %s (ID: %s, Name: %s)", ev.Entity, ev.Action, ev.ID, ev.Name)
				return nil
			}); err != nil {
				log.Printf("Warning: failed to start inventory change consumer: %v", err)
			}
		}
	}

	// --- Initialize Upload Storage ---
	saver, err := uploads.NewSaver(uploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// --- Initialize Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)

	if *seed {
		log.Println("Seeding database with sample data...")
		seedInventory(categoryRepo, itemRepo)
	}

	// --- Initialize Services ---
	categoryService := services.NewCategoryService(categoryRepo, itemRepo, publisher)
	itemService := services.NewItemService(itemRepo, categoryRepo, publisher)
	dashboardService := services.NewDashboardService(categoryRepo, itemRepo)

	// --- Initialize Handlers ---
	inventoryHandler := handlers.NewInventoryHandler(dashboardService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	itemHandler := handlers.NewItemHandler(itemService, saver)

	// --- Initialize Fiber App ---
	engine := html.New("./web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	app.Static(uploads.URLPrefix, uploadDir)

	inv := app.Group("/inv")
	inventoryHandler.RegisterRoutes(inv)
	categoryHandler.RegisterRoutes(inv)
	itemHandler.RegisterRoutes(inv)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM dialect. sqlite keeps local
// development dependency-free; postgres is the deployment target.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedInventory populates the store with a few sample categories and items.
// Category seeding is idempotent by name, matching the create workflow.
func seedInventory(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository) {
	categories := []models.Category{
		{Name: "Tablet", Description: "Portable computer tablets with a screen larger than the average smartphone."},
		{Name: "Laptop", Description: "Mobile computing with a keyboard, for on-the-go computer support."},
		{Name: "PlayStation_VR", Description: "Virtual reality hardware that lets you step inside a computer-generated 3D world."},
	}
	for i := range categories {
		if existing, err := categoryRepo.GetByName(categories[i].Name); err == nil {
			categories[i] = *existing
			continue
		}
		if err := categoryRepo.Create(&categories[i]); err != nil {
			log.Printf("Error seeding category %s: %v", categories[i].Name, err)
		} else {
			log.Printf("Seeded category: %s (ID: %s)", categories[i].Name, categories[i].ID)
		}
	}

	items := []models.Item{
		{Name: "Samsung - Galaxy Tab A (2019)", Description: "32GB - Black - Model: SM-T510NZKAXAR - SKU: 6335112", CategoryID: categories[0].ID, Price: "1000$", NumberInStock: 500},
		{Name: "Microsoft - Surface Laptop 3", Description: "Touch-Screen - 8GB Memory - 128GB SSD - Platinum - Model: V4G-00001", CategoryID: categories[1].ID, Price: "2000$", NumberInStock: 500},
		{Name: "Sony Interactive Entertainment", Description: "PlayStation VR Marvel's Iron Man VR Bundle Model: 3004152 - SKU: 6415435", CategoryID: categories[2].ID, Price: "400$", NumberInStock: 500},
	}
	for i := range items {
		if err := itemRepo.Create(&items[i]); err != nil {
			log.Printf("Error seeding item %s: %v", items[i].Name, err)
		} else {
			log.Printf("Seeded item: %s (ID: %s)", items[i].Name, items[i].ID)
		}
	}
}
