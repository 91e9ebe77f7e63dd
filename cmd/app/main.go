package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/postgres/kvstore"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	ctx := context.Background()
	root, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	runDemo(ctx, root, configs, logger)
}

func getConfigs() cmd.Config {
	// Missing .env is fine; every variable has a default.
	_ = godotenv.Load(".env")

	timing := services.DefaultProgressionTiming()

	return cmd.Config{
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "orderflow"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		HistoryStorageKey: envOrDefault("HISTORY_STORAGE_KEY", "orderHistory"),

		ShortDelay:   durationOrDefault("PROGRESSION_SHORT_DELAY", timing.ShortDelay),
		MediumDelay:  durationOrDefault("PROGRESSION_MEDIUM_DELAY", timing.MediumDelay),
		CancelDelay:  durationOrDefault("PROGRESSION_CANCEL_DELAY", timing.CancelDelay),
		DeliverDelay: durationOrDefault("PROGRESSION_DELIVER_DELAY", timing.DeliverDelay),

		CancelProbability:  floatOrDefault("PROGRESSION_CANCEL_PROBABILITY", timing.CancelProbability),
		StallProbability:   floatOrDefault("PROGRESSION_STALL_PROBABILITY", timing.StallProbability),
		DeliverProbability: floatOrDefault("PROGRESSION_DELIVER_PROBABILITY", timing.DeliverProbability),

		PollInterval: durationOrDefault("POLL_INTERVAL", 2*time.Second),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return parsed
}

func floatOrDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("Invalid number in %s: %v", key, err)
	}
	return parsed
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	createDatabaseIfMissing(configs)

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&kvstore.RecordDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func createDatabaseIfMissing(configs cmd.Config) {
	db, err := sql.Open("postgres", configs.MaintenanceDSN())
	if err != nil {
		log.Fatalf("Failed to open maintenance connection: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).
		Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if exists {
		return
	}

	// Identifiers cannot be parameterized; the name comes from configuration,
	// not user input.
	if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName)); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
}

// runDemo walks one order through its full lifecycle: login, fill a cart,
// submit, then follow the polled status until it settles.
func runDemo(ctx context.Context, root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	if err := root.Session().Login(account.ID("demo")); err != nil {
		log.Fatalf("Failed to log in: %v", err)
	}

	shoppingCart := cart.NewCart()
	for _, item := range []struct {
		productID string
		name      string
		unitPrice float64
	}{
		{"p1", "Wireless Mouse", 29.99},
		{"p2", "Mechanical Keyboard", 89.50},
		{"p1", "Wireless Mouse", 29.99},
	} {
		line, err := cart.NewLine(item.productID, item.name, item.unitPrice)
		if err != nil {
			log.Fatalf("Invalid demo item: %v", err)
		}
		if err = shoppingCart.Add(line); err != nil {
			log.Fatalf("Failed to fill cart: %v", err)
		}
	}

	terminal := make(chan order.Status, 1)
	jobManager := root.CreateJobManager(func(o *order.Order) {
		logger.Info("Delivery update", "orderId", o.ID(), "status", o.Status())
		if o.Status().IsTerminal() {
			select {
			case terminal <- o.Status():
			default:
			}
		}
	})

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	submitCmd, err := commands.NewSubmitOrderCommand(shoppingCart.Lines(), "leave at the door")
	if err != nil {
		log.Fatalf("Failed to build submission: %v", err)
	}

	submitted, err := root.CreateSubmitOrderCommandHandler().Handle(ctx, submitCmd)
	if err != nil {
		log.Fatalf("Failed to submit order: %v", err)
	}
	shoppingCart.Clear()

	logger.Info("Submitted order", "orderId", submitted.ID(), "total", submitted.Total(),
		"partner", submitted.Partner().Name())

	// A stalled order never reaches a terminal status, so cap the wait a bit
	// past the longest scheduled delay.
	deadline := configs.DeliverDelay + 3*configs.PollInterval
	select {
	case status := <-terminal:
		logger.Info("Order settled", "status", status)
	case <-time.After(deadline):
		logger.Info("Order did not settle in time, it is stuck in delivery")
	}

	historyHandler := root.CreateGetOrderHistoryQueryHandler()
	orders, err := historyHandler.Handle(ctx, queries.NewGetOrderHistoryQuery())
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}

	for _, past := range orders {
		logger.Info("History entry", "orderId", past.ID(), "status", past.Status(),
			"total", past.Total(), "createdAt", past.CreatedAt())
	}
}
