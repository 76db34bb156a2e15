package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-monolith/internal/factory"
	"github.com/example/todo-monolith/modules/api"
	"github.com/example/todo-monolith/modules/auth"
	"github.com/example/todo-monolith/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo Monolith ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule()) // Independent module (users, tokens, verification)
	app.Register(todo.NewModule()) // Independent module (todo storage and rules)
	app.Register(api.NewModule())  // Depends on auth and todo modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Migrations have run by now, so seeding sees the final schema.
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(); err != nil {
			log.Printf("Failed to seed demo data: %v", err)
		}
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// seedDemoData fills the shared database with two demo accounts and
// their todos. It opens its own connection to the same file the
// modules use.
func seedDemoData() error {
	dbPath := os.Getenv("TODO_DB_PATH")
	if dbPath == "" {
		dbPath = "todoapp.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	return factory.NewSeeder(db).Seed()
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register  - Register a new account")
	log.Println("  POST   /api/v1/auth/login     - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh   - Refresh access token")
	log.Println("  GET    /api/v1/auth/verify    - Verify email address")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  DELETE /api/v1/account        - Delete account and its todos")
	log.Println("  GET    /dashboard             - List your todos")
	log.Println("  POST   /todo                  - Create a todo")
	log.Println("  PATCH  /todo/:id              - Toggle a todo finished/unfinished")
	log.Println("  DELETE /todo/:id              - Delete a todo")
	log.Println("")
	log.Println("Seed demo data with SEED_DEMO_DATA=true (accounts first@example.com")
	log.Println("and second@example.com, password \"password\")")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
