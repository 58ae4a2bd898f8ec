package main

import (
	"context"
	"fmt"
	"os"

	"alfajr-backend/backup"
	"alfajr-backend/config"
	"alfajr-backend/routes"
	"alfajr-backend/services"
	"alfajr-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	config.InitLogger()
	log := config.Log
	defer log.Sync()

	if err := config.ConnectDB(config.DBPath()); err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	st := store.New(config.DB, log)

	ctx := context.Background()
	if err := st.InitializeSettings(ctx); err != nil {
		log.Fatal("failed to seed settings", zap.Error(err))
	}

	engine := backup.NewEngine(st, log)
	saver := services.NewAutoSaver(st, log, services.DefaultAutoSaveDelay)
	defer saver.FlushAll(ctx)

	scheduler := services.NewBackupScheduler(engine, st, log)
	if err := scheduler.Start(ctx); err != nil {
		log.Error("failed to start backup scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	r := routes.SetupRouter(routes.Deps{
		Store:  st,
		Engine: engine,
		Saver:  saver,
		Log:    log,
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
