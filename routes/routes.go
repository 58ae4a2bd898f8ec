package routes

import (
	"net/http"

	"alfajr-backend/backup"
	"alfajr-backend/config"
	"alfajr-backend/controllers"
	"alfajr-backend/services"
	"alfajr-backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps carries everything the handlers need; no package globals.
type Deps struct {
	Store  *store.Store
	Engine *backup.Engine
	Saver  *services.AutoSaver
	Log    *zap.Logger
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "schemaVersion": config.SchemaVersion})
	})

	customerController := controllers.CustomerController{Store: deps.Store, Saver: deps.Saver}
	settingsController := controllers.SettingsController{Store: deps.Store}
	backupController := controllers.BackupController{Store: deps.Store, Engine: deps.Engine}
	statsController := controllers.StatsController{Store: deps.Store}

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/search", customerController.SearchCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.PUT("/:id/draft", customerController.AutosaveCustomer)
			customers.POST("/:id/flush", customerController.FlushAutosave)
			customers.DELETE("/:id", customerController.DeleteCustomer)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", settingsController.GetSettings)
			settings.GET("/:key", settingsController.GetSetting)
			settings.PUT("/:key", settingsController.SaveSetting)
		}

		// Backup routes
		backups := api.Group("/backups")
		{
			backups.POST("", backupController.CreateBackup)
			backups.GET("", backupController.ListBackups)
			backups.GET("/export", backupController.ExportBackup)
			backups.POST("/restore", backupController.RestoreBackup)
		}

		// Statistics route
		api.GET("/statistics", statsController.GetStatistics)

		// Data management
		api.POST("/data/clear", backupController.ClearData)
	}

	return r
}
