package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tutorslink/api/api"
	"github.com/tutorslink/api/config"
	"github.com/tutorslink/api/database"
	"github.com/tutorslink/api/router"
	"github.com/tutorslink/api/services/cron"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(env)
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Outbound side-effect dispatcher: notifications, emails, webhooks
	// and audit entries all run here, decoupled from request handling.
	dispatcher := dispatch.New(4, 256)
	dispatcher.Start()

	// Retention cron jobs (notification and audit purge)
	var cronManager *cron.Manager
	if env.CRON_ENABLED {
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			cronManager = cron.NewManager(db)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
				// Don't fail the app, just log the warning
			}
		}
	}

	// Defer closing DB, stopping cron jobs and draining the dispatcher
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		dispatcher.Stop()
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, env, dispatcher)

	return server.Run()
}
