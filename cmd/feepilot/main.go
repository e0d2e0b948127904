package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/cache"
	"github.com/feepilot/feepilot/internal/pkg/database"
	"github.com/feepilot/feepilot/internal/pkg/env"
	"github.com/feepilot/feepilot/internal/pkg/router"
	"github.com/feepilot/feepilot/internal/pkg/scheduler"
)

func main() {
	app := NewApplication()

	sched := scheduler.New(billing.NewServiceFromDB(database.GetDB()))
	if err := sched.Start(); err != nil {
		log.Fatalf("[Scheduler] failed to start: %v", err)
	}
	defer sched.Stop()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "FeePilot",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
