package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bak-counter/config"
	"bak-counter/handlers"
	"bak-counter/middleware"
	"bak-counter/models"
	"bak-counter/services"
	"bak-counter/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BakRequest{},
		&models.ValidationRequest{},
		&models.Bet{},
		&models.Trophy{},
		&models.UserTrophy{},
		&models.EventLog{},
		&models.HallOfFameEntry{},
	); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	store, err := storage.NewSpacesClient(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Spaces client")
	}

	logSvc := services.NewEventLogService(db)
	trophySvc := services.NewTrophyService(db, logSvc)
	userSvc := services.NewUserService(db, store, logSvc, trophySvc, cfg.ProfileImageMaxBytes)
	bakSvc := services.NewBakRequestService(db, logSvc)
	betSvc := services.NewBetService(db, logSvc, trophySvc)
	validationSvc := services.NewValidationService(db, store, logSvc, trophySvc, cfg.IsAdminEmail, cfg.EvidenceMaxBytes, cfg.PageSize)
	hofSvc := services.NewHallOfFameService(db)

	if err := trophySvc.SeedDefaultTrophies(); err != nil {
		log.WithError(err).Fatal("failed to seed trophies")
	}

	scheduler, err := services.StartKeepAlive(db, cfg.KeepAliveInterval)
	if err != nil {
		log.WithError(err).Fatal("failed to start keep-alive job")
	}
	defer func() { _ = scheduler.Shutdown() }()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.EvidenceMaxBytes),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-User-ID, X-User-Google-ID, X-User-Email, X-User-Name",
		AllowCredentials: true,
	}))

	auth := middleware.UserContext(db, cfg)

	handlers.SetupAuthRoutes(app, userSvc)
	handlers.SetupDashboardRoutes(app, userSvc, bakSvc, betSvc, logSvc, auth)
	handlers.SetupBakRoutes(app, bakSvc, auth)
	handlers.SetupValidationRoutes(app, validationSvc, auth)
	handlers.SetupBetRoutes(app, betSvc, auth)
	handlers.SetupProfileRoutes(app, userSvc, auth)
	handlers.SetupHallOfFameRoutes(app, hofSvc, auth)
	handlers.SetupAdminRoutes(app, userSvc, trophySvc, store, auth)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	log.WithField("addr", cfg.ListenAddr).Info("server running")

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
