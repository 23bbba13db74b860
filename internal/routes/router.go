package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantops/internal/config"
	"plantops/internal/delivery/http/handler"
	"plantops/internal/infrastructure/database/postgres"
	"plantops/internal/infrastructure/email"
	"plantops/internal/infrastructure/storage"
	"plantops/internal/logger"
	"plantops/internal/middleware"
	"plantops/internal/usecase/auth"
	"plantops/internal/usecase/incident"
	"plantops/internal/usecase/machine"
	"plantops/internal/usecase/operation"
	"plantops/internal/usecase/performance"
	"plantops/internal/usecase/profile"
	"plantops/internal/usecase/report"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	fileStore := storage.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	mailer := email.NewSMTPMailer(&cfg.SMTP)

	credentialRepository := postgres.NewCredentialRepository(db)
	profileRepository := postgres.NewProfileRepository(db)
	machineRepository := postgres.NewMachineRepository(db)
	operationRepository := postgres.NewOperationRepository(db)
	incidentRepository := postgres.NewIncidentRepository(db)
	performanceRepository := postgres.NewPerformanceRepository(db)
	reportRepository := postgres.NewReportRepository(db)

	authService := auth.NewService(credentialRepository, profileRepository, mailer, cfg)
	authHandler := handler.NewAuthHandler(authService)

	profileService := profile.NewService(credentialRepository, profileRepository)
	userHandler := handler.NewUserHandler(profileService)

	machineService := machine.NewService(machineRepository, fileStore)
	machineHandler := handler.NewMachineHandler(machineService)

	operationService := operation.NewService(operationRepository, machineRepository, profileRepository, fileStore)
	operationHandler := handler.NewOperationHandler(operationService)

	incidentService := incident.NewService(incidentRepository, machineRepository, fileStore)
	incidentHandler := handler.NewIncidentHandler(incidentService)

	performanceService := performance.NewService(performanceRepository, machineRepository, profileRepository)
	performanceHandler := handler.NewPerformanceHandler(performanceService)

	reportService := report.NewService(reportRepository, fileStore)
	reportHandler := handler.NewReportHandler(reportService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, profileRepository))
		{
			authHandler.RegisterProtectedRoutes(protected)

			// Read routes open to every authenticated role.
			machineHandler.RegisterReadRoutes(protected)
			operationHandler.RegisterReadRoutes(protected)
			incidentHandler.RegisterReadRoutes(protected)
			performanceHandler.RegisterReadRoutes(protected)

			// Operator routes: work on the floor.
			operator := protected.Group("")
			operator.Use(middleware.OperatorAndAbove())
			{
				operationHandler.RegisterOperatorRoutes(operator)
				incidentHandler.RegisterOperatorRoutes(operator)
				performanceHandler.RegisterOperatorRoutes(operator)
			}

			// Manager routes: planning and reporting.
			manager := protected.Group("")
			manager.Use(middleware.ManagerAndAbove())
			{
				machineHandler.RegisterManagerRoutes(manager)
				operationHandler.RegisterManagerRoutes(manager)
				incidentHandler.RegisterManagerRoutes(manager)
				reportHandler.RegisterReadRoutes(manager)
				reportHandler.RegisterManagerRoutes(manager)
			}

			// Admin routes: user management and destructive operations.
			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterRoutes(admin)
				machineHandler.RegisterAdminRoutes(admin)
				operationHandler.RegisterAdminRoutes(admin)
				incidentHandler.RegisterAdminRoutes(admin)
				performanceHandler.RegisterAdminRoutes(admin)
				reportHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
