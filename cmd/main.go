package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"trailiva-backend/internal/config"
	audit_logs "trailiva-backend/internal/features/audit_logs"
	"trailiva-backend/internal/features/projects"
	"trailiva-backend/internal/features/request_tokens"
	system_healthcheck "trailiva-backend/internal/features/system/healthcheck"
	tasks_controllers "trailiva-backend/internal/features/tasks/controllers"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	users_controllers "trailiva-backend/internal/features/users/controllers"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	users_services "trailiva-backend/internal/features/users/services"
	workspaces_controllers "trailiva-backend/internal/features/workspaces/controllers"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	env_utils "trailiva-backend/internal/util/env"
	"trailiva-backend/internal/util/logger"
	_ "trailiva-backend/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Trailiva Backend API
// @version 1.0
// @description API for Trailiva workspaces, projects and tasks
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	runMigrations(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpDependencies()
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	cfg := config.GetEnv()

	host := ""
	if cfg.EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + cfg.HTTPPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	log.Info("Trailiva is running!", "http", cfg.AppBaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	select {
	case <-request_tokens.GetTokenSweeper().Stop().Done():
	case <-ctx.Done():
		log.Warn("Token sweeper did not stop in time")
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (only user auth, account verification and healthcheck should be public)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	request_tokens.GetRequestTokenController().RegisterPublicRoutes(v1)

	authMiddleware := users_middleware.AuthMiddleware(users_services.GetUserService())

	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
	workspaces_controllers.GetMembershipController().RegisterRoutes(protected)
	projects.GetProjectController().RegisterRoutes(protected)
	tasks_controllers.GetTaskController().RegisterRoutes(protected)
	request_tokens.GetRequestTokenController().RegisterRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	projects.SetupDependencies()
	tasks_services.SetupDependencies()
	request_tokens.SetupDependencies()

	// audit logs of a deleted workspace go with it
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(
		audit_logs.GetAuditLogService(),
	)
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	go runWithPanicLogging(log, "request token sweeper", func() {
		if err := request_tokens.GetTokenSweeper().Start(); err != nil {
			log.Error("Failed to start request token sweeper", "error", err)
		}
	})
}

func runWithPanicLogging(log *slog.Logger, serviceName string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in "+serviceName, "error", r)
		}
	}()
	fn()
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
	)
	cmd.Dir = config.GetEnv().MigrationsDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
			},
			AllowCredentials: true,
		}))
	}
}
