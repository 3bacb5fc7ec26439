package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"temple-backend/internal/auth"
	"temple-backend/internal/cache"
	"temple-backend/internal/config"
	"temple-backend/internal/database"
	"temple-backend/internal/db"
	"temple-backend/internal/handlers"
	"temple-backend/internal/health"
	h "temple-backend/internal/http"
	"temple-backend/internal/middleware"
	"temple-backend/internal/repositories"
	"temple-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, "migrations")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache disabled: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	groupRepo := repositories.NewGroupRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	acYearRepo := repositories.NewAcYearRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	groupService := services.NewGroupService(groupRepo, ledgerRepo)
	ledgerService := services.NewLedgerService(ledgerRepo, groupRepo, acYearRepo)
	acYearService := services.NewAcYearService(acYearRepo)
	entryService := services.NewEntryService(entryRepo, ledgerRepo, acYearService)
	calculator := services.NewBalanceCalculator(entryRepo, ledgerRepo)
	reportGenerator := services.NewReportGenerator(groupRepo, ledgerRepo, entryRepo, acYearService, calculator)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	acYearHandler := handlers.NewAcYearHandler(acYearService)
	entryHandler := handlers.NewEntryHandler(entryService)
	reportHandler := handlers.NewReportHandler(reportGenerator)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		groupHandler,
		ledgerHandler,
		acYearHandler,
		entryHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.NewCORS(cfg)(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
