package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/alert"
	"github.com/rogerio-castellano/stockroom/internal/auth"
	"github.com/rogerio-castellano/stockroom/internal/config"
	"github.com/rogerio-castellano/stockroom/internal/db"
	router "github.com/rogerio-castellano/stockroom/internal/http"
	"github.com/rogerio-castellano/stockroom/internal/http/handlers"
	rl "github.com/rogerio-castellano/stockroom/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/redissvc"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

var ctx = context.Background()

// @title Stockroom API
// @version 1.0
// @description REST API for multi-store inventory: catalog, stock ledger, transfers, low-stock alerts and purchase planning.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	redisService, err := redissvc.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer redisService.Close()
	handlers.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	catalogRepo := repo.NewPostgresCatalogRepository(database)
	stockRepo := repo.NewPostgresStockRepository(database)
	operationRepo := repo.NewPostgresOperationRepository(database)

	smtpCfg := alert.SMTPConfig{
		From:         cfg.SMTP.From,
		To:           cfg.SMTP.To,
		Server:       cfg.SMTP.Server,
		Port:         cfg.SMTP.Port,
		User:         cfg.SMTP.User,
		Password:     cfg.SMTP.Password,
		AuthDisabled: cfg.SMTP.AuthDisabled,
	}

	alerts := alert.NewRegistry()
	alerts.Register(alert.LogListener())
	alerts.Register(alert.RedisListener(redisService))
	if smtpCfg.Server != "" {
		alerts.Register(alert.EmailListener(smtpCfg))
		go alert.StartDailyAlertSummary(redisService, smtpCfg, 24*time.Hour)
	}

	svc := inventory.NewService(catalogRepo, stockRepo, operationRepo, alerts)

	handlers.SetInventoryService(svc)
	handlers.SetCatalogRepo(catalogRepo)
	handlers.SetOperationRepo(operationRepo)
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetLowStockThreshold(cfg.LowStockThreshold)

	r := router.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
