package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/contract-ledger/internal/config"
	"github.com/ignatzorin/contract-ledger/internal/db"
	"github.com/ignatzorin/contract-ledger/internal/goroutine"
	httpHandlers "github.com/ignatzorin/contract-ledger/internal/http/handlers"
	httpRouter "github.com/ignatzorin/contract-ledger/internal/http/router"
	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/repository"
	"github.com/ignatzorin/contract-ledger/internal/service"
	"github.com/ignatzorin/contract-ledger/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Setup(cfg.Env)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, dbConn); err != nil {
			logger.Log.Fatalf("main: ошибка миграций: %v", err)
		}
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Репозитории.
	profileRepo := repository.NewProfileRepository(dbConn)
	contractRepo := repository.NewContractRepository(dbConn)
	ledgerRepo := repository.NewLedgerRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws-hub", hub.Run)

	// Сервисы.
	settlementService := service.NewSettlementService(contractRepo, ledgerRepo)
	settlementService.SetPublisher(hub)
	depositService := service.NewDepositService(contractRepo, profileRepo)
	depositService.SetPublisher(hub)
	contractService := service.NewContractService(contractRepo)
	reportService := service.NewReportService(reportRepo)

	// HTTP хэндлеры.
	h := httpRouter.Handlers{
		Health:    httpHandlers.NewHealthHandler(dbConn),
		Contracts: httpHandlers.NewContractHandler(contractService),
		Jobs:      httpHandlers.NewJobHandler(contractService, settlementService),
		Balances:  httpHandlers.NewBalanceHandler(depositService),
		Admin:     httpHandlers.NewAdminHandler(reportService),
		WS:        httpHandlers.NewWSHandler(hub, tokenManager, profileRepo, cfg.AllowedOrigins),
	}
	if cfg.IsDevelopment() {
		h.Seed = httpHandlers.NewSeedHandler(service.NewSeedService(repository.NewSeedRepository(dbConn)))
	}

	engine := httpRouter.SetupRouter(cfg, h, tokenManager, profileRepo)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
