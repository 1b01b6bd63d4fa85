package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/controller"
	"github.com/api-sage/minibank-core/internal/adapter/http/middleware"
	"github.com/api-sage/minibank-core/internal/adapter/http/router"
	"github.com/api-sage/minibank-core/internal/adapter/repository/postgres"
	"github.com/api-sage/minibank-core/internal/config"
	"github.com/api-sage/minibank-core/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	approvalRepo := postgres.NewApprovalRequestRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	productRepo := postgres.NewProductRepository(db)
	sequenceRepo := postgres.NewSequenceRepository(db)
	branchRepo := postgres.NewBranchRepository(db)

	txRunner := postgres.NewTxRunner(db)
	sequenceService := services.NewSequenceService(sequenceRepo)
	recorderService := services.NewRecorderService(transactionRepo, sequenceService)
	approvalService := services.NewApprovalService(txRunner, approvalRepo, accountRepo, customerRepo)
	ledgerService := services.NewLedgerService(txRunner, accountRepo, transactionRepo, recorderService)
	transferService := services.NewTransferService(txRunner, accountRepo, customerRepo, recorderService)
	accountService := services.NewAccountService(txRunner, accountRepo, customerRepo, productRepo, sequenceService, recorderService, approvalService)
	customerService := services.NewCustomerService(txRunner, customerRepo, branchRepo, sequenceService, approvalService)

	authMiddleware := middleware.ChannelAuth(cfg.ChannelID, cfg.ChannelKeyHash)
	mux := router.New(
		controller.NewAccountController(accountService, ledgerService),
		controller.NewTransactionController(ledgerService),
		controller.NewTransferController(transferService),
		controller.NewApprovalController(approvalService),
		controller.NewCustomerController(customerService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on %s (bank code %s)", server.Addr, cfg.BankCode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-shutdown
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
