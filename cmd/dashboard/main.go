package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/app/service"
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/client"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/infrastructure/configloader"
	networkclient "crypto_dashboard/internal/infrastructure/network/client"
	networkdefinition "crypto_dashboard/internal/infrastructure/network/definition"
	"crypto_dashboard/internal/infrastructure/restapi"
	"crypto_dashboard/internal/infrastructure/seedloader"
	"crypto_dashboard/internal/pkg/logger"
	"crypto_dashboard/internal/pkg/utils"
	"crypto_dashboard/internal/provider"
	"crypto_dashboard/internal/repository"
	"crypto_dashboard/pkg/metrics"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Route package-level slog calls through zap so everything ends up in
	// one stream.
	logger.SetHandler(zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{}))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	cardCatalog := catalog.Default()
	appLogger := logger.NewSlogAdapter()

	cmcTimeout := time.Duration(cfg.CMC.RequestTimeoutMillis) * time.Millisecond
	cmcClient := client.NewCMCClient(cfg.CMC.BaseURL, cfg.CMC.APIKey, cmcTimeout, cfg.CMC.RequestsPerSecond, cfg.CMC.MaxIDsPerRequest, zapLogger)
	zapLogger.Info("Quote client initialized", zap.String("baseURL", cfg.CMC.BaseURL))

	rateTimeout := time.Duration(cfg.RateAPI.RequestTimeoutMillis) * time.Millisecond
	rateClient := client.NewRateAPIClient(cfg.RateAPI.BaseURL, rateTimeout, cfg.RateAPI.RequestsPerSecond, zapLogger)
	zapLogger.Info("Rate client initialized", zap.String("baseURL", cfg.RateAPI.BaseURL))

	nanoClient := client.NewNanoRPCClient(
		cfg.NanoNode.Endpoint,
		time.Duration(cfg.NanoNode.RequestTimeoutMillis)*time.Millisecond,
		cfg.NanoNode.MaxAccountsPerBatchCall,
		zapLogger,
	)
	bananoClient := client.NewNanoRPCClient(
		cfg.BananoNode.Endpoint,
		time.Duration(cfg.BananoNode.RequestTimeoutMillis)*time.Millisecond,
		cfg.BananoNode.MaxAccountsPerBatchCall,
		zapLogger,
	)
	balanceClient := client.NewNanoBananoClient(nanoClient, bananoClient)
	zapLogger.Info("Node RPC clients initialized")

	gasClient := networkclient.NewGasClient(
		networkdefinition.NewProvider(),
		time.Duration(cfg.Gas.ConnectTimeoutSeconds)*time.Second,
		time.Duration(cfg.Gas.CallTimeoutSeconds)*time.Second,
		zapLogger,
	)

	cacheTTL := time.Duration(cfg.Providers.CacheTTLMinutes) * time.Minute
	defaultConvert := []string{
		entity.DefaultCurrencyPreference.Primary,
		entity.DefaultCurrencyPreference.Secondary,
		entity.DefaultCurrencyPreference.Tertiary,
	}
	providers := map[entity.DataDomain]port.DataProvider{
		entity.DomainCryptoQuote:   provider.NewQuoteProvider(cmcClient, defaultConvert, cacheTTL, appLogger),
		entity.DomainFiatRate:      provider.NewRateProvider(rateClient, cacheTTL, appLogger),
		entity.DomainChainBalance:  provider.NewBalanceProvider(balanceClient, client.DivisorFor, cacheTTL, appLogger),
		entity.DomainGlobalMetrics: provider.NewMetricsProvider(cmcClient, entity.DefaultCurrencyPreference.Primary, cacheTTL, appLogger),
	}
	zapLogger.Info("Data providers initialized", zap.Duration("cacheTTL", cacheTTL))

	store := repository.NewInMemoryStore()
	if cfg.Seed.Path != "" {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seedloader.Load(seedCtx, cfg.Seed.Path, store, appLogger.Info); err != nil {
			zapLogger.Fatal("Failed to load seed data", zap.Error(err))
		}
		cancelSeed()
	}

	dashboardSvc := service.NewDashboardService(store, store, cardCatalog, providers, appLogger)
	zapLogger.Info("DashboardService initialized")

	handler := restapi.NewDashboardHandler(dashboardSvc, gasClient, appLogger)
	router := restapi.SetupRouter(handler, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
