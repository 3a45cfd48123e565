// README: Entry point; loads config, wires services, and serves the travel plan API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelplan/internal/ai"
	"travelplan/internal/config"
	httptransport "travelplan/internal/http"
	"travelplan/internal/infra"
	"travelplan/internal/maps"
	"travelplan/internal/modules/destinations"
	"travelplan/internal/modules/quota"
	"travelplan/internal/modules/travelplan"
	"travelplan/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	gin.SetMode(cfg.HTTP.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Fatal("redis init", zap.Error(err))
	}
	defer redisClient.Close()

	completer, closeCompleter, err := newCompleter(ctx, cfg.Prompt)
	if err != nil {
		logger.Fatal("prompt provider init", zap.Error(err))
	}
	defer closeCompleter()

	requester := travelplan.NewRequester(completer, travelplan.RetryPolicy{
		Attempts:  cfg.Prompt.Attempts,
		BaseDelay: cfg.Prompt.Backoff,
	})

	places, err := maps.NewPlacesService(cfg.Destinations.MapsAPIKey)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}
	destinationsSvc := destinations.NewService(
		places,
		destinations.NewStore(redisClient, cfg.Destinations.CacheTTL),
		cfg.Destinations.Limit,
	)

	planStore := travelplan.NewStore(dbPool)
	planner := service.NewTripPlanner(requester, destinationsSvc, planStore)
	quotaSvc := quota.NewService(quota.NewStore(dbPool, cfg.Quota.MonthlyPlans))

	var verifier infra.TokenVerifier
	if cfg.AuthEnabled() {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, cfg.Firebase.CheckRevoked)
		if err != nil {
			logger.Fatal("firebase init", zap.Error(err))
		}
	} else {
		logger.Warn("firebase project not configured; /api routes are unauthenticated and quota is disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:         planner,
		Plans:           planStore,
		Quota:           quotaSvc,
		Verifier:        verifier,
		GenerateTimeout: cfg.HTTP.GenerateTimeout,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("travel plan api listening", zap.String("addr", cfg.HTTP.Addr), zap.String("provider", cfg.Prompt.Provider))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}

func newCompleter(ctx context.Context, cfg config.PromptConfig) (ai.Completer, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := ai.NewGeminiCompleter(ctx, cfg.GeminiKey, travelplan.PromptInstructions())
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		return ai.NewHyperleapCompleter(cfg.Endpoint, cfg.APIKey, cfg.Timeout), func() {}, nil
	}
}
