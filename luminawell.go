// @title LuminaWell API
// @version 1.0.0
// @description Personal wellness metrics API: trackers, recommendations and accounts
// @BasePath /
// @accept json
// @produce json
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	muxprom "gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/luminawell/luminawell-api/api"
	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/config"
	"github.com/luminawell/luminawell-api/infrastructure"
	"github.com/luminawell/luminawell-api/schema"
	"github.com/luminawell/luminawell-api/usecase"
)

func main() {
	logger := log.New(os.Stdout, api.MetricsAPIPrefix, log.LstdFlags|log.Lshortfile)

	cfg := config.Load()
	if cfg.AuthSecret == "" {
		logger.Fatal("Env var JWT_SECRET is not provided or empty")
	}

	authClient, err := auth.NewClient(cfg.AuthSecret)
	if err != nil {
		logger.Fatal(err)
	}

	adapter, err := infrastructure.NewMongoAdapter(cfg.MongoURI, logger)
	if err != nil {
		logger.Fatal(err)
	}

	metricRepo := infrastructure.NewMetricMongoRepository(adapter)
	userRepo, err := infrastructure.NewAccountMongoRepository(adapter, schema.RoleUser)
	if err != nil {
		logger.Fatal(err)
	}
	adminRepo, err := infrastructure.NewAccountMongoRepository(adapter, schema.RoleAdmin)
	if err != nil {
		logger.Fatal(err)
	}
	quoteRepo := infrastructure.NewQuoteMongoRepository(adapter)

	/*
	 * Instrumentation setup
	 */
	instrumentation := muxprom.NewCustomInstrumentation(true, "luminawell", "api", prometheus.DefBuckets, nil, prometheus.DefaultRegisterer)

	rtr := mux.NewRouter()
	rtr.Use(instrumentation.Middleware)
	rtr.Path("/metrics").Handler(promhttp.Handler())

	metricUC := usecase.NewMetricUseCase(logger, metricRepo)
	accountUCs := []*usecase.AccountUseCase{
		usecase.NewAccountUseCase(logger, userRepo, authClient, schema.RoleUser),
		usecase.NewAccountUseCase(logger, adminRepo, authClient, schema.RoleAdmin),
	}
	quoteUC := usecase.NewQuoteUseCase(logger, quoteRepo)

	luminaAPI := api.InitAPI(metricUC, accountUCs, quoteUC, adapter, authClient, logger)
	luminaAPI.SetHandlers("", rtr)

	// ability to return compressed (gzip/deflate) responses if client browser
	// accepts it, tracker list responses grow with the data history
	gzipHandler := handlers.CompressHandler(rtr)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: gzipHandler,
	}

	done := make(chan bool)
	go func() {
		logger.Printf("serving on %s (%s)", server.Addr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	// Wait for SIGINT (Ctrl+C) or SIGTERM to stop the service
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Printf("server shutdown: %v", err)
		}
		if err := adapter.Close(ctx); err != nil {
			logger.Printf("mongo disconnect: %v", err)
		}
		done <- true
	}()

	<-done
}
