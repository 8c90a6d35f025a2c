package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"mdsidecar/internal/admission"
	"mdsidecar/internal/config"
	"mdsidecar/internal/convert"
	"mdsidecar/internal/handler"
	"mdsidecar/internal/middleware"
	"mdsidecar/internal/tools"
	"mdsidecar/internal/worker"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Re-exec'd as the conversion worker: run the library conversion in this
	// isolated child process and exit.
	if len(os.Args) > 1 && os.Args[1] == worker.Command {
		os.Exit(worker.Main(os.Args[2:]))
	}

	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"max_concurrent_conversions", cfg.MaxConcurrentConversions,
		"max_queued_conversions", cfg.MaxQueuedConversions,
		"conversion_timeout", cfg.ConversionTimeout.String(),
	)

	registry, err := tools.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load tool registry: %v", err)
	}

	converterService, err := convert.NewService(cfg, registry, logger)
	if err != nil {
		log.Fatalf("Failed to setup converters: %v", err)
	}

	admissionController := admission.NewController(cfg.MaxConcurrentConversions, cfg.MaxQueuedConversions, logger)

	convertHandler := handler.NewConvertHandler(converterService, admissionController, registry, cfg, logger)

	logger.Info("services initialized",
		"pandoc_available", registry.Available("pandoc"),
		"markitdown_available", registry.Available("markitdown"),
		"antiword_available", registry.Available("antiword"),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", convertHandler.Health)
	mux.HandleFunc("POST /convert", convertHandler.Convert)

	// Build middleware chain (applied in reverse order, they wrap each other)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h,
		// Uploads can be slow and queued requests wait up to the full
		// conversion timeout, so only the header read gets a deadline.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
