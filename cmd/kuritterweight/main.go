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

	"github.com/joho/godotenv"

	adaptamqp "kuritterweight/internal/adapter/amqp"
	adapthttp "kuritterweight/internal/adapter/http"
	"kuritterweight/internal/adapter/line"
	adaptmcp "kuritterweight/internal/adapter/mcp"
	"kuritterweight/internal/adapter/memory"
	"kuritterweight/internal/adapter/postgres"
	"kuritterweight/internal/app"
	"kuritterweight/internal/config"
	"kuritterweight/internal/domain"
	"kuritterweight/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	var repo domain.WeightRepository
	var healthCheck func(context.Context) error
	if cfg.DatabaseURL == "" {
		log.Printf("warning: DATABASE_URL not set, using in-memory store")
		repo = memory.New()
	} else {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		repo = db
		healthCheck = db.Ping
	}

	notifier, err := line.New(line.Config{
		BaseURL:       cfg.LineAPIBaseURL,
		AccessToken:   cfg.ChannelAccessToken,
		ChannelID:     cfg.ChannelID,
		ChannelSecret: cfg.ChannelSecret,
		Timeout:       cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatalf("line client: %v", err)
	}

	opts := []app.WebhookOption{app.WithLogger(log.Default())}
	if cfg.RabbitMQURL != "" {
		pub, err := adaptamqp.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer func() { _ = pub.Close() }()
		opts = append(opts, app.WithPublisher(pub))
	}

	webhookSvc, err := app.NewWebhookService(repo, notifier, opts...)
	if err != nil {
		log.Fatal(err)
	}
	reportSvc := app.NewReportService(repo)
	tools := adaptmcp.NewTools(reportSvc, web.MCPAppHTML, log.Default())

	h := adapthttp.New(webhookSvc, reportSvc,
		adapthttp.WithMCP(adaptmcp.Handler(tools.NewServer())),
		adapthttp.WithPage(web.IndexHTML),
		adapthttp.WithHealthCheck(healthCheck),
	).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
