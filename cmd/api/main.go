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

	"github.com/relately/backend/internal/config"
	"github.com/relately/backend/internal/database"
	"github.com/relately/backend/internal/handler"
	aiService "github.com/relately/backend/internal/service/ai"
	chatService "github.com/relately/backend/internal/service/chat"
	checkinService "github.com/relately/backend/internal/service/checkin"
	profileService "github.com/relately/backend/internal/service/profile"
	quizService "github.com/relately/backend/internal/service/quiz"
	subscriptionService "github.com/relately/backend/internal/service/subscription"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required to verify auth provider tokens")
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := database.GetMigrator(db).Migrate(); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var responder chatService.Responder
	if cfg.AI.Enabled() {
		client, err := aiService.NewClient(ctx, cfg.AI)
		if err != nil {
			log.Fatalf("failed to initialize AI client: %v", err)
		}
		responder = client
		log.Println("AI client initialized successfully")
	} else {
		responder = aiService.NewStaticClient()
		log.Println("warning: ark credentials not configured, serving static advisor replies")
	}

	svcs := handler.Services{
		Chat:          chatService.NewManager(chatService.NewGateway(db), responder),
		Checkins:      checkinService.NewService(db),
		Profiles:      profileService.NewService(db),
		Quizzes:       quizService.NewService(db),
		Subscriptions: subscriptionService.NewService(db),
	}

	router := handler.NewRouter(svcs, cfg.Auth.JWTSecret)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Relately backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
