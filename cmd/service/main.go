package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"party-service/internal/catalog"
	"party-service/internal/party"
	"party-service/internal/profile"
)

func main() {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		log.Fatalf("party-service: config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("party-service: pg: %v", err)
	}
	defer pool.Close()

	if err := party.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("party-service: migrate party: %v", err)
	}
	if err := profile.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("party-service: migrate profile: %v", err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("party-service: redis: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	partyStore := party.NewPostgresStore(pool)
	broadcaster := party.NewBroadcaster(rdb, partyStore)
	partyServer := party.NewServer(partyStore, broadcaster)

	profileServer := profile.NewServer(profile.NewPostgresStore(pool))
	catalogServer := catalog.NewServer(catalog.NewSpotifyClient(cfg.CatalogAPIKey, cfg.CatalogSearchURL))

	auth := jwtAuthMiddleware(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Mount("/", partyServer.Router(auth))
	r.Mount("/users", profileServer.Router(auth))
	r.Mount("/catalog", catalogServer.Router(auth))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("party-service on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("party-service: listen: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownGraceSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("party-service: shutdown: %v", err)
	}
}
