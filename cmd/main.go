/**
 * @description
 * This is the main entry point for the business-management backend. It is
 * responsible for initializing all components of the service, including
 * configuration, database connection, message broker, repository, the core
 * application services, the cron scheduler, and the HTTP server. It wires
 * everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages for the service.
 * - pkg/rabbitmq: Client for RabbitMQ.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/api"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/config"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
	"github.com/Amanchoudhary192002/Business-Management-System/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("level=info component=bootstrap msg=\"no .env file found, using environment variables\"")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"jwt secret must be configured\" env=JWT_SECRET")
	}

	log.Printf("level=info component=bootstrap msg=\"starting business-management backend\" port=%s", cfg.ServerPort)

	// Establish a connection pool to the PostgreSQL database.
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// Ensure required tables exist (idempotent).
	if err := store.EnsureSchema(context.Background(), dbpool); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"schema setup failed\" err=%v", err)
	}

	// Initialize the RabbitMQ producer to publish events. The service only
	// publishes, so a missing broker degrades to a no-op fallback.
	var producer rabbitmq.Publisher
	if p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", err)
		producer = &rabbitmq.EventProducerFallback{}
	} else {
		producer = p
		defer producer.Close()
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	// Optional Redis client for login rate limiting.
	var loginLimiter *app.RedisLoginRateLimiter
	if cfg.LoginRateLimitPerMinute > 0 {
		if cfg.RedisURL == "" {
			log.Println("level=warn component=bootstrap msg=\"redis url missing; login rate limiting disabled\" env=REDIS_URL")
		} else if redisOptions, parseErr := redis.ParseURL(cfg.RedisURL); parseErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; login rate limiting disabled\" err=%v", parseErr)
		} else {
			redisClient := redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis ping failed; login rate limiting disabled\" err=%v", pingErr)
				redisClient.Close()
			} else {
				defer redisClient.Close()
				loginLimiter = app.NewRedisLoginRateLimiter(redisClient, cfg.RedisRateLimitPrefix)
				log.Println("level=info component=bootstrap msg=\"redis connected\"")
			}
			cancelPing()
		}
	}

	// Initialize the data access layer and the application services.
	repository := store.NewPostgresRepository(dbpool)
	authService := app.NewAuthService(repository, producer, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, cfg.BcryptCost)
	service := app.NewService(repository, producer, cfg.LowStockThreshold)

	if cfg.SeedDefaultAccount {
		seedDefaultAccount(context.Background(), repository, authService)
	}

	// Start the cron scheduler for the low-stock digest job.
	scheduler := app.NewScheduler(app.NewJobs(repository, producer, cfg.LowStockThreshold), cfg.LowStockDigestSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	// Set up the HTTP router.
	handlers := api.NewHandlers(service, authService, loginLimiter, cfg.LoginRateLimitPerMinute)
	router := api.NewRouter(handlers, authService, cfg.CORSAllowedOrigins)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}

// seedDefaultAccount creates a default demo account on startup when missing,
// so a fresh install has something to log in with.
func seedDefaultAccount(ctx context.Context, repo store.Repository, auth *app.AuthService) {
	const defaultEmail = "aman@example.com"

	if _, err := repo.FindAccountByEmail(ctx, defaultEmail); err == nil {
		log.Println("level=info component=bootstrap msg=\"default account already exists\"")
		return
	} else if !errors.Is(err, store.ErrAccountNotFound) {
		log.Printf("level=warn component=bootstrap msg=\"default account lookup failed\" err=%v", err)
		return
	}

	_, err := auth.Register(ctx, domain.RegisterRequest{
		BusinessName: "Aman's Business",
		Email:        defaultEmail,
		Password:     "Aman",
	})
	if err != nil {
		log.Printf("level=warn component=bootstrap msg=\"default account creation failed\" err=%v", err)
		return
	}
	log.Println("level=info component=bootstrap msg=\"default account created\"")
}
