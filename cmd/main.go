/**
 * @description
 * This is the main entry point for the roots-gateway. It is responsible for
 * initializing all components of the service, including configuration, the
 * five ledger service clients, the RabbitMQ audit mirror, the optional Redis
 * rate limiter, the orchestration service, and the HTTP server. It wires
 * everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/go-chi/chi/v5: For HTTP routing.
 * - github.com/redis/go-redis/v9: Redis client for rate limiting.
 * - internal/api, internal/app, internal/config: Internal packages for the service.
 * - pkg/*client, pkg/rabbitmq: Clients for the remote ledger services and RabbitMQ.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/icroots/roots-gateway/internal/api"
	"github.com/icroots/roots-gateway/internal/app"
	"github.com/icroots/roots-gateway/internal/config"
	"github.com/icroots/roots-gateway/pkg/collateralclient"
	"github.com/icroots/roots-gateway/pkg/eventbusclient"
	"github.com/icroots/roots-gateway/pkg/loansclient"
	rmrabbit "github.com/icroots/roots-gateway/pkg/rabbitmq"
	"github.com/icroots/roots-gateway/pkg/reputeclient"
	"github.com/icroots/roots-gateway/pkg/trustaiclient"
)

func main() {
	// Load application configuration from environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	for env, value := range map[string]string{
		"REPUTE_SERVICE_URL":     cfg.ReputeServiceURL,
		"COLLATERAL_SERVICE_URL": cfg.CollateralServiceURL,
		"LOANS_SERVICE_URL":      cfg.LoansServiceURL,
		"TRUST_AI_SERVICE_URL":   cfg.TrustAIServiceURL,
		"EVENT_BUS_SERVICE_URL":  cfg.EventBusServiceURL,
	} {
		if strings.TrimSpace(value) == "" {
			log.Fatalf("level=fatal component=bootstrap msg=\"ledger service url must be configured\" env=%s", env)
		}
	}

	log.Printf("level=info component=bootstrap msg=\"starting roots-gateway\" port=%s", cfg.ServerPort)

	// Initialize the RabbitMQ producer used to mirror audit events. Missing
	// RabbitMQ must not prevent the gateway from booting; the mirror degrades
	// to a no-op while the event_bus leg keeps working.
	var auditProducer rmrabbit.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"rabbitmq url missing; audit mirror disabled\" env=RABBITMQ_URL")
		auditProducer = &rmrabbit.EventProducerFallback{}
	} else if producer, prodErr := rmrabbit.NewEventProducer(cfg.RabbitMQURL); prodErr != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", prodErr)
		auditProducer = &rmrabbit.EventProducerFallback{}
	} else {
		defer producer.Close()
		auditProducer = producer
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	// Initialize the clients for the five ledger services.
	reputeClient := reputeclient.NewClient(cfg.ReputeServiceURL, cfg.ServiceAPIKey)
	collateralClient := collateralclient.NewClient(cfg.CollateralServiceURL, cfg.ServiceAPIKey)
	loansClient := loansclient.NewClient(cfg.LoansServiceURL, cfg.ServiceAPIKey)
	trustAIClient := trustaiclient.NewClient(cfg.TrustAIServiceURL, cfg.ServiceAPIKey)
	eventBusClient := eventbusclient.NewClient(cfg.EventBusServiceURL, cfg.ServiceAPIKey)

	// Optional Redis for loan-application rate limiting. Unreachable Redis
	// disables limiting rather than blocking startup.
	var redisClient *redis.Client
	if cfg.LoanApplicationRateLimitPerMin > 0 {
		if strings.TrimSpace(cfg.RedisURL) == "" {
			log.Println("level=warn component=bootstrap msg=\"redis url missing; loan application rate limiting disabled\" env=REDIS_URL")
		} else {
			redisOptions, parseErr := redis.ParseURL(cfg.RedisURL)
			if parseErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; loan application rate limiting disabled\" err=%v", parseErr)
			} else {
				redisClient = redis.NewClient(redisOptions)
				pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelPing()
				if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
					log.Printf("level=warn component=bootstrap msg=\"redis ping failed; loan application rate limiting disabled\" err=%v", pingErr)
					redisClient.Close()
					redisClient = nil
				} else {
					defer redisClient.Close()
					log.Println("level=info component=bootstrap msg=\"redis connected\"")
				}
			}
		}
	}

	// Initialize the core orchestration service with its dependencies.
	auditEmitter := app.NewAuditEmitter(eventBusClient, auditProducer, cfg.AuditExchange)
	gatewayService := app.NewService(
		reputeClient,
		collateralClient,
		loansClient,
		trustAIClient,
		eventBusClient,
		auditEmitter,
		time.Duration(cfg.HealthProbeTimeoutMs)*time.Millisecond,
		cfg.RecentEventsDefaultLimit,
	)
	if redisClient != nil {
		gatewayService.SetLoanApplicationRateLimiter(
			app.NewRedisRateLimiter(redisClient, cfg.RedisRateLimitPrefix),
			cfg.LoanApplicationRateLimitPerMin,
		)
	}

	// Initialize the API handlers and mount the router.
	gatewayHandlers := api.NewGatewayHandlers(gatewayService)
	router := chi.NewRouter()
	router.Mount("/", api.GatewayRoutes(gatewayHandlers, cfg.JWKSURL))

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
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
