// Command server wires the publication workflow service: stores, workflow
// engine, notification worker, and the HTTP API. Business logic lives in the
// internal packages; main only assembles and supervises.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	actorhandler "simbahan/internal/actor/handler"
	actorservice "simbahan/internal/actor/service"
	actormemory "simbahan/internal/actor/store/memory"
	actorpostgres "simbahan/internal/actor/store/postgres"
	"simbahan/internal/audit"
	auditmemory "simbahan/internal/audit/store/memory"
	auditpostgres "simbahan/internal/audit/store/postgres"
	"simbahan/internal/authz"
	churchhandler "simbahan/internal/church/handler"
	churchmetrics "simbahan/internal/church/metrics"
	churchservice "simbahan/internal/church/service"
	churchstore "simbahan/internal/church/store/church"
	"simbahan/internal/directory"
	"simbahan/internal/heritage"
	"simbahan/internal/notify"
	"simbahan/internal/platform/config"
	"simbahan/internal/platform/httpserver"
	"simbahan/internal/platform/logger"
	platformredis "simbahan/internal/platform/redis"
	"simbahan/internal/token"
	httptransport "simbahan/internal/transport/http"
	"simbahan/internal/workflow"
	workflowhandler "simbahan/internal/workflow/handler"
	workflowmetrics "simbahan/internal/workflow/metrics"
)

// churchRepository is the union of store capabilities the wiring needs.
type churchRepository interface {
	churchservice.Store
	workflow.ChurchStore
	directory.Lister
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		churches   churchRepository
		records    audit.Store
		actors     actorservice.Store
		healthzMap = map[string]httptransport.HealthCheck{}
	)

	if cfg.Postgres.URL != "" {
		db, err := sql.Open("pgx", cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}

		records = auditpostgres.New(db)
		churches = churchstore.NewPostgres(db, records)
		actors = actorpostgres.New(db)
		healthzMap["postgres"] = db.PingContext
		log.Info("using postgres stores")
	} else {
		memRecords := auditmemory.NewInMemoryStore()
		records = memRecords
		churches = churchstore.NewInMemory(memRecords)
		actors = actormemory.NewInMemoryStore()
		log.Warn("POSTGRES_URL not set, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthzMap["redis"] = redisClient.Health
	}

	dir := directory.New(churches, rawRedis(redisClient), cfg.Redis.DirectoryTTL, directory.WithLogger(log))

	dispatcher := notify.NewDispatcher(256, log)
	sinks := []notify.Sink{directory.NewInvalidationSink(dir)}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := notify.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.Info("kafka publisher enabled", "topic", cfg.Kafka.Topic)
	}
	worker := notify.NewWorker(dispatcher.Inbox(), log, sinks...)

	gate := authz.New(authz.WithLogger(log))
	scorer := heritage.NewScorer()

	engine := workflow.New(churches, records, scorer, gate,
		workflow.WithLogger(log),
		workflow.WithNotifier(dispatcher),
		workflow.WithMetrics(workflowmetrics.New()),
	)
	churchSvc := churchservice.New(churches, scorer, gate,
		churchservice.WithLogger(log),
		churchservice.WithMetrics(churchmetrics.New()),
	)
	auditSvc := audit.NewService(records, churches, gate)
	actorSvc := actorservice.New(actors, gate, actorservice.WithLogger(log))
	tokens := token.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Tokens:       tokens,
		Actors:       actors,
		Church:       churchhandler.New(churchSvc, dir, log),
		Workflow:     workflowhandler.New(engine, auditSvc, log),
		Actor:        actorhandler.New(actorSvc, tokens, log),
		HealthChecks: healthzMap,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}

// rawRedis unwraps the platform client for collaborators that take the
// go-redis client directly. A nil wrapper stays nil.
func rawRedis(c *platformredis.Client) *redis.Client {
	if c == nil {
		return nil
	}
	return c.Client
}
