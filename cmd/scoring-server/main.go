// cmd/scoring-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"credit-scoring/internal/alert"
	"credit-scoring/internal/audit"
	awsclient "credit-scoring/internal/common/aws"
	"credit-scoring/internal/common/config"
	"credit-scoring/internal/common/database"
	"credit-scoring/internal/common/logger"
	"credit-scoring/internal/common/observability"
	"credit-scoring/internal/ratelimit"
	"credit-scoring/internal/scoring"
	"credit-scoring/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scoring server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Cutoffs (static, loaded once, immutable afterwards) ---
	cutoffs, err := scoring.LoadCutoffs(cfg.Scoring.CutoffsFile)
	if err != nil {
		zapLog.Fatal("cutoff configuration failed", zap.Error(err))
	}
	zapLog.Info("cutoffs loaded",
		zap.Float64("A", cutoffs.A),
		zap.Float64("B", cutoffs.B),
		zap.Float64("C", cutoffs.C),
	)

	scorer := scoring.NewScorer(scoring.NewUniformSource(), log)

	// --- Optional audit store (PostgreSQL) ---
	var store *audit.Store
	if cfg.Audit.StoreEnabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		store = audit.NewStore(pg.DB, log)
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Optional analytics indexer (Elasticsearch) ---
	var indexer *audit.Indexer
	if cfg.Audit.IndexEnabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		indexer = audit.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Optional high-risk alerting (SNS) ---
	var alerter alert.Alerter = alert.NoopAlerter{}
	if cfg.Alerts.Enabled {
		snsClient, err := awsclient.NewSNSClient(ctx, cfg.Alerts.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		alerter = alert.NewSNSAlerter(snsClient, cfg.Alerts.TopicARN, log)
		zapLog.Info("SNS alerting enabled", zap.String("topic", cfg.Alerts.TopicARN))
	}

	// --- Optional rate limiting (Redis) ---
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		limiter = ratelimit.NewLimiter(
			rdb.Client,
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			log,
		)
		zapLog.Info("Redis connected successfully")
	}

	handler := server.NewPredictHandler(
		scorer,
		cutoffs,
		store,
		indexer,
		alerter,
		obs,
		time.Duration(cfg.Server.RequestTimeout)*time.Millisecond,
		log,
	)

	router := server.NewRouter(cfg, handler, limiter)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown incomplete", zap.Error(err))
	}

	zapLog.Info("stopped")
}
