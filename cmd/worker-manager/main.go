// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "talentroi-workers/internal/common/aws"
	"talentroi-workers/internal/common/config"
	"talentroi-workers/internal/common/database"
	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/observability"
	"talentroi-workers/internal/models"
	"talentroi-workers/internal/roi"

	// Calculator pipeline workers
	cr "talentroi-workers/internal/workers/calculator/calculate-roi"
	cp "talentroi-workers/internal/workers/calculator/classify-plan"
	sc "talentroi-workers/internal/workers/calculator/save-calculation"
	sr "talentroi-workers/internal/workers/calculator/send-report"
	vp "talentroi-workers/internal/workers/calculator/validate-profile"

	// Supporting workers
	ic "talentroi-workers/internal/workers/analytics/index-calculation"
	clc "talentroi-workers/internal/workers/crm/crm-lead-create"
	qp "talentroi-workers/internal/workers/data-access/query-postgresql"
	br "talentroi-workers/internal/workers/infrastructure/build-response"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager", cfg.Logging.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- 1. Calculator Pipeline Workers (5) ---
	if cfg.Workers[vp.TaskType].Enabled {
		handler := vp.NewHandler(vp.DefaultConfig(), log)
		startWorker(zeebeClient, vp.TaskType, cfg.Workers[vp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cp.TaskType].Enabled {
		handler := cp.NewHandler(
			&cp.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  time.Duration(cfg.Workers[cp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, cp.TaskType, cfg.Workers[cp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cr.TaskType].Enabled {
		params := roi.DefaultParams()
		if cfg.ROI.TargetTimeToHireDays > 0 {
			params.TargetTimeToHireDays = cfg.ROI.TargetTimeToHireDays
		}
		if cfg.ROI.AnnualDiscountRate > 0 {
			params.AnnualDiscountRate = cfg.ROI.AnnualDiscountRate
		}
		if cfg.ROI.FloorGuaranteeRatio > 0 {
			params.FloorGuaranteeRatio = cfg.ROI.FloorGuaranteeRatio
		}
		cadence := models.BillingCadence(cfg.ROI.DefaultCadence)
		if cadence != models.CadenceAnnual {
			cadence = models.CadenceMonthly
		}
		handler := cr.NewHandler(
			&cr.Config{
				Params:         params,
				DefaultCadence: cadence,
				Timeout:        time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sc.TaskType].Enabled {
		handler := sc.NewHandler(
			&sc.Config{
				Timeout: time.Duration(cfg.Workers[sc.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, sc.TaskType, cfg.Workers[sc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sr.TaskType].Enabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Reports.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Reports.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}

		reportConfig := &sr.Config{
			Enabled:       cfg.Reports.Email.Enabled,
			MaxJobsActive: cfg.Workers[sr.TaskType].MaxJobsActive,
			Timeout:       time.Duration(cfg.Workers[sr.TaskType].Timeout) * time.Millisecond,
			FromEmail:     cfg.Reports.Email.FromEmail,
			SMSEnabled:    cfg.Reports.SMS.Enabled,
			SMSMinTier:    models.PlanID(cfg.Reports.SMS.MinTier),
			SMSSenderID:   cfg.Reports.SMS.SenderID,
		}
		if err := reportConfig.Validate(); err != nil {
			zapLog.Fatal("send-report config invalid", zap.Error(err))
		}

		service := sr.NewService(reportConfig, sesClient, snsClient, log)
		handler := sr.NewHandler(reportConfig, service, log)
		startWorker(zeebeClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Data Access Workers ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout:  time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
				CacheTTL: 5 * time.Minute,
			},
			pg.DB, log,
		).WithCache(redis.Client)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Analytics Workers ---
	if cfg.Workers[ic.TaskType].Enabled {
		handler := ic.NewHandler(
			&ic.Config{
				Timeout: time.Duration(cfg.Workers[ic.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, ic.TaskType, cfg.Workers[ic.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Infrastructure Workers ---
	if cfg.Workers[br.TaskType].Enabled {
		handler := br.NewHandler(
			&br.Config{
				TemplateRegistry: cfg.Template.RegistryPath,
				CacheTTL:         5 * time.Minute,
				AppVersion:       cfg.App.Version,
			},
			log,
		)
		startWorker(zeebeClient, br.TaskType, cfg.Workers[br.TaskType], handler.Handle, zapLog)
	}

	// --- 5. CRM Workers ---
	// Config is keyed by worker name, Zeebe jobs by clc.TaskType.
	if workerName := "crm-lead-create"; cfg.Workers[workerName].Enabled {
		handler, err := clc.NewHandler(clc.HandlerOptions{
			AppConfig: cfg,
			Camunda:   nil,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create crm-lead-create handler", zap.Error(err))
		}
		startWorker(zeebeClient, clc.TaskType, cfg.Workers[workerName], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
