// internal/workers/calculator/classify-plan/handler.go
package classifyplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"
	"talentroi-workers/internal/plans"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "classify-plan"
)

var (
	ErrClassificationFailed = errors.New("CLASSIFICATION_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "CLASSIFICATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Profile.HiresPerYear < 1 {
		return nil, fmt.Errorf("%w: hiresPerYear must be at least 1", ErrClassificationFailed)
	}

	tier := plans.Recommend(input.Profile)

	// Pricing can be overridden per tier in the plan_tiers table.
	// The static catalog price applies when no override exists.
	if price, ok := h.getTierPrice(ctx, tier.ID); ok {
		tier.Price = price
	}

	h.logger.Info("plan classified", map[string]interface{}{
		"recruitmentType": input.Profile.RecruitmentType,
		"hiresPerYear":    input.Profile.HiresPerYear,
		"planId":          tier.ID,
		"price":           tier.Price,
	})

	return &Output{
		RecommendedPlan:    tier,
		PlanJustifications: plans.Justifications(tier.ID),
	}, nil
}

func (h *Handler) getTierPrice(ctx context.Context, id models.PlanID) (float64, bool) {
	cacheKey := "plan:price:" + string(id)
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			if price, err := strconv.ParseFloat(val, 64); err == nil {
				return price, true
			}
		}
	}

	if h.db == nil {
		return 0, false
	}

	var price float64
	err := h.db.QueryRowContext(ctx,
		`SELECT price FROM plan_tiers WHERE id = $1`, string(id)).Scan(&price)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logger.Warn("plan price lookup failed, using catalog price", map[string]interface{}{
				"planId": id,
				"error":  err.Error(),
			})
		}
		return 0, false
	}

	if h.redis != nil {
		h.redis.Set(ctx, cacheKey, strconv.FormatFloat(price, 'f', -1, 64), h.config.CacheTTL)
	}

	return price, true
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, "COMPLETE_ERROR", fmt.Sprintf("prepare complete: %v", err))
		return
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
		"planId": output.RecommendedPlan.ID,
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
