package repository

import (
	"context"
	"encoding/json"
	"todosummary/db"
	"todosummary/internal/model"

	"github.com/redis/go-redis/v9"
)

// maxRuns bounds the recent run list; failed runs are kept in their own list
// with the same bound.
const (
	maxRuns         = 100
	defaultRunLimit = 10
)

type RunRepository struct {
	client *redis.Client
}

func NewRunRepository(client *redis.Client) *RunRepository {
	return &RunRepository{client: client}
}

func (r *RunRepository) SaveRun(ctx context.Context, run model.SummaryRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, db.RunLogKey, data)
	pipe.LTrim(ctx, db.RunLogKey, 0, maxRuns-1)
	if run.Status == model.RunStatusFailed {
		pipe.LPush(ctx, db.FailedRunKey, data)
		pipe.LTrim(ctx, db.FailedRunKey, 0, maxRuns-1)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// GetRuns returns the most recent runs, newest first.
func (r *RunRepository) GetRuns(ctx context.Context, limit int) ([]model.SummaryRun, error) {
	return r.getRuns(ctx, db.RunLogKey, limit)
}

func (r *RunRepository) GetFailedRuns(ctx context.Context, limit int) ([]model.SummaryRun, error) {
	return r.getRuns(ctx, db.FailedRunKey, limit)
}

func (r *RunRepository) getRuns(ctx context.Context, key string, limit int) ([]model.SummaryRun, error) {
	raw, err := r.client.LRange(ctx, key, 0, int64(clampRunLimit(limit))-1).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]model.SummaryRun, 0, len(raw))
	for _, item := range raw {
		var run model.SummaryRun
		if err := json.Unmarshal([]byte(item), &run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *RunRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// clampRunLimit keeps LRANGE's stop index non-negative; a stop of -1 would
// mean the whole list.
func clampRunLimit(limit int) int {
	if limit < 1 {
		return defaultRunLimit
	}
	if limit > maxRuns {
		return maxRuns
	}
	return limit
}
