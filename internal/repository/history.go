package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	historyKey = "history:results"

	// historyLimit caps the result log; live room state is never persisted,
	// only outcomes are.
	historyLimit = 1000
)

// GameResult is the record written for every game that reaches a terminal
// state.
type GameResult struct {
	RoomID      string    `json:"room_id"`
	Size        int       `json:"size"`
	Mode        string    `json:"mode"`
	Winner      string    `json:"winner"`
	WinningLine []int     `json:"winning_line"`
	FinishedAt  time.Time `json:"finished_at"`
}

type HistoryRepository interface {
	Record(ctx context.Context, result *GameResult) error
	Recent(ctx context.Context, limit int64) ([]GameResult, error)
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

func (that *dbHistory) Record(ctx context.Context, result *GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal game result: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, historyKey, resultJSON)
	pipe.LTrim(ctx, historyKey, 0, historyLimit-1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}

	return nil
}

func (that *dbHistory) Recent(ctx context.Context, limit int64) ([]GameResult, error) {
	entries, err := that.client.LRange(ctx, historyKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read game results: %w", err)
	}

	results := make([]GameResult, 0, len(entries))
	for _, entry := range entries {
		var result GameResult
		if err = json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}
