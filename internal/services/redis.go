package services

import (
	"context"
	"encoding/json"
	"fmt"

	"bacbo-live-client/internal/config"
	"bacbo-live-client/internal/display"
	"bacbo-live-client/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisService keeps a shared copy of the rendered panel ("board") and the
// rounds submitted to it.
type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	service := &RedisService{
		client: client,
		ctx:    ctx,
	}

	return service, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// BoardTarget is a display target backed by one field of the board hash.
type BoardTarget struct {
	service *RedisService
	board   string
	id      string
}

func (t *BoardTarget) SetText(text string) error {
	key := fmt.Sprintf(KeyBoard, t.board)
	if err := t.service.client.HSet(t.service.ctx, key, t.id, text).Err(); err != nil {
		return fmt.Errorf("failed to write board element %s: %v", t.id, err)
	}
	return nil
}

func (t *BoardTarget) Text() string {
	key := fmt.Sprintf(KeyBoard, t.board)
	text, err := t.service.client.HGet(t.service.ctx, key, t.id).Result()
	if err != nil {
		return ""
	}
	return text
}

func (s *RedisService) BoardTarget(board, id string) *BoardTarget {
	return &BoardTarget{service: s, board: board, id: id}
}

func (s *RedisService) BoardTargets(board string) map[string]display.Target {
	targets := make(map[string]display.Target, len(display.Elements))
	for _, id := range display.Elements {
		targets[id] = s.BoardTarget(board, id)
	}
	return targets
}

func (s *RedisService) GetBoard(board string) (map[string]string, error) {
	key := fmt.Sprintf(KeyBoard, board)

	fields, err := s.client.HGetAll(s.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %v", err)
	}
	return fields, nil
}

func (s *RedisService) ClearBoard(board string) error {
	roundsKey := fmt.Sprintf(KeyBoardRounds, board)

	ids, err := s.client.ZRange(s.ctx, roundsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list board rounds: %v", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(s.ctx, fmt.Sprintf(KeyRound, id))
	}
	pipe.Del(s.ctx, fmt.Sprintf(KeyBoard, board), roundsKey)

	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to clear board: %v", err)
	}
	return nil
}

func (s *RedisService) RecordRound(board string, rec *models.RoundRecord) error {
	roundKey := fmt.Sprintf(KeyRound, rec.RequestID)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %v", err)
	}

	if err := s.client.Set(s.ctx, roundKey, data, TTLRound).Err(); err != nil {
		return fmt.Errorf("failed to save round: %v", err)
	}

	roundsKey := fmt.Sprintf(KeyBoardRounds, board)
	score := float64(rec.AppliedAt.UnixNano())

	if err := s.client.ZAdd(s.ctx, roundsKey, redis.Z{
		Score:  score,
		Member: rec.RequestID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to board rounds: %v", err)
	}

	s.client.ZRemRangeByRank(s.ctx, roundsKey, 0, -(MaxBoardRounds + 1))

	return nil
}

// GetRoundHistory returns the newest rounds first.
func (s *RedisService) GetRoundHistory(board string, limit int64) ([]*models.RoundRecord, error) {
	if limit <= 0 || limit > MaxBoardRounds {
		limit = DefaultHistorySize
	}

	roundsKey := fmt.Sprintf(KeyBoardRounds, board)

	ids, err := s.client.ZRevRange(s.ctx, roundsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get round IDs: %v", err)
	}
	if len(ids) == 0 {
		return []*models.RoundRecord{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(s.ctx, fmt.Sprintf(KeyRound, id))
	}

	_, err = pipe.Exec(s.ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pipeline execution failed: %v", err)
	}

	var records []*models.RoundRecord
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			continue
		}

		var rec models.RoundRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	return records, nil
}

// Recorder binds RecordRound to one board.
func (s *RedisService) Recorder(board string) RoundRecorder {
	return RecorderFunc(func(rec *models.RoundRecord) error {
		return s.RecordRound(board, rec)
	})
}
