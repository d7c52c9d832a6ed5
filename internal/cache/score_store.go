package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"triviasnake/internal/model"
)

// ScoreStore persists personal-best score records keyed by
// (userId, adventureId). PutIfBetter must be atomic against concurrent
// writers for the same key; a read-then-write in two round trips would
// lose updates.
type ScoreStore interface {
	PutIfBetter(ctx context.Context, record model.ScoreRecord) (bool, error)
	All(ctx context.Context) ([]model.ScoreRecord, error)
}

const (
	scoresKey  = "leaderboard:scores"
	timesKey   = "leaderboard:times"
	recordsKey = "leaderboard:records"
)

// putIfBetterScript replaces a record only when the candidate beats the
// stored one: higher score wins, equal score with lower time wins. All
// three hashes move together in one EVAL, so a replace is all-or-nothing.
var putIfBetterScript = redis.NewScript(`
local member = ARGV[1]
local score = tonumber(ARGV[2])
local time = tonumber(ARGV[3])
local current = redis.call('HGET', KEYS[1], member)
if current then
  local currentScore = tonumber(current)
  local currentTime = tonumber(redis.call('HGET', KEYS[2], member))
  if not (score > currentScore or (score == currentScore and time < currentTime)) then
    return 0
  end
end
redis.call('HSET', KEYS[1], member, ARGV[2])
redis.call('HSET', KEYS[2], member, ARGV[3])
redis.call('HSET', KEYS[3], member, ARGV[4])
return 1
`)

type scoreStore struct {
	client *redis.Client
}

// NewScoreStore creates a Redis-backed score store.
func NewScoreStore(client *redis.Client) ScoreStore {
	return &scoreStore{client: client}
}

func (s *scoreStore) PutIfBetter(ctx context.Context, record model.ScoreRecord) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("marshal score record: %w", err)
	}

	res, err := putIfBetterScript.Run(ctx, s.client,
		[]string{scoresKey, timesKey, recordsKey},
		record.Key(),
		strconv.FormatFloat(record.Score, 'f', -1, 64),
		strconv.FormatFloat(record.Time, 'f', -1, 64),
		data,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("conditional score write: %w", err)
	}
	return res == 1, nil
}

func (s *scoreStore) All(ctx context.Context) ([]model.ScoreRecord, error) {
	raw, err := s.client.HGetAll(ctx, recordsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("scan score records: %w", err)
	}

	records := make([]model.ScoreRecord, 0, len(raw))
	for member, data := range raw {
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("unmarshal score record %s: %w", member, err)
		}
		records = append(records, record)
	}
	return records, nil
}
