package service

import (
	"context"
	"math"
	"sort"

	"triviasnake/internal/cache"
	"triviasnake/internal/model"
)

// DefaultTopScores is how many entries TopScores returns when the
// caller does not ask for a specific limit.
const DefaultTopScores = 10

// LeaderboardService enforces the personal-best update policy and
// produces the sorted top-N view. Only this service mutates score
// records.
type LeaderboardService struct {
	store cache.ScoreStore
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(store cache.ScoreStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// RecordScore persists the candidate iff it beats the stored record for
// the same (userId, adventureId): higher score wins, equal score with
// lower time wins. A losing candidate is not an error; accepted reports
// whether the store changed. The comparison happens server-side in one
// conditional write, so racing submissions cannot lose updates.
func (s *LeaderboardService) RecordScore(ctx context.Context, candidate model.ScoreRecord) (bool, error) {
	if err := validateScoreRecord(candidate); err != nil {
		return false, err
	}
	return s.store.PutIfBetter(ctx, candidate)
}

// TopScores returns up to limit records sorted by score descending,
// time ascending. limit <= 0 means DefaultTopScores.
func (s *LeaderboardService) TopScores(ctx context.Context, limit int) ([]model.ScoreRecord, error) {
	if limit <= 0 {
		limit = DefaultTopScores
	}

	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	// Secondary keys make the order deterministic for fixed input.
	sort.Slice(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		if records[i].Time != records[j].Time {
			return records[i].Time < records[j].Time
		}
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].AdventureID < records[j].AdventureID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func validateScoreRecord(record model.ScoreRecord) error {
	if record.UserID == "" {
		return invalidInput("userId is required")
	}
	if record.Username == "" {
		return invalidInput("username is required")
	}
	if record.AdventureID == "" {
		return invalidInput("adventureId is required")
	}
	if record.AdventureName == "" {
		return invalidInput("adventureName is required")
	}
	if math.IsNaN(record.Score) || math.IsInf(record.Score, 0) {
		return invalidInput("score must be a finite number")
	}
	if math.IsNaN(record.Time) || math.IsInf(record.Time, 0) {
		return invalidInput("time must be a finite number")
	}
	return nil
}
