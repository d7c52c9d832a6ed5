package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"triviasnake/internal/cache"
	"triviasnake/internal/model"
	"triviasnake/internal/service"
)

func newLeaderboard(t *testing.T) *service.LeaderboardService {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return service.NewLeaderboardService(cache.NewScoreStore(client))
}

func scoreRecord(userID string, score, time float64) model.ScoreRecord {
	return model.ScoreRecord{
		UserID:        userID,
		Username:      userID,
		AdventureID:   "adv-1",
		AdventureName: "Capitals",
		Score:         score,
		Time:          time,
	}
}

func TestRecordScorePersonalBestPolicy(t *testing.T) {
	svc := newLeaderboard(t)
	ctx := context.Background()

	accepted, err := svc.RecordScore(ctx, scoreRecord("u1", 100, 30))
	if err != nil || !accepted {
		t.Fatalf("initial record: accepted=%v err=%v", accepted, err)
	}

	// Same score, faster time replaces.
	accepted, err = svc.RecordScore(ctx, scoreRecord("u1", 100, 25))
	if err != nil || !accepted {
		t.Fatalf("faster time: accepted=%v err=%v", accepted, err)
	}

	// Lower score never replaces, no matter the time.
	accepted, err = svc.RecordScore(ctx, scoreRecord("u1", 90, 10))
	if err != nil || accepted {
		t.Fatalf("lower score: accepted=%v err=%v", accepted, err)
	}

	// Higher score always replaces, no matter the time.
	accepted, err = svc.RecordScore(ctx, scoreRecord("u1", 150, 999))
	if err != nil || !accepted {
		t.Fatalf("higher score: accepted=%v err=%v", accepted, err)
	}

	top, err := svc.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 1 || top[0].Score != 150 || top[0].Time != 999 {
		t.Fatalf("expected single record 150/999, got %+v", top)
	}
}

func TestRecordScoreValidation(t *testing.T) {
	svc := newLeaderboard(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.ScoreRecord)
	}{
		{"missing user", func(r *model.ScoreRecord) { r.UserID = "" }},
		{"missing username", func(r *model.ScoreRecord) { r.Username = "" }},
		{"missing adventure", func(r *model.ScoreRecord) { r.AdventureID = "" }},
		{"missing adventure name", func(r *model.ScoreRecord) { r.AdventureName = "" }},
		{"nan score", func(r *model.ScoreRecord) { r.Score = math.NaN() }},
		{"infinite time", func(r *model.ScoreRecord) { r.Time = math.Inf(1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := scoreRecord("u1", 100, 30)
			tc.mutate(&rec)

			_, err := svc.RecordScore(ctx, rec)
			var ve *service.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestTopScoresOrderingAndLimit(t *testing.T) {
	svc := newLeaderboard(t)
	ctx := context.Background()

	records := []model.ScoreRecord{
		scoreRecord("u1", 100, 30),
		scoreRecord("u2", 120, 50),
		scoreRecord("u3", 100, 20),
		scoreRecord("u4", 80, 5),
		scoreRecord("u5", 100, 20),
	}
	for _, rec := range records {
		if _, err := svc.RecordScore(ctx, rec); err != nil {
			t.Fatalf("record %s: %v", rec.UserID, err)
		}
	}

	top, err := svc.TopScores(ctx, 0) // default limit
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 5 {
		t.Fatalf("expected 5 records, got %d", len(top))
	}

	// score desc, then time asc, then userId for determinism
	wantOrder := []string{"u2", "u3", "u5", "u1", "u4"}
	for i, want := range wantOrder {
		if top[i].UserID != want {
			t.Fatalf("position %d: got %s, want %s (full: %+v)", i, top[i].UserID, want, top)
		}
	}

	top, err = svc.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("top scores limit 2: %v", err)
	}
	if len(top) != 2 || top[0].UserID != "u2" || top[1].UserID != "u3" {
		t.Fatalf("unexpected truncated result: %+v", top)
	}
}
