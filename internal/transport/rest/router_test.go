package rest_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"triviasnake/internal/cache"
	"triviasnake/internal/config"
	"triviasnake/internal/model"
	"triviasnake/internal/repository"
	"triviasnake/internal/service"
	"triviasnake/internal/transport/rest"
)

type memoryAdventureRepo struct {
	adventures map[string]*model.Adventure
}

func (r *memoryAdventureRepo) Create(_ context.Context, adventure *model.Adventure) error {
	copied := *adventure
	r.adventures[adventure.ID] = &copied
	return nil
}

func (r *memoryAdventureRepo) GetByID(_ context.Context, id string) (*model.Adventure, error) {
	adventure, ok := r.adventures[id]
	if !ok {
		return nil, nil
	}
	copied := *adventure
	return &copied, nil
}

func (r *memoryAdventureRepo) List(_ context.Context) ([]*model.Adventure, error) {
	var out []*model.Adventure
	for _, adventure := range r.adventures {
		copied := *adventure
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryAdventureRepo) Update(_ context.Context, adventure *model.Adventure) error {
	copied := *adventure
	r.adventures[adventure.ID] = &copied
	return nil
}

func (r *memoryAdventureRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.adventures[id]; !ok {
		return false, nil
	}
	delete(r.adventures, id)
	return true, nil
}

type memoryImageStore struct {
	blobs map[string][]byte
	types map[string]string
}

func (s *memoryImageStore) Put(_ context.Context, id, contentType string, data []byte) (string, error) {
	s.blobs[id] = data
	s.types[id] = contentType
	return "/v1/images/" + id, nil
}

func (s *memoryImageStore) Get(_ context.Context, id string) ([]byte, string, error) {
	data, ok := s.blobs[id]
	if !ok {
		return nil, "", repository.ErrImageNotFound
	}
	return data, s.types[id], nil
}

func (s *memoryImageStore) Delete(_ context.Context, id string) error {
	if _, ok := s.blobs[id]; !ok {
		return repository.ErrImageNotFound
	}
	delete(s.blobs, id)
	delete(s.types, id)
	return nil
}

type memoryUserRepo struct {
	users map[string]*model.User
}

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	aiCfg := &config.AIConfig{Disabled: true}
	quizSvc := service.NewQuizAIService(aiCfg)

	adventureSvc := service.NewAdventureService(
		&memoryAdventureRepo{adventures: make(map[string]*model.Adventure)},
		&memoryImageStore{blobs: make(map[string][]byte), types: make(map[string]string)},
		quizSvc,
	)

	return rest.NewRouter(&rest.Container{
		AuthService:        service.NewAuthService(&memoryUserRepo{users: make(map[string]*model.User)}, "test-secret"),
		LeaderboardService: service.NewLeaderboardService(cache.NewScoreStore(client)),
		AdventureService:   adventureSvc,
		QuizService:        quizSvc,
	})
}

func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/v1/leaderboard", nil)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}

	req := httptest.NewRequest("OPTIONS", "/v1/leaderboard", nil)
	preflight := httptest.NewRecorder()
	router.ServeHTTP(preflight, req)
	if preflight.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", preflight.Code)
	}
	if got := preflight.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("expected allowed methods header on preflight")
	}
}

func TestUnmatchedRouteIsClientError(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/v1/nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unmatched route, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field in body")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("fallback responses must carry CORS headers, got %q", got)
	}
}

func TestLeaderboardRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	submit := func(userID string, score, time float64) {
		rec := doJSON(t, router, "POST", "/v1/leaderboard", map[string]interface{}{
			"userId":        userID,
			"username":      "player-" + userID,
			"adventureId":   "adv-1",
			"adventureName": "World Capitals",
			"score":         score,
			"time":          time,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("submit %s: expected 200, got %d: %s", userID, rec.Code, rec.Body.String())
		}
	}

	submit("u1", 100, 30)
	submit("u2", 120, 40)
	submit("u1", 90, 10) // worse, must not replace

	rec := doJSON(t, router, "GET", "/v1/leaderboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var scores []model.ScoreRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 records, got %d", len(scores))
	}
	if scores[0].UserID != "u2" || scores[1].UserID != "u1" {
		t.Fatalf("unexpected order: %s, %s", scores[0].UserID, scores[1].UserID)
	}
	if scores[1].Score != 100 {
		t.Fatalf("worse submission replaced the record: %+v", scores[1])
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/v1/leaderboard", map[string]interface{}{
		"username":      "anon",
		"adventureId":   "adv-1",
		"adventureName": "World Capitals",
		"score":         10,
		"time":          5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing userId, got %d", rec.Code)
	}
}

func TestGenerateQuizUnavailableWhenDisabled(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/v1/generate-quiz", map[string]interface{}{
		"topic":         "space exploration",
		"questionCount": 5,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with AI disabled, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdventureLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("cover bytes"))
	payload := map[string]interface{}{
		"name":        "World Capitals",
		"description": "A tour of capital cities",
		"image":       image,
		"createdBy":   "user-1",
		"genre":       "Geography & Travel",
		"questions": []map[string]interface{}{
			{
				"question":      "What is the capital of France?",
				"options":       []string{"London", "Berlin", "Paris", "Madrid"},
				"correctAnswer": "Paris",
			},
		},
	}

	created := doJSON(t, router, "POST", "/v1/adventures", payload)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}
	var adventure model.Adventure
	if err := json.Unmarshal(created.Body.Bytes(), &adventure); err != nil {
		t.Fatalf("decode adventure: %v", err)
	}
	if adventure.ID == "" || adventure.ImageURL == "" {
		t.Fatalf("expected id and image url, got %+v", adventure)
	}

	img := doJSON(t, router, "GET", adventure.ImageURL, nil)
	if img.Code != http.StatusOK {
		t.Fatalf("expected 200 for cover image, got %d", img.Code)
	}
	if got := img.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}

	got := doJSON(t, router, "GET", "/v1/adventures/"+adventure.ID, nil)
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", got.Code)
	}

	deleted := doJSON(t, router, "DELETE", "/v1/adventures/"+adventure.ID, nil)
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", deleted.Code, deleted.Body.String())
	}

	missing := doJSON(t, router, "GET", "/v1/adventures/"+adventure.ID, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", missing.Code)
	}
}

func TestAdventureNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/v1/adventures/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthRoundTripOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	registered := doJSON(t, router, "POST", "/v1/auth/register", map[string]string{
		"username": "alice",
		"password": "hunter2",
	})
	if registered.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", registered.Code, registered.Body.String())
	}

	logged := doJSON(t, router, "POST", "/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "hunter2",
	})
	if logged.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", logged.Code, logged.Body.String())
	}
	var resp model.LoginResponse
	if err := json.Unmarshal(logged.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token")
	}

	rejected := doJSON(t, router, "POST", "/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if rejected.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rejected.Code)
	}
}
