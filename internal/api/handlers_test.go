// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package api

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/suasor/internal/config"
	"github.com/tomtom215/suasor/internal/models"
	"github.com/tomtom215/suasor/internal/recommend"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// ===================================================================================================
// Test Fakes
// ===================================================================================================

// fakeEngine implements RecommendationEngine with canned responses.
type fakeEngine struct {
	mu           sync.Mutex
	resp         *models.RecommendationsResponse
	recommendErr error
	trainErr     error
	status       models.ModelStatus
	trainCalls   int
	trainStarted chan struct{}

	lastUserID            int64
	lastCount             int
	lastIncludeRestricted bool
}

func (f *fakeEngine) Recommend(_ context.Context, userID int64, count int, includeRestricted bool) (*models.RecommendationsResponse, error) {
	f.mu.Lock()
	f.lastUserID = userID
	f.lastCount = count
	f.lastIncludeRestricted = includeRestricted
	f.mu.Unlock()

	if f.recommendErr != nil {
		return nil, f.recommendErr
	}

	resp := *f.resp
	resp.UserID = userID
	resp.IncludeRestricted = includeRestricted
	resp.Count = len(resp.Recommendations)
	return &resp, nil
}

func (f *fakeEngine) Train(context.Context) error {
	f.mu.Lock()
	f.trainCalls++
	f.mu.Unlock()

	if f.trainStarted != nil {
		select {
		case f.trainStarted <- struct{}{}:
		default:
		}
	}
	return f.trainErr
}

func (f *fakeEngine) Status() models.ModelStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trainCalls
}

type insertedRating struct {
	userID  int64
	movieID int64
	rating  float64
}

// fakeRatingStore implements RatingStore in memory.
type fakeRatingStore struct {
	mu        sync.Mutex
	pingErr   error
	insertErr error
	inserts   []insertedRating
}

func (f *fakeRatingStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeRatingStore) InsertRating(_ context.Context, userID, movieID int64, rating float64, _ time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	f.inserts = append(f.inserts, insertedRating{userID: userID, movieID: movieID, rating: rating})
	f.mu.Unlock()
	return nil
}

func (f *fakeRatingStore) recorded() []insertedRating {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]insertedRating, len(f.inserts))
	copy(out, f.inserts)
	return out
}

// ===================================================================================================
// Test Setup Helpers
// ===================================================================================================

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultCount: 10, MaxCount: 100},
		Security: config.SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true, // Keep limiter state out of handler tests
			CORSOrigins:       []string{"*"},
		},
	}
}

func sampleRecommendations() *models.RecommendationsResponse {
	return &models.RecommendationsResponse{
		Recommendations: []models.Recommendation{
			{Movie: models.Movie{MovieID: 3, Title: "Heat", Classification: "R"}, PredictedRating: 4.5},
			{Movie: models.Movie{MovieID: 7, Title: "Duel", Classification: "PG"}, PredictedRating: 3.75},
		},
	}
}

func loadedStatus() models.ModelStatus {
	return models.ModelStatus{
		Loaded:      true,
		MovieCount:  4,
		ShardCount:  2,
		StorageMode: "csv",
	}
}

// newTestRouter builds the full Chi router around fakes so requests traverse
// the real middleware stack.
func newTestRouter(engine RecommendationEngine, db RatingStore) http.Handler {
	cfg := testConfig()
	handler := NewHandler(db, engine, cfg)
	return NewRouter(handler, &cfg.Security).SetupChi()
}

func decodeEnvelope(t *testing.T, body []byte) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, body)
	}
	return resp
}

// ===================================================================================================
// Recommendation Endpoint Tests
// ===================================================================================================

func TestGetRecommendations_Success(t *testing.T) {
	engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/recommendations/42?count=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d\nbody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Status   string                         `json:"status"`
		Data     models.RecommendationsResponse `json:"data"`
		Metadata models.Metadata                `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
	if resp.Data.UserID != 42 {
		t.Errorf("user_id = %d, want 42", resp.Data.UserID)
	}
	if len(resp.Data.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, want 2", len(resp.Data.Recommendations))
	}
	if resp.Data.Recommendations[0].MovieID != 3 || resp.Data.Recommendations[0].PredictedRating != 4.5 {
		t.Errorf("first recommendation = %+v", resp.Data.Recommendations[0])
	}

	// Middleware stack headers
	if w.Header().Get("ETag") == "" {
		t.Error("ETag header is missing")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header is missing")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestGetRecommendations_DefaultCount(t *testing.T) {
	engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/recommendations/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if engine.lastCount != 10 {
		t.Errorf("engine received count = %d, want default 10", engine.lastCount)
	}
	if engine.lastIncludeRestricted {
		t.Error("includeRestricted should default to false")
	}
}

func TestGetRecommendations_PassesParameters(t *testing.T) {
	engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/recommendations/42?count=5&includeRestricted=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if engine.lastUserID != 42 {
		t.Errorf("engine received userID = %d, want 42", engine.lastUserID)
	}
	if engine.lastCount != 5 {
		t.Errorf("engine received count = %d, want 5", engine.lastCount)
	}
	if !engine.lastIncludeRestricted {
		t.Error("engine received includeRestricted = false, want true")
	}
}

func TestGetRecommendations_InvalidUserID(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{name: "not a number", userID: "abc"},
		{name: "zero", userID: "0"},
		{name: "negative", userID: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
			router := newTestRouter(engine, &fakeRatingStore{})

			req := httptest.NewRequest("GET", "/api/v1/recommendations/"+tt.userID, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != "INVALID_USER_ID" {
				t.Errorf("error = %+v, want INVALID_USER_ID", resp.Error)
			}
		})
	}
}

func TestGetRecommendations_CountOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		count string
	}{
		{name: "zero", count: "0"},
		{name: "negative", count: "-1"},
		{name: "above maximum", count: "101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
			router := newTestRouter(engine, &fakeRatingStore{})

			req := httptest.NewRequest("GET", "/api/v1/recommendations/42?count="+tt.count, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
			}
		})
	}
}

func TestGetRecommendations_EngineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "too many requested",
			err:        fmt.Errorf("rank predictions: %w", slopeone.ErrInsufficientPredictions),
			wantStatus: http.StatusBadRequest,
			wantCode:   "NOT_ENOUGH_PREDICTIONS",
		},
		{
			name:       "model not loaded",
			err:        recommend.ErrModelNotLoaded,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "MODEL_NOT_READY",
		},
		{
			name:       "data access failure",
			err:        fmt.Errorf("user ratings: %w", recommend.ErrDataAccess),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATABASE_ERROR",
		},
		{
			name:       "unexpected failure",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "RECOMMENDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{recommendErr: tt.err, status: loadedStatus()}
			router := newTestRouter(engine, &fakeRatingStore{})

			req := httptest.NewRequest("GET", "/api/v1/recommendations/42", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestGetRecommendations_GzipResponse(t *testing.T) {
	engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/recommendations/42", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	gz, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("response is not gzip: %v", err)
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	resp := decodeEnvelope(t, body)
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
}

// ===================================================================================================
// Rating Endpoint Tests
// ===================================================================================================

func TestSubmitRating_Success(t *testing.T) {
	store := &fakeRatingStore{}
	router := newTestRouter(&fakeEngine{status: loadedStatus()}, store)

	body := `{"user_id": 1, "movie_id": 2, "rating": 4.5}`
	req := httptest.NewRequest("POST", "/api/v1/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d\nbody: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Status string                `json:"status"`
		Data   models.RatingResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Data.UserID != 1 || resp.Data.MovieID != 2 || resp.Data.Rating != 4.5 {
		t.Errorf("response data = %+v", resp.Data)
	}
	if resp.Data.RatedAt.IsZero() {
		t.Error("rated_at is zero")
	}

	inserts := store.recorded()
	if len(inserts) != 1 {
		t.Fatalf("inserts = %d, want 1", len(inserts))
	}
	if inserts[0] != (insertedRating{userID: 1, movieID: 2, rating: 4.5}) {
		t.Errorf("recorded insert = %+v", inserts[0])
	}
}

func TestSubmitRating_InvalidJSON(t *testing.T) {
	store := &fakeRatingStore{}
	router := newTestRouter(&fakeEngine{status: loadedStatus()}, store)

	req := httptest.NewRequest("POST", "/api/v1/ratings", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("error = %+v, want INVALID_REQUEST", resp.Error)
	}
	if len(store.recorded()) != 0 {
		t.Error("invalid request must not reach the database")
	}
}

func TestSubmitRating_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing user_id", body: `{"movie_id": 2, "rating": 4.5}`},
		{name: "missing movie_id", body: `{"user_id": 1, "rating": 4.5}`},
		{name: "missing rating", body: `{"user_id": 1, "movie_id": 2}`},
		{name: "negative rating", body: `{"user_id": 1, "movie_id": 2, "rating": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRatingStore{}
			router := newTestRouter(&fakeEngine{status: loadedStatus()}, store)

			req := httptest.NewRequest("POST", "/api/v1/ratings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d\nbody: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
			}
			if len(store.recorded()) != 0 {
				t.Error("invalid rating must not reach the database")
			}
		})
	}
}

func TestSubmitRating_DatabaseError(t *testing.T) {
	store := &fakeRatingStore{insertErr: errors.New("disk full")}
	router := newTestRouter(&fakeEngine{status: loadedStatus()}, store)

	body := `{"user_id": 1, "movie_id": 2, "rating": 4.5}`
	req := httptest.NewRequest("POST", "/api/v1/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "DATABASE_ERROR" {
		t.Errorf("error = %+v, want DATABASE_ERROR", resp.Error)
	}
}

// ===================================================================================================
// Model Endpoint Tests
// ===================================================================================================

func TestTrainModel_Accepted(t *testing.T) {
	engine := &fakeEngine{
		status:       models.ModelStatus{Loaded: false, Training: false},
		trainStarted: make(chan struct{}, 1),
	}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("POST", "/api/v1/model/train", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d\nbody: %s", w.Code, http.StatusAccepted, w.Body.String())
	}

	var resp struct {
		Status string                  `json:"status"`
		Data   models.TrainingAccepted `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Data.Message != "Training started" {
		t.Errorf("message = %q, want Training started", resp.Data.Message)
	}
	if resp.Data.StartedAt.IsZero() {
		t.Error("started_at is zero")
	}

	// The training run happens on a background goroutine after the 202.
	select {
	case <-engine.trainStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("training was never started")
	}
}

func TestTrainModel_AlreadyTraining(t *testing.T) {
	engine := &fakeEngine{status: models.ModelStatus{Loaded: true, Training: true}}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("POST", "/api/v1/model/train", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "TRAINING_IN_PROGRESS" {
		t.Errorf("error = %+v, want TRAINING_IN_PROGRESS", resp.Error)
	}
	if engine.callCount() != 0 {
		t.Error("no training goroutine should start while one is running")
	}
}

func TestModelStatus(t *testing.T) {
	engine := &fakeEngine{status: loadedStatus()}
	router := newTestRouter(engine, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/model/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Status string             `json:"status"`
		Data   models.ModelStatus `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !resp.Data.Loaded {
		t.Error("loaded = false, want true")
	}
	if resp.Data.ShardCount != 2 {
		t.Errorf("shard_count = %d, want 2", resp.Data.ShardCount)
	}
	if resp.Data.StorageMode != "csv" {
		t.Errorf("storage_mode = %q, want csv", resp.Data.StorageMode)
	}
	if resp.Data.MovieCount != 4 {
		t.Errorf("movie_count = %d, want 4", resp.Data.MovieCount)
	}
}

// ===================================================================================================
// Health Endpoint Tests
// ===================================================================================================

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		modelStatus models.ModelStatus
		wantStatus  string
	}{
		{
			name:        "healthy",
			modelStatus: loadedStatus(),
			wantStatus:  "healthy",
		},
		{
			name:        "database down",
			pingErr:     errors.New("connection refused"),
			modelStatus: loadedStatus(),
			wantStatus:  "degraded",
		},
		{
			name:        "model not loaded",
			modelStatus: models.ModelStatus{Loaded: false, StorageMode: "csv"},
			wantStatus:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{status: tt.modelStatus}
			store := &fakeRatingStore{pingErr: tt.pingErr}
			router := newTestRouter(engine, store)

			req := httptest.NewRequest("GET", "/api/v1/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var resp struct {
				Status string              `json:"status"`
				Data   models.HealthStatus `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Data.Status != tt.wantStatus {
				t.Errorf("health status = %q, want %q", resp.Data.Status, tt.wantStatus)
			}
			wantDB := tt.pingErr == nil
			if resp.Data.DatabaseConnected != wantDB {
				t.Errorf("database_connected = %v, want %v", resp.Data.DatabaseConnected, wantDB)
			}
			if resp.Data.ModelLoaded != tt.modelStatus.Loaded {
				t.Errorf("model_loaded = %v, want %v", resp.Data.ModelLoaded, tt.modelStatus.Loaded)
			}
		})
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(&fakeEngine{status: models.ModelStatus{}}, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/api/v1/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decodeEnvelope(t, w.Body.Bytes())
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", resp.Data)
	}
	if data["alive"] != true {
		t.Errorf("alive = %v, want true", data["alive"])
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		modelStatus models.ModelStatus
		wantCode    int
		wantReady   bool
	}{
		{
			name:        "ready",
			modelStatus: loadedStatus(),
			wantCode:    http.StatusOK,
			wantReady:   true,
		},
		{
			name:        "model not loaded",
			modelStatus: models.ModelStatus{Loaded: false},
			wantCode:    http.StatusServiceUnavailable,
			wantReady:   false,
		},
		{
			name:        "database down",
			pingErr:     errors.New("connection refused"),
			modelStatus: loadedStatus(),
			wantCode:    http.StatusServiceUnavailable,
			wantReady:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{status: tt.modelStatus}
			store := &fakeRatingStore{pingErr: tt.pingErr}
			router := newTestRouter(engine, store)

			req := httptest.NewRequest("GET", "/api/v1/health/ready", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}

			resp := decodeEnvelope(t, w.Body.Bytes())
			data, ok := resp.Data.(map[string]interface{})
			if !ok {
				t.Fatalf("data is %T, want object", resp.Data)
			}
			if data["ready_to_serve"] != tt.wantReady {
				t.Errorf("ready_to_serve = %v, want %v", data["ready_to_serve"], tt.wantReady)
			}
		})
	}
}

// ===================================================================================================
// Observability and Method Guards
// ===================================================================================================

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeEngine{status: loadedStatus()}, &fakeRatingStore{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.Len() == 0 {
		t.Error("metrics body is empty")
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain exposition", ct)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	// Handlers guard their method even when invoked outside the router.
	cfg := testConfig()
	handler := NewHandler(&fakeRatingStore{}, &fakeEngine{status: loadedStatus()}, cfg)

	tests := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{name: "recommendations", method: "POST", handler: handler.GetRecommendations},
		{name: "ratings", method: "GET", handler: handler.SubmitRating},
		{name: "train", method: "GET", handler: handler.TrainModel},
		{name: "status", method: "DELETE", handler: handler.ModelStatus},
		{name: "health", method: "POST", handler: handler.Health},
		{name: "live", method: "POST", handler: handler.HealthLive},
		{name: "ready", method: "POST", handler: handler.HealthReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			w := httptest.NewRecorder()
			tt.handler(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != "METHOD_NOT_ALLOWED" {
				t.Errorf("error = %+v, want METHOD_NOT_ALLOWED", resp.Error)
			}
		})
	}
}

func TestGetPerformanceStats(t *testing.T) {
	engine := &fakeEngine{resp: sampleRecommendations(), status: loadedStatus()}
	cfg := testConfig()
	handler := NewHandler(&fakeRatingStore{}, engine, cfg)
	router := NewRouter(handler, &cfg.Security).SetupChi()

	// Drive a request through the monitored route so stats accumulate.
	req := httptest.NewRequest("GET", "/api/v1/recommendations/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	stats := handler.GetPerformanceStats()
	if len(stats) == 0 {
		t.Fatal("no endpoint stats recorded")
	}
}
