// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "ratings",
			duration:  10 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "correlations",
			duration:  5 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed query with short error",
			operation: "SELECT",
			table:     "movies",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error - should truncate to 50 chars",
			operation: "DELETE",
			table:     "correlations",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly"),
		},
		{
			name:      "fast query under 1ms",
			operation: "SELECT",
			table:     "movies",
			duration:  500 * time.Microsecond,
			err:       nil,
		},
		{
			name:      "slow query over 5 seconds",
			operation: "INSERT",
			table:     "correlations",
			duration:  5500 * time.Millisecond,
			err:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the query - should not panic
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error messages are truncated at 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	// Error with exactly 50 characters
	err50 := errors.New(strings.Repeat("a", 50))
	RecordDBQuery("SELECT", "test", time.Millisecond, err50)

	// Error with 51 characters - should truncate
	err51 := errors.New(strings.Repeat("b", 51))
	RecordDBQuery("SELECT", "test", time.Millisecond, err51)

	// Error with 100 characters - should truncate
	err100 := errors.New(strings.Repeat("c", 100))
	RecordDBQuery("SELECT", "test", time.Millisecond, err100)

	// Very short error
	errShort := errors.New("err")
	RecordDBQuery("SELECT", "test", time.Millisecond, errShort)
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful recommendations request",
			method:     "GET",
			endpoint:   "/api/v1/recommendations/{userId}",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "successful rating submission",
			method:     "POST",
			endpoint:   "/api/v1/ratings",
			statusCode: "201",
			duration:   15 * time.Millisecond,
		},
		{
			name:       "not enough predictions",
			method:     "GET",
			endpoint:   "/api/v1/recommendations/{userId}",
			statusCode: "400",
			duration:   5 * time.Millisecond,
		},
		{
			name:       "model not ready",
			method:     "GET",
			endpoint:   "/api/v1/recommendations/{userId}",
			statusCode: "503",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "training conflict",
			method:     "POST",
			endpoint:   "/api/v1/model/train",
			statusCode: "409",
			duration:   1 * time.Millisecond,
		},
		{
			name:       "internal server error",
			method:     "POST",
			endpoint:   "/api/v1/model/train",
			statusCode: "500",
			duration:   500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the request - should not panic
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

// TestRecordTrainingRun tests training run metric recording
func TestRecordTrainingRun(t *testing.T) {
	t.Run("successful run updates gauges", func(t *testing.T) {
		before := getCounterValue(TrainingRunsTotal.WithLabelValues("success"))

		RecordTrainingRun(30*time.Second, 1500, nil)

		after := getCounterValue(TrainingRunsTotal.WithLabelValues("success"))
		if after != before+1 {
			t.Errorf("expected success counter to increase by 1, got %v -> %v", before, after)
		}

		if got := getGaugeValue(MatrixMovieCount); got != 1500 {
			t.Errorf("expected matrix movie count 1500, got %v", got)
		}

		if got := getGaugeValue(TrainingLastSuccess); got == 0 {
			t.Error("expected last success timestamp to be set")
		}
	})

	t.Run("failed run does not touch gauges", func(t *testing.T) {
		MatrixMovieCount.Set(42)
		beforeFail := getCounterValue(TrainingRunsTotal.WithLabelValues("failure"))

		RecordTrainingRun(5*time.Second, 0, errors.New("shard 3 failed"))

		afterFail := getCounterValue(TrainingRunsTotal.WithLabelValues("failure"))
		if afterFail != beforeFail+1 {
			t.Errorf("expected failure counter to increase by 1, got %v -> %v", beforeFail, afterFail)
		}

		if got := getGaugeValue(MatrixMovieCount); got != 42 {
			t.Errorf("failed run must not update matrix movie count, got %v", got)
		}
	})
}

// TestRecordTrainingError tests per-stage error recording
func TestRecordTrainingError(t *testing.T) {
	stages := []string{"data_access", "shard", "persist"}

	for _, stage := range stages {
		t.Run("stage_"+stage, func(t *testing.T) {
			before := getCounterValue(TrainingErrors.WithLabelValues(stage))
			RecordTrainingError(stage)
			after := getCounterValue(TrainingErrors.WithLabelValues(stage))
			if after != before+1 {
				t.Errorf("expected %s errors to increase by 1", stage)
			}
		})
	}
}

// TestRecordModelPersist tests model persistence metric recording
func TestRecordModelPersist(t *testing.T) {
	before := getCounterValue(ModelRowsPersisted)

	RecordModelPersist("csv", 10000, 2*time.Second)
	RecordModelPersist("database", 10000, 5*time.Second)

	after := getCounterValue(ModelRowsPersisted)
	if after != before+20000 {
		t.Errorf("expected persisted rows to increase by 20000, got %v -> %v", before, after)
	}
}

// TestRecordModelLoad tests model load metric recording
func TestRecordModelLoad(t *testing.T) {
	t.Run("successful load", func(t *testing.T) {
		before := getCounterValue(ModelLoadsTotal.WithLabelValues("csv", "success"))
		RecordModelLoad("csv", time.Second, nil)
		after := getCounterValue(ModelLoadsTotal.WithLabelValues("csv", "success"))
		if after != before+1 {
			t.Error("expected csv success loads to increase")
		}
	})

	t.Run("failed load", func(t *testing.T) {
		before := getCounterValue(ModelLoadsTotal.WithLabelValues("database", "failure"))
		RecordModelLoad("database", time.Second, errors.New("shard count mismatch"))
		after := getCounterValue(ModelLoadsTotal.WithLabelValues("database", "failure"))
		if after != before+1 {
			t.Error("expected database failure loads to increase")
		}
	})
}

// TestRecordPrediction tests prediction metric recording
func TestRecordPrediction(t *testing.T) {
	durations := []time.Duration{
		100 * time.Microsecond,
		time.Millisecond,
		10 * time.Millisecond,
		100 * time.Millisecond,
	}

	for _, d := range durations {
		RecordPrediction(d, 5000)
	}
}

// TestRecordRecommendationsServed tests the served counter
func TestRecordRecommendationsServed(t *testing.T) {
	before := getCounterValue(RecommendationsServed)

	RecordRecommendationsServed(10)
	RecordRecommendationsServed(5)

	after := getCounterValue(RecommendationsServed)
	if after != before+15 {
		t.Errorf("expected served counter to increase by 15, got %v -> %v", before, after)
	}
}

// TestRecordRecommendationFiltered tests the filtered counter labels
func TestRecordRecommendationFiltered(t *testing.T) {
	reasons := []string{"restricted", "missing_metadata"}

	for _, reason := range reasons {
		t.Run("reason_"+reason, func(t *testing.T) {
			before := getCounterValue(RecommendationsFiltered.WithLabelValues(reason))
			RecordRecommendationFiltered(reason, 3)
			after := getCounterValue(RecommendationsFiltered.WithLabelValues(reason))
			if after != before+3 {
				t.Errorf("expected %s filtered to increase by 3", reason)
			}
		})
	}
}

// TestTrackActiveRequest tests active request tracking
func TestTrackActiveRequest(t *testing.T) {
	tests := []struct {
		name string
		inc  bool
	}{
		{
			name: "increment active request",
			inc:  true,
		},
		{
			name: "decrement active request",
			inc:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Track active request - should not panic
			TrackActiveRequest(tt.inc)
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	// Simulate multiple concurrent requests
	for i := 0; i < 10; i++ {
		TrackActiveRequest(true) // Request starts
	}

	// Some requests complete
	for i := 0; i < 5; i++ {
		TrackActiveRequest(false) // Request ends
	}

	// More requests start
	for i := 0; i < 3; i++ {
		TrackActiveRequest(true)
	}

	// All remaining complete
	for i := 0; i < 8; i++ {
		TrackActiveRequest(false)
	}
}

// TestConcurrentMetricRecording tests thread safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 100
	operationsPerGoroutine := 50

	// Test concurrent DB query recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordDBQuery("SELECT", "ratings", time.Duration(j)*time.Millisecond, nil)
			}
		}(i)
	}

	// Test concurrent API request recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("GET", "/api/v1/recommendations/{userId}", "200", time.Duration(j)*time.Millisecond)
			}
		}(i)
	}

	// Test concurrent active request tracking
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}(i)
	}

	// Test concurrent shard duration recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordShardTrained(time.Duration(j) * time.Millisecond)
			}
		}(i)
	}

	wg.Wait()
}

// TestMetricLabels verifies that metrics have proper labels configured
func TestMetricLabels(t *testing.T) {
	// Test DBQueryDuration has correct labels
	DBQueryDuration.WithLabelValues("SELECT", "ratings").Observe(0.1)
	DBQueryDuration.WithLabelValues("INSERT", "correlations").Observe(0.2)

	// Test DBQueryErrors has correct labels
	DBQueryErrors.WithLabelValues("DELETE", "correlations", "constraint_violation").Inc()

	// Test APIRequestsTotal has correct labels
	APIRequestsTotal.WithLabelValues("GET", "/api/test", "200").Inc()
	APIRequestsTotal.WithLabelValues("POST", "/api/test", "500").Inc()

	// Test TrainingRunsTotal has correct labels
	TrainingRunsTotal.WithLabelValues("success").Inc()
	TrainingRunsTotal.WithLabelValues("failure").Inc()

	// Test ModelLoadsTotal has correct labels
	ModelLoadsTotal.WithLabelValues("csv", "success").Inc()
	ModelLoadsTotal.WithLabelValues("database", "failure").Inc()

	// Test RecommendationsFiltered has correct labels
	RecommendationsFiltered.WithLabelValues("display_filter").Inc()
}

// TestAppMetrics tests application-level metrics
func TestAppMetrics(t *testing.T) {
	// Test app info
	AppInfo.WithLabelValues("1.0", "go1.25.5").Set(1)

	// Test uptime
	AppUptime.Set(3600) // 1 hour
	AppUptime.Add(60)   // Add 1 minute
}

// TestMetricsRegistration verifies all metrics are properly registered
func TestMetricsRegistration(t *testing.T) {
	// Test that all metrics can be collected without panic
	metrics := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DBConnectionPoolSize,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		TrainingRunsTotal,
		TrainingDuration,
		TrainingShardDuration,
		TrainingErrors,
		TrainingLastSuccess,
		MatrixMovieCount,
		ModelRowsPersisted,
		ModelPersistDuration,
		ModelLoadsTotal,
		ModelLoadDuration,
		PredictionDuration,
		PredictionCandidates,
		RecommendationsServed,
		RecommendationsFiltered,
		AppInfo,
		AppUptime,
	}

	// Verify each metric can be described
	for _, m := range metrics {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		// Should have at least one descriptor
		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	// Record some metrics
	RecordDBQuery("TEST", "test_table", time.Millisecond, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	// Verify we can lint the metrics (checks for consistency issues)
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

// Benchmark tests for metrics performance

func BenchmarkRecordDBQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordDBQuery("SELECT", "ratings", 10*time.Millisecond, nil)
	}
}

func BenchmarkRecordDBQueryWithError(b *testing.B) {
	err := errors.New("connection refused")
	for i := 0; i < b.N; i++ {
		RecordDBQuery("SELECT", "ratings", 10*time.Millisecond, err)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/recommendations/{userId}", "200", 25*time.Millisecond)
	}
}

func BenchmarkRecordPrediction(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordPrediction(5*time.Millisecond, 5000)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
