package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/youthscout/talent-tracker/internal/platform/logging"
	"github.com/youthscout/talent-tracker/internal/usecase"
)

type countingRecorder struct {
	calls atomic.Int64
}

func (r *countingRecorder) RecordCall() {
	r.calls.Add(1)
}

func newTestClient(srv *httptest.Server, recorder CallRecorder, maxAttempts int) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		APIHost:        "v3.football.api-sports.io",
		MaxAttempts:    maxAttempts,
		MinInterval:    time.Millisecond,
		RetryBaseDelay: time.Millisecond,
		Logger:         logging.NewNop(),
		Recorder:       recorder,
	})
}

func TestClientFetchLeague_SendsAuthHeadersAndParsesEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "39" {
			t.Fatalf("unexpected id query: %s", got)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "test-key" {
			t.Fatalf("unexpected x-rapidapi-key: %s", got)
		}
		if got := r.Header.Get("x-rapidapi-host"); got != "v3.football.api-sports.io" {
			t.Fatalf("unexpected x-rapidapi-host: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": [],
			"response": [{
				"league": {"id": 39, "name": "Premier League", "type": "League", "logo": "https://example.test/pl.png"},
				"country": {"name": "England", "code": "GB"},
				"seasons": [
					{"year": 2023, "current": false},
					{"year": 2024, "current": true}
				]
			}]
		}`))
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 3)

	record, found, err := client.FetchLeague(context.Background(), 39)
	if err != nil {
		t.Fatalf("fetch league failed: %v", err)
	}
	if !found {
		t.Fatal("expected league to be found")
	}
	if record.ExternalID != 39 || record.Name != "Premier League" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Season != 2024 {
		t.Fatalf("expected current season 2024, got %d", record.Season)
	}
	if record.CountryName != "England" {
		t.Fatalf("unexpected country: %s", record.CountryName)
	}
	if recorder.calls.Load() != 1 {
		t.Fatalf("expected one recorded call, got %d", recorder.calls.Load())
	}
}

func TestClientDailyLimit_SurfacesErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": {"requests": "You have reached the request limit for the day, Go to https://dashboard.api-football.com to upgrade your plan."},
			"response": []
		}`))
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 3)

	_, _, err := client.FetchLeague(context.Background(), 39)
	if !errors.Is(err, usecase.ErrDailyLimitExceeded) {
		t.Fatalf("expected ErrDailyLimitExceeded, got %v", err)
	}
	if recorder.calls.Load() != 1 {
		t.Fatalf("daily limit must not be retried, got %d calls", recorder.calls.Load())
	}
}

func TestClientRetriesTransientStatusThenSucceeds(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`upstream hiccup`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": [],
			"paging": {"current": 1, "total": 1},
			"response": [{
				"team": {"id": 49, "name": "Chelsea", "national": false},
				"venue": {"name": "Stamford Bridge", "city": "London"}
			}]
		}`))
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 3)

	clubs, err := client.FetchClubsByLeague(context.Background(), 39, 2024)
	if err != nil {
		t.Fatalf("fetch clubs failed: %v", err)
	}
	if len(clubs) != 1 || clubs[0].ExternalID != 49 {
		t.Fatalf("unexpected clubs: %+v", clubs)
	}
	if recorder.calls.Load() != 2 {
		t.Fatalf("expected two recorded calls, got %d", recorder.calls.Load())
	}
}

func TestClientExhaustedRetries_SoftFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 2)

	clubs, err := client.FetchClubsByLeague(context.Background(), 39, 2024)
	if err != nil {
		t.Fatalf("exhausted retries must not surface an error, got %v", err)
	}
	if clubs != nil {
		t.Fatalf("expected no clubs, got %+v", clubs)
	}
	if recorder.calls.Load() != 2 {
		t.Fatalf("expected attempts to stop at the limit, got %d calls", recorder.calls.Load())
	}
}

func TestClientEnvelopeError_NonRetryableSoftFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": {"league": "The League field is required."},
			"response": []
		}`))
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 3)

	_, found, err := client.FetchLeague(context.Background(), 39)
	if err != nil {
		t.Fatalf("non-retryable provider error must be absorbed, got %v", err)
	}
	if found {
		t.Fatal("expected no league from a rejected request")
	}
	if recorder.calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", recorder.calls.Load())
	}
}

func TestClientTransientEnvelopeMessage_Retried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"errors": ["Rate limit hit, slow down"], "response": []}`))
			return
		}
		_, _ = w.Write([]byte(`{"errors": [], "response": [2023, 2024]}`))
	}))
	defer srv.Close()

	recorder := &countingRecorder{}
	client := newTestClient(srv, recorder, 3)

	seasons, err := client.FetchPlayerSeasons(context.Background(), 276)
	if err != nil {
		t.Fatalf("fetch seasons failed: %v", err)
	}
	if len(seasons) != 2 || seasons[1] != 2024 {
		t.Fatalf("unexpected seasons: %v", seasons)
	}
	if recorder.calls.Load() != 2 {
		t.Fatalf("expected a retry after the throttle message, got %d calls", recorder.calls.Load())
	}
}

func TestClientInvalidInput_RejectedWithoutRequest(t *testing.T) {
	t.Parallel()

	recorder := &countingRecorder{}
	client := NewClient(ClientConfig{
		BaseURL:  "http://localhost:0",
		APIKey:   "test-key",
		Logger:   logging.NewNop(),
		Recorder: recorder,
	})

	_, _, err := client.FetchLeague(context.Background(), 0)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if recorder.calls.Load() != 0 {
		t.Fatalf("validation failures must not hit the provider, got %d calls", recorder.calls.Load())
	}
}
