package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"trade-planner/internal/config"
	apperrors "trade-planner/internal/errors"
)

func barsJSON(symbol string, n int) string {
	type bar struct {
		Timestamp int64   `json:"timestamp"`
		Open      float64 `json:"open"`
		High      float64 `json:"high"`
		Low       float64 `json:"low"`
		Close     float64 `json:"close"`
		Volume    int64   `json:"volume"`
	}
	bars := make([]bar, n)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	// Emit newest first to verify the fetcher re-sorts chronologically.
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(n-1-i) * 24 * time.Hour)
		bars[i] = bar{Timestamp: ts.Unix(), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	payload, _ := json.Marshal(map[string]interface{}{"symbol": symbol, "bars": bars})
	return string(payload)
}

func newFetcher(baseURL string, minBars int) *HTTPFetcher {
	return NewHTTPFetcher(config.FetchConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		Period:     "6mo",
		MaxRetries: 2,
		MinBars:    minBars,
	}, zerolog.Nop())
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		if r.URL.Query().Get("period") != "6mo" {
			t.Errorf("period = %q, want 6mo", r.URL.Query().Get("period"))
		}
		fmt.Fprint(w, barsJSON("AAPL", 60))
	}))
	defer server.Close()

	series, err := newFetcher(server.URL, 50).Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if series.Len() != 60 {
		t.Errorf("got %d bars, want 60", series.Len())
	}
	for i := 1; i < series.Len(); i++ {
		if series.Bars[i].Timestamp.Before(series.Bars[i-1].Timestamp) {
			t.Fatal("bars are not chronologically ordered")
		}
	}
}

func TestFetchNotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newFetcher(server.URL, 50).Fetch(context.Background(), "BOGUS")
	if !apperrors.Is(err, apperrors.ErrInvalidSymbol) {
		t.Errorf("err = %v, want ErrInvalidSymbol", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("404 retried %d times, must not retry", calls)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, barsJSON("AAPL", 60))
	}))
	defer server.Close()

	series, err := newFetcher(server.URL, 50).Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch after retries: %v", err)
	}
	if series.Len() != 60 {
		t.Errorf("got %d bars, want 60", series.Len())
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("server called %d times, want 3", calls)
	}
}

func TestFetchInsufficientBars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, barsJSON("AAPL", 10))
	}))
	defer server.Close()

	_, err := newFetcher(server.URL, 50).Fetch(context.Background(), "AAPL")
	if !apperrors.Is(err, apperrors.ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestFetchEmptySymbol(t *testing.T) {
	_, err := newFetcher("http://localhost:0", 50).Fetch(context.Background(), "")
	if !apperrors.Is(err, apperrors.ErrInvalidSymbol) {
		t.Errorf("err = %v, want ErrInvalidSymbol", err)
	}
}
