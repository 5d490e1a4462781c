// Package fetch retrieves OHLCV price history from a market data API.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"trade-planner/internal/config"
	apperrors "trade-planner/internal/errors"
	"trade-planner/internal/models"
)

// Fetcher retrieves a price series for one symbol.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (*models.Series, error)
}

// HTTPFetcher fetches daily bars from a JSON market data endpoint with
// exponential backoff on transient failures.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	period  string
	retries uint64
	minBars int
	logger  zerolog.Logger
}

// NewHTTPFetcher creates a fetcher from the fetch configuration.
func NewHTTPFetcher(cfg config.FetchConfig, logger zerolog.Logger) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		period:  cfg.Period,
		retries: uint64(retries),
		minBars: cfg.MinBars,
		logger:  logger.With().Str("component", "fetch").Logger(),
	}
}

type barResponse struct {
	Symbol string `json:"symbol"`
	Bars   []struct {
		Timestamp int64   `json:"timestamp"`
		Open      float64 `json:"open"`
		High      float64 `json:"high"`
		Low       float64 `json:"low"`
		Close     float64 `json:"close"`
		Volume    int64   `json:"volume"`
	} `json:"bars"`
}

// Fetch retrieves the configured period of daily bars for the symbol.
// Transient HTTP failures and 5xx responses are retried with
// exponential backoff; 4xx responses fail immediately.
func (f *HTTPFetcher) Fetch(ctx context.Context, symbol string) (*models.Series, error) {
	if symbol == "" {
		return nil, apperrors.ErrInvalidSymbol
	}

	endpoint, err := f.buildURL(symbol)
	if err != nil {
		return nil, apperrors.NewFetchError(symbol, 0, "invalid base url", err)
	}

	var body barResponse
	operation := func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if reqErr != nil {
			return backoff.Permanent(reqErr)
		}
		if f.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+f.apiKey)
		}

		resp, doErr := f.client.Do(req)
		if doErr != nil {
			return doErr
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(apperrors.NewFetchError(symbol, resp.StatusCode, "symbol not found", apperrors.ErrInvalidSymbol))
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(apperrors.NewFetchError(symbol, resp.StatusCode, "request rejected", apperrors.ErrFetchFailed))
		case resp.StatusCode != http.StatusOK:
			return apperrors.NewFetchError(symbol, resp.StatusCode, "server error", apperrors.ErrFetchFailed)
		}

		if decErr := json.NewDecoder(resp.Body).Decode(&body); decErr != nil {
			return backoff.Permanent(apperrors.NewFetchError(symbol, resp.StatusCode, "malformed response body", decErr))
		}
		return nil
	}

	strategy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.retries), ctx)
	if err := backoff.Retry(operation, strategy); err != nil {
		f.logger.Warn().Str("symbol", symbol).Err(err).Msg("fetch failed")
		if _, ok := err.(*apperrors.FetchError); ok {
			return nil, err
		}
		return nil, apperrors.NewFetchError(symbol, 0, "request failed", err)
	}

	series := toSeries(symbol, body)
	if series.Len() < f.minBars {
		return nil, apperrors.NewDataError(symbol, "bars",
			fmt.Sprintf("got %d bars, need at least %d", series.Len(), f.minBars),
			apperrors.ErrInsufficientData)
	}

	f.logger.Debug().Str("symbol", symbol).Int("bars", series.Len()).Msg("fetched series")
	return series, nil
}

func (f *HTTPFetcher) buildURL(symbol string) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", err
	}
	u.Path = u.Path + "/v1/bars/" + url.PathEscape(symbol)
	q := u.Query()
	q.Set("period", f.period)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// toSeries converts the wire response to a chronologically ordered series.
func toSeries(symbol string, body barResponse) *models.Series {
	bars := make([]models.Bar, 0, len(body.Bars))
	for _, b := range body.Bars {
		bars = append(bars, models.Bar{
			Timestamp: time.Unix(b.Timestamp, 0).UTC(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return &models.Series{Symbol: symbol, Bars: bars}
}
