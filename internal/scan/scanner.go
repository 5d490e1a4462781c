// Package scan runs the full analysis pipeline across many symbols
// with bounded concurrency.
package scan

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"trade-planner/internal/analysis/indicators"
	"trade-planner/internal/analysis/signals"
	"trade-planner/internal/fetch"
	"trade-planner/internal/models"
	"trade-planner/internal/risk"
)

// Scanner pipelines fetch, enrichment, signal detection and risk
// assessment for each symbol. One assessor instance is shared across
// workers; it holds no mutable state.
type Scanner struct {
	fetcher     fetch.Fetcher
	enricher    *indicators.Enricher
	detector    *signals.Detector
	assessor    *risk.Assessor
	concurrency int
	logger      zerolog.Logger
}

// NewScanner creates a scanner. Concurrency values below one fall back
// to five workers.
func NewScanner(fetcher fetch.Fetcher, enricher *indicators.Enricher, detector *signals.Detector, assessor *risk.Assessor, concurrency int, logger zerolog.Logger) *Scanner {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Scanner{
		fetcher:     fetcher,
		enricher:    enricher,
		detector:    detector,
		assessor:    assessor,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "scan").Logger(),
	}
}

// Scan analyzes every symbol and returns the results sorted by quality
// then risk:reward, best first. A symbol that fails to fetch or enrich
// is logged and excluded without aborting the batch.
func (s *Scanner) Scan(ctx context.Context, symbols []string) []models.RiskAnalysisResult {
	work := make(chan string, len(symbols))
	resultCh := make(chan models.RiskAnalysisResult, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result, err := s.Analyze(ctx, symbol)
				if err != nil {
					s.logger.Warn().Str("symbol", symbol).Err(err).Msg("skipping symbol")
					continue
				}
				resultCh <- result
			}
		}()
	}

	for _, symbol := range symbols {
		work <- symbol
	}
	close(work)

	wg.Wait()
	close(resultCh)

	results := make([]models.RiskAnalysisResult, 0, len(symbols))
	for r := range resultCh {
		results = append(results, r)
	}

	sortResults(results)
	return results
}

// Analyze runs the pipeline for a single symbol.
func (s *Scanner) Analyze(ctx context.Context, symbol string) (models.RiskAnalysisResult, error) {
	series, err := s.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return models.RiskAnalysisResult{}, err
	}

	if err := s.enricher.Enrich(ctx, series); err != nil {
		return models.RiskAnalysisResult{}, err
	}

	detected := s.detector.Detect(series)
	ranked := signals.Rank(detected)

	return s.assessor.Assess(series, ranked, symbol), nil
}

// sortResults orders tradeable results first, then by quality, then by
// descending risk:reward.
func sortResults(results []models.RiskAnalysisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.HasTrades != b.HasTrades {
			return a.HasTrades
		}
		qa, qb := qualityRank(a.Assessment.Quality), qualityRank(b.Assessment.Quality)
		if qa != qb {
			return qa > qb
		}
		return a.Assessment.RiskReward.Ratio > b.Assessment.RiskReward.Ratio
	})
}

func qualityRank(q models.RiskQuality) int {
	switch q {
	case models.QualityHigh:
		return 2
	case models.QualityMedium:
		return 1
	default:
		return 0
	}
}
