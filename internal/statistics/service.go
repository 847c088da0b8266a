// Package statistics recomputes and serves the derived sales statistics:
// the sale_statistics view (weekly/monthly rollups per payment type) and the
// weather-correlated monthly trend series.
package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bigdaditor/weather-board-backend/internal/models"
)

// SaleSource reads the raw sales rows, sorted by input_date ascending.
type SaleSource interface {
	ListAllSales(ctx context.Context) ([]models.Sale, error)
}

// WeatherSource reads the daily weather observations.
type WeatherSource interface {
	ListAllWeather(ctx context.Context) ([]models.Weather, error)
}

// StatisticsStore replaces the sale_statistics view as one atomic unit:
// readers see either the previous contents or the new ones, never a mix.
type StatisticsStore interface {
	ReplaceStatistics(ctx context.Context, records []models.SaleStatistic) error
}

// Service owns the derived datasets. Collaborator handles are passed in
// explicitly; the service holds no connection state of its own.
type Service struct {
	sales   SaleSource
	weather WeatherSource
	store   StatisticsStore
	log     zerolog.Logger
	now     func() time.Time

	// Serializes recompute runs so the view is never cleared twice
	// concurrently.
	mu sync.Mutex
}

func NewService(sales SaleSource, weather WeatherSource, store StatisticsStore, log zerolog.Logger) *Service {
	return &Service{
		sales:   sales,
		weather: weather,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

// Recompute rebuilds the whole sale_statistics view from the current sales.
// Zero sales empties the view. A malformed sale date aborts before anything
// is written; a store failure leaves the previous contents intact. The run
// is idempotent apart from the refreshed created_at/updated_at stamps.
func (s *Service) Recompute(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	started := s.now()

	sales, err := s.sales.ListAllSales(ctx)
	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}

	agg := NewAggregator()
	for _, sale := range sales {
		if err := agg.Add(sale); err != nil {
			s.log.Error().Str("run_id", runID).Err(err).Msg("recompute aborted")
			return fmt.Errorf("aggregate: %w", err)
		}
	}

	records := agg.Records(started)
	if err := s.store.ReplaceStatistics(ctx, records); err != nil {
		s.log.Error().Str("run_id", runID).Err(err).Msg("statistics replace failed")
		return fmt.Errorf("replace statistics: %w", err)
	}

	s.log.Info().
		Str("run_id", runID).
		Int("sales", len(sales)).
		Int("records", len(records)).
		Dur("elapsed", s.now().Sub(started)).
		Msg("statistics recomputed")
	return nil
}

// WeatherMonthlyTrend computes the trend series fresh from the current sales
// and weather rows.
func (s *Service) WeatherMonthlyTrend(ctx context.Context, opts TrendOptions) ([]models.WeatherMonthlySalesTrend, error) {
	sales, err := s.sales.ListAllSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	weathers, err := s.weather.ListAllWeather(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weather: %w", err)
	}
	return MonthlyTrend(sales, weathers, opts)
}
