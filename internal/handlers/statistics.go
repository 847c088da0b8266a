package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/statistics"
)

// GetStatistics handles GET /api/statistics
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	periodType := q.Get("period_type")
	if periodType != "" && periodType != models.PeriodTypeWeek && periodType != models.PeriodTypeMonth {
		http.Error(w, "period_type must be 'week' or 'month'", http.StatusBadRequest)
		return
	}

	stats, err := h.repo.GetStatistics(r.Context(), periodType, q.Get("payment_type"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondError(w, err, "Failed to get statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetStatisticsSummary handles GET /api/statistics/summary/{period_type}
func (h *Handler) GetStatisticsSummary(w http.ResponseWriter, r *http.Request) {
	periodType := chi.URLParam(r, "period_type")
	if periodType != models.PeriodTypeWeek && periodType != models.PeriodTypeMonth {
		http.Error(w, "period_type must be 'week' or 'month'", http.StatusBadRequest)
		return
	}

	paymentType := r.URL.Query().Get("payment_type")
	if paymentType == "" {
		paymentType = models.PaymentTypeAll
	}

	stats, err := h.repo.GetStatistics(r.Context(), periodType, paymentType, "", "")
	if err != nil {
		h.respondError(w, err, "Failed to get statistics summary")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetWeatherMonthlyTrend handles GET /api/statistics/weather/monthly
func (h *Handler) GetWeatherMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := statistics.TrendOptions{
		Summary:     q.Get("summary"),
		SummarySky:  q.Get("summary_sky"),
		SummaryRain: q.Get("summary_rain"),
		GroupBy:     q.Get("group_by"),
	}
	switch opts.GroupBy {
	case "", statistics.GroupBySky, statistics.GroupByRain, statistics.GroupByBoth:
	default:
		http.Error(w, "group_by must be 'sky', 'rain' or 'both'", http.StatusBadRequest)
		return
	}

	trends, err := h.stats.WeatherMonthlyTrend(r.Context(), opts)
	if err != nil {
		h.respondError(w, err, "Failed to compute weather trend")
		return
	}
	if trends == nil {
		trends = []models.WeatherMonthlySalesTrend{}
	}
	respondJSON(w, http.StatusOK, trends)
}

// GetDailySales handles GET /api/statistics/daily
func (h *Handler) GetDailySales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days, err := h.repo.GetDailySales(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondError(w, err, "Failed to get daily sales")
		return
	}
	if days == nil {
		days = []models.DailySalesByPaymentType{}
	}
	respondJSON(w, http.StatusOK, days)
}

// RecomputeStatistics handles POST /api/statistics/recompute
func (h *Handler) RecomputeStatistics(w http.ResponseWriter, r *http.Request) {
	if err := h.stats.Recompute(r.Context()); err != nil {
		h.respondError(w, err, "Recompute failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
