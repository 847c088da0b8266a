package handlers

import (
	"net/http"

	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/period"
)

// syncBatchSize bounds one ingestion run to what the KMA endpoint returns
// per page.
const syncBatchSize = 10

// SyncWeather handles POST /api/weather/sync. It takes the oldest sales not
// yet covered by an observation, fetches that date span from the KMA API,
// stores the classified observations and marks the sales synced.
func (h *Handler) SyncWeather(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sales, err := h.repo.ListUnsyncedSales(ctx, syncBatchSize)
	if err != nil {
		h.respondError(w, err, "Failed to list unsynced sales")
		return
	}
	if len(sales) == 0 {
		http.Error(w, "No sales to sync", http.StatusNotFound)
		return
	}

	startDt, err := period.Compact(sales[0].InputDate)
	if err != nil {
		h.respondError(w, err, "invalid sale date")
		return
	}
	endDt, err := period.Compact(sales[len(sales)-1].InputDate)
	if err != nil {
		h.respondError(w, err, "invalid sale date")
		return
	}

	observations, err := h.kma.FetchDaily(ctx, startDt, endDt)
	if err != nil {
		h.log.Error().Err(err).Msg("weather fetch failed")
		http.Error(w, "Weather API request failed", http.StatusBadGateway)
		return
	}

	var synced []string
	for _, obs := range observations {
		date, err := period.Normalize(obs.Date)
		if err != nil {
			h.respondError(w, err, "invalid observation date")
			return
		}
		weather := models.Weather{
			Date:        date,
			AvgTemp:     obs.AvgTemp,
			MinTemp:     obs.MinTemp,
			MaxTemp:     obs.MaxTemp,
			OneHourRain: obs.OneHourRain,
			SumRain:     obs.SumRain,
			AvgHumidity: obs.AvgHumidity,
			Summary:     obs.Summary(),
		}
		if err := h.repo.UpsertWeather(ctx, weather); err != nil {
			h.respondError(w, err, "Failed to store weather")
			return
		}
		synced = append(synced, date)
	}

	if err := h.repo.MarkSalesSynced(ctx, synced); err != nil {
		h.respondError(w, err, "Failed to mark sales synced")
		return
	}

	start, _ := period.Normalize(sales[0].InputDate)
	end, _ := period.Normalize(sales[len(sales)-1].InputDate)
	weathers, err := h.repo.ListWeatherByRange(ctx, start, end)
	if err != nil {
		h.respondError(w, err, "Failed to list weather")
		return
	}
	respondJSON(w, http.StatusOK, weathers)
}

// GetWeather handles GET /api/weather?month=YYYY-MM
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = r.URL.Query().Get("key")
	}
	if month == "" {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	weathers, err := h.repo.ListWeatherByMonth(r.Context(), month)
	if err != nil {
		h.respondError(w, err, "Failed to list weather")
		return
	}
	respondJSON(w, http.StatusOK, weathers)
}
