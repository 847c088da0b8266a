package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigdaditor/weather-board-backend/internal/database"
	"github.com/bigdaditor/weather-board-backend/internal/logger"
	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/statistics"
)

func newTestServer(t *testing.T) (*httptest.Server, *database.Repository) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db)
	log := logger.NewWithWriter(nil)
	stats := statistics.NewService(repo, repo, repo, log)
	h := New(repo, stats, nil, log)

	r := chi.NewRouter()
	r.Post("/api/sales", h.CreateSale)
	r.Get("/api/statistics", h.GetStatistics)
	r.Get("/api/statistics/summary/{period_type}", h.GetStatisticsSummary)
	r.Get("/api/statistics/weather/monthly", h.GetWeatherMonthlyTrend)
	r.Get("/api/statistics/daily", h.GetDailySales)
	r.Post("/api/statistics/recompute", h.RecomputeStatistics)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, repo
}

func seedSales(t *testing.T, repo *database.Repository, sales ...models.SaleCreateRequest) {
	t.Helper()
	for _, s := range sales {
		_, err := repo.CreateSale(context.Background(), s)
		require.NoError(t, err)
	}
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRecomputeAndQueryStatistics(t *testing.T) {
	server, repo := newTestServer(t)
	seedSales(t, repo,
		models.SaleCreateRequest{InputDate: "2024-01-08", Amount: 1000, PaymentType: "card"},
		models.SaleCreateRequest{InputDate: "2024-01-10", Amount: 2000, PaymentType: "cash"},
	)

	resp, err := http.Post(server.URL+"/api/statistics/recompute", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []models.SaleStatistic
	status := getJSON(t, server.URL+"/api/statistics?period_type=week&payment_type=all", &stats)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, stats, 1)
	assert.Equal(t, "2024-01-08", stats[0].PeriodStart)
	assert.Equal(t, "2024-01-13", stats[0].PeriodEnd)
	assert.Equal(t, int64(3000), stats[0].TotalAmount)
	assert.Equal(t, int64(2), stats[0].TransactionCount)
	assert.Equal(t, 1500.0, stats[0].AvgAmount)

	var summary []models.SaleStatistic
	status = getJSON(t, server.URL+"/api/statistics/summary/month", &summary)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, summary, 1)
	assert.Equal(t, models.PaymentTypeAll, summary[0].PaymentType)
}

func TestRecomputeWithNoSalesLeavesViewEmpty(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/statistics/recompute", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []models.SaleStatistic
	status := getJSON(t, server.URL+"/api/statistics", &stats)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, stats)
}

func TestRecomputeIsRepeatable(t *testing.T) {
	server, repo := newTestServer(t)
	seedSales(t, repo,
		models.SaleCreateRequest{InputDate: "2024-01-14", Amount: 500, PaymentType: "card"},
	)

	for i := 0; i < 2; i++ {
		resp, err := http.Post(server.URL+"/api/statistics/recompute", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var stats []models.SaleStatistic
	status := getJSON(t, server.URL+"/api/statistics?period_type=week", &stats)
	require.Equal(t, http.StatusOK, status)
	// Sunday sale lands in the following Mon-Sat window, "all" + "card"
	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, "2024-01-15", s.PeriodStart)
		assert.Equal(t, "2024-01-20", s.PeriodEnd)
	}
}

func TestDailySalesEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedSales(t, repo,
		models.SaleCreateRequest{InputDate: "2024-01-08", Amount: 1000, PaymentType: "card"},
		models.SaleCreateRequest{InputDate: "2024-01-08", Amount: 500, PaymentType: "cash"},
		models.SaleCreateRequest{InputDate: "2024-01-09", Amount: 700, PaymentType: "card"},
	)

	var days []models.DailySalesByPaymentType
	status := getJSON(t, server.URL+"/api/statistics/daily?start_date=2024-01-08&end_date=2024-01-08", &days)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, days, 1)
	assert.Equal(t, int64(1500), days[0].TotalAmount)
	assert.Equal(t, map[string]int64{"card": 1000, "cash": 500}, days[0].PaymentTypes)
}

func TestWeatherTrendEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedSales(t, repo,
		models.SaleCreateRequest{InputDate: "2024-03-05", Amount: 9999, PaymentType: "card"},
		models.SaleCreateRequest{InputDate: "2024-03-06", Amount: 1000, PaymentType: "card"},
	)
	require.NoError(t, repo.UpsertWeather(context.Background(), models.Weather{
		Date: "2024-03-06", AvgTemp: 11.2, MinTemp: 4.1, MaxTemp: 17.8,
		AvgHumidity: 55, Summary: "맑음 / 강우 없음",
	}))

	var trends []models.WeatherMonthlySalesTrend
	status := getJSON(t, server.URL+"/api/statistics/weather/monthly?group_by=sky", &trends)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, trends, 1)
	assert.Equal(t, "sky", trends[0].CategoryType)
	assert.Equal(t, "맑음", trends[0].Summary)
	// the sale without an observation is excluded
	assert.Equal(t, []models.MonthlySales{{Month: "2024-03", TotalAmount: 1000}}, trends[0].Data)

	status = getJSON(t, server.URL+"/api/statistics/weather/monthly?group_by=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateSaleValidation(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/sales", "application/json",
		jsonBody(`{"input_date": "not-a-date", "amount": 100, "payment_type": "card"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/sales", "application/json",
		jsonBody(`{"input_date": "2024-01-08", "amount": -5, "payment_type": "card"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
