package statistics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/period"
)

func trendWeathers() []models.Weather {
	return []models.Weather{
		{Date: "2024-03-06", Summary: "맑음 / 강우 없음"},
		{Date: "2024-03-07", Summary: "흐림 / 강우"},
		{Date: "20240310", Summary: "흐림 / 강우"}, // compact date form
		{Date: "2024-03-08"},                    // unclassified, excluded
		{Date: "2024-04-02", Summary: "맑음 / 강우 없음"},
	}
}

func trendSales() []models.Sale {
	return []models.Sale{
		{ID: 1, InputDate: "2024-03-05", Amount: 9999, PaymentType: "card"}, // no observation
		{ID: 2, InputDate: "2024-03-06", Amount: 1000, PaymentType: "card"},
		{ID: 3, InputDate: "2024-03-07", Amount: 2000, PaymentType: "cash"},
		{ID: 4, InputDate: "2024-03-10", Amount: 500, PaymentType: "card"},
		{ID: 5, InputDate: "2024-03-08", Amount: 777, PaymentType: "etc"}, // unclassified day
		{ID: 6, InputDate: "2024-04-02", Amount: 3000, PaymentType: "card"},
	}
}

func findTrend(t *testing.T, trends []models.WeatherMonthlySalesTrend, categoryType, summary string) models.WeatherMonthlySalesTrend {
	t.Helper()
	for _, tr := range trends {
		if tr.CategoryType == categoryType && tr.Summary == summary {
			return tr
		}
	}
	t.Fatalf("no trend series (%s, %s)", categoryType, summary)
	return models.WeatherMonthlySalesTrend{}
}

func TestMonthlyTrendGroupBySky(t *testing.T) {
	trends, err := MonthlyTrend(trendSales(), trendWeathers(), TrendOptions{GroupBy: GroupBySky})
	require.NoError(t, err)
	require.Len(t, trends, 2)

	clear := findTrend(t, trends, GroupBySky, "맑음")
	assert.Equal(t, []models.MonthlySales{
		{Month: "2024-03", TotalAmount: 1000},
		{Month: "2024-04", TotalAmount: 3000},
	}, clear.Data)

	overcast := findTrend(t, trends, GroupBySky, "흐림")
	assert.Equal(t, []models.MonthlySales{
		{Month: "2024-03", TotalAmount: 2500},
	}, overcast.Data)
}

func TestMonthlyTrendDefaultBuildsBothFamilies(t *testing.T) {
	trends, err := MonthlyTrend(trendSales(), trendWeathers(), TrendOptions{})
	require.NoError(t, err)
	require.Len(t, trends, 4)

	// sorted by (category_type, summary): rain family first
	assert.Equal(t, GroupByRain, trends[0].CategoryType)
	assert.Equal(t, GroupByRain, trends[1].CategoryType)
	assert.Equal(t, GroupBySky, trends[2].CategoryType)
	assert.Equal(t, GroupBySky, trends[3].CategoryType)

	rain := findTrend(t, trends, GroupByRain, "강우")
	assert.Equal(t, []models.MonthlySales{{Month: "2024-03", TotalAmount: 2500}}, rain.Data)

	noRain := findTrend(t, trends, GroupByRain, "강우 없음")
	assert.Equal(t, []models.MonthlySales{
		{Month: "2024-03", TotalAmount: 1000},
		{Month: "2024-04", TotalAmount: 3000},
	}, noRain.Data)
}

func TestMonthlyTrendSummaryFilter(t *testing.T) {
	trends, err := MonthlyTrend(trendSales(), trendWeathers(), TrendOptions{Summary: "맑음 / 강우 없음"})
	require.NoError(t, err)
	require.Len(t, trends, 2)

	clear := findTrend(t, trends, GroupBySky, "맑음")
	assert.Equal(t, int64(1000), clear.Data[0].TotalAmount)
	findTrend(t, trends, GroupByRain, "강우 없음")
}

func TestMonthlyTrendComponentFilters(t *testing.T) {
	trends, err := MonthlyTrend(trendSales(), trendWeathers(), TrendOptions{
		SummarySky: "흐림",
		GroupBy:    GroupBySky,
	})
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "흐림", trends[0].Summary)

	trends, err = MonthlyTrend(trendSales(), trendWeathers(), TrendOptions{
		SummarySky:  "흐림",
		SummaryRain: "강우 없음",
	})
	require.NoError(t, err)
	assert.Empty(t, trends, "filters AND together; no day is both 흐림 and 강우 없음 here")
}

func TestMonthlyTrendLegacySingleLabels(t *testing.T) {
	weathers := []models.Weather{
		{Date: "2024-05-02", Summary: "맑음"},
		{Date: "2024-05-03", Summary: "강우"},
	}
	sales := []models.Sale{
		{ID: 1, InputDate: "2024-05-02", Amount: 100, PaymentType: "card"},
		{ID: 2, InputDate: "2024-05-03", Amount: 200, PaymentType: "card"},
	}

	trends, err := MonthlyTrend(sales, weathers, TrendOptions{})
	require.NoError(t, err)
	require.Len(t, trends, 2)

	rain := findTrend(t, trends, GroupByRain, "강우")
	assert.Equal(t, int64(200), rain.Data[0].TotalAmount)

	clear := findTrend(t, trends, GroupBySky, "맑음")
	assert.Equal(t, int64(100), clear.Data[0].TotalAmount)
}

func TestMonthlyTrendInvalidGroupBy(t *testing.T) {
	_, err := MonthlyTrend(nil, nil, TrendOptions{GroupBy: "weird"})
	require.Error(t, err)
}

func TestMonthlyTrendMalformedSaleDate(t *testing.T) {
	sales := []models.Sale{{ID: 1, InputDate: "bogus", Amount: 1, PaymentType: "card"}}
	_, err := MonthlyTrend(sales, trendWeathers(), TrendOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, period.ErrMalformedDate))
}

func TestMonthlyTrendEmptyInputs(t *testing.T) {
	trends, err := MonthlyTrend(nil, nil, TrendOptions{})
	require.NoError(t, err)
	assert.Empty(t, trends)
}
