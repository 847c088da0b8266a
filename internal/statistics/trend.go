package statistics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bigdaditor/weather-board-backend/internal/kma"
	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/period"
)

const (
	GroupBySky  = "sky"
	GroupByRain = "rain"
	GroupByBoth = "both"
)

// TrendOptions filters and shapes the weather-correlated monthly trend.
// Summary matches the full stored label; SummarySky and SummaryRain match the
// split components. All supplied filters apply together. GroupBy selects
// which component families to build ("sky", "rain", or "both"; empty means
// both).
type TrendOptions struct {
	Summary     string
	SummarySky  string
	SummaryRain string
	GroupBy     string
}

// MonthlyTrend joins sales against the weather table by date and groups
// monthly totals per weather category. Sales on dates with no classified
// observation are skipped; a malformed sale date is an upstream data fault
// and fails the whole query. Nothing is persisted.
func MonthlyTrend(sales []models.Sale, weathers []models.Weather, opts TrendOptions) ([]models.WeatherMonthlySalesTrend, error) {
	groupBy := opts.GroupBy
	if groupBy == "" {
		groupBy = GroupByBoth
	}
	if groupBy != GroupBySky && groupBy != GroupByRain && groupBy != GroupByBoth {
		return nil, fmt.Errorf("invalid group_by %q", opts.GroupBy)
	}

	// Weather dates may arrive hyphenated or compact; normalize before
	// joining. If both forms of one date exist, the later row wins.
	summaryByDate := make(map[string]string, len(weathers))
	for _, w := range weathers {
		if w.Summary == "" {
			continue
		}
		date, err := period.Normalize(w.Date)
		if err != nil {
			return nil, fmt.Errorf("weather: %w", err)
		}
		summaryByDate[date] = w.Summary
	}

	// label → month → total, one family per category type.
	skyMonths := make(map[string]map[string]int64)
	rainMonths := make(map[string]map[string]int64)

	for _, sale := range sales {
		date, err := period.Normalize(sale.InputDate)
		if err != nil {
			return nil, fmt.Errorf("sale %d: %w", sale.ID, err)
		}
		summary, ok := summaryByDate[date]
		if !ok {
			continue
		}
		if opts.Summary != "" && summary != opts.Summary {
			continue
		}

		sky, rain := splitSummary(summary)
		if opts.SummarySky != "" && sky != opts.SummarySky {
			continue
		}
		if opts.SummaryRain != "" && rain != opts.SummaryRain {
			continue
		}

		month := date[:7]
		if sky != "" && groupBy != GroupByRain {
			addMonth(skyMonths, sky, month, sale.Amount)
		}
		if rain != "" && groupBy != GroupBySky {
			addMonth(rainMonths, rain, month, sale.Amount)
		}
	}

	trends := flattenTrends(GroupByRain, rainMonths)
	trends = append(trends, flattenTrends(GroupBySky, skyMonths)...)
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].CategoryType != trends[j].CategoryType {
			return trends[i].CategoryType < trends[j].CategoryType
		}
		return trends[i].Summary < trends[j].Summary
	})
	return trends, nil
}

// splitSummary separates a stored label into its sky and rain components.
// Single-label rows predate the composite format: a bare "강우" is a rain
// label, anything else a sky label.
func splitSummary(summary string) (sky, rain string) {
	parts := strings.SplitN(summary, kma.SummarySeparator, 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	if parts[0] == kma.Rain {
		return "", parts[0]
	}
	return parts[0], ""
}

func addMonth(family map[string]map[string]int64, label, month string, amount int64) {
	months, ok := family[label]
	if !ok {
		months = make(map[string]int64)
		family[label] = months
	}
	months[month] += amount
}

func flattenTrends(categoryType string, family map[string]map[string]int64) []models.WeatherMonthlySalesTrend {
	var trends []models.WeatherMonthlySalesTrend
	for label, months := range family {
		data := make([]models.MonthlySales, 0, len(months))
		for month, total := range months {
			data = append(data, models.MonthlySales{Month: month, TotalAmount: total})
		}
		// YYYY-MM sorts lexicographically in calendar order.
		sort.Slice(data, func(i, j int) bool { return data[i].Month < data[j].Month })
		trends = append(trends, models.WeatherMonthlySalesTrend{
			CategoryType: categoryType,
			Summary:      label,
			Data:         data,
		})
	}
	return trends
}
