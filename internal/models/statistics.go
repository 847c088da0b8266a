package models

const (
	PeriodTypeWeek  = "week"
	PeriodTypeMonth = "month"

	// PaymentTypeAll marks a rollup across every payment type.
	PaymentTypeAll = "all"
)

// SaleStatistic is one row of the sale_statistics materialized view, uniquely
// keyed by (period_type, period_start, period_end, payment_type). The whole
// view is deleted and regenerated on every recompute.
type SaleStatistic struct {
	PeriodType       string  `json:"period_type"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	PaymentType      string  `json:"payment_type"`
	TotalAmount      int64   `json:"total_amount"`
	TransactionCount int64   `json:"transaction_count"`
	AvgAmount        float64 `json:"avg_amount"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type MonthlySales struct {
	Month       string `json:"month"`
	TotalAmount int64  `json:"total_amount"`
}

// WeatherMonthlySalesTrend is one trend series: monthly sales totals for the
// days whose weather matched Summary, under CategoryType ("sky" or "rain").
type WeatherMonthlySalesTrend struct {
	CategoryType string         `json:"category_type"`
	Summary      string         `json:"summary"`
	Data         []MonthlySales `json:"data"`
}

// DailySalesByPaymentType is one day's sales broken down by payment type.
type DailySalesByPaymentType struct {
	Date         string           `json:"date"`
	PaymentTypes map[string]int64 `json:"payment_types"`
	TotalAmount  int64            `json:"total_amount"`
}
