package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/period"
)

// bucket is one running (sum, count) accumulator. Buckets only exist for
// keys that at least one sale mapped to, so count is never zero.
type bucket struct {
	total int64
	count int64
}

// Aggregator folds sales into weekly and monthly rollups, each kept both as
// an "all" total and per payment type. Keys are explicit two-level maps
// rather than anything auto-vivifying: the outer key is the period window,
// the inner key the payment type.
type Aggregator struct {
	weeklyAll     map[period.Window]*bucket
	weeklyByType  map[period.Window]map[string]*bucket
	monthlyAll    map[period.Window]*bucket
	monthlyByType map[period.Window]map[string]*bucket
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		weeklyAll:     make(map[period.Window]*bucket),
		weeklyByType:  make(map[period.Window]map[string]*bucket),
		monthlyAll:    make(map[period.Window]*bucket),
		monthlyByType: make(map[period.Window]map[string]*bucket),
	}
}

// Add folds one sale into all four rollups. A sale whose date does not parse
// aborts the whole pass: the error identifies the offending record so the
// caller can surface the upstream data fault.
func (a *Aggregator) Add(sale models.Sale) error {
	week, err := period.WeekWindow(sale.InputDate)
	if err != nil {
		return fmt.Errorf("sale %d: %w", sale.ID, err)
	}
	month, err := period.MonthWindow(sale.InputDate)
	if err != nil {
		return fmt.Errorf("sale %d: %w", sale.ID, err)
	}

	add(a.weeklyAll, week, sale.Amount)
	addTyped(a.weeklyByType, week, sale.PaymentType, sale.Amount)
	add(a.monthlyAll, month, sale.Amount)
	addTyped(a.monthlyByType, month, sale.PaymentType, sale.Amount)
	return nil
}

func add(m map[period.Window]*bucket, key period.Window, amount int64) {
	b, ok := m[key]
	if !ok {
		b = &bucket{}
		m[key] = b
	}
	b.total += amount
	b.count++
}

func addTyped(m map[period.Window]map[string]*bucket, key period.Window, paymentType string, amount int64) {
	inner, ok := m[key]
	if !ok {
		inner = make(map[string]*bucket)
		m[key] = inner
	}
	b, ok := inner[paymentType]
	if !ok {
		b = &bucket{}
		inner[paymentType] = b
	}
	b.total += amount
	b.count++
}

// Records flattens the rollups into sale_statistics rows stamped with now.
// The result is sorted by (period_type, period_start, payment_type) so
// repeated recomputes over the same sales produce identical output.
func (a *Aggregator) Records(now time.Time) []models.SaleStatistic {
	stamp := now.UTC().Format(time.RFC3339)

	var records []models.SaleStatistic
	records = appendRecords(records, models.PeriodTypeWeek, a.weeklyAll, a.weeklyByType, stamp)
	records = appendRecords(records, models.PeriodTypeMonth, a.monthlyAll, a.monthlyByType, stamp)

	sort.Slice(records, func(i, j int) bool {
		if records[i].PeriodType != records[j].PeriodType {
			return records[i].PeriodType < records[j].PeriodType
		}
		if records[i].PeriodStart != records[j].PeriodStart {
			return records[i].PeriodStart < records[j].PeriodStart
		}
		return records[i].PaymentType < records[j].PaymentType
	})
	return records
}

func appendRecords(
	records []models.SaleStatistic,
	periodType string,
	all map[period.Window]*bucket,
	byType map[period.Window]map[string]*bucket,
	stamp string,
) []models.SaleStatistic {
	for window, b := range all {
		records = append(records, newRecord(periodType, window, models.PaymentTypeAll, b, stamp))
	}
	for window, types := range byType {
		for paymentType, b := range types {
			records = append(records, newRecord(periodType, window, paymentType, b, stamp))
		}
	}
	return records
}

func newRecord(periodType string, window period.Window, paymentType string, b *bucket, stamp string) models.SaleStatistic {
	var avg float64
	if b.count > 0 {
		avg = float64(b.total) / float64(b.count)
	}
	return models.SaleStatistic{
		PeriodType:       periodType,
		PeriodStart:      window.Start,
		PeriodEnd:        window.End,
		PaymentType:      paymentType,
		TotalAmount:      b.total,
		TransactionCount: b.count,
		AvgAmount:        avg,
		CreatedAt:        stamp,
		UpdatedAt:        stamp,
	}
}
