package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bigdaditor/weather-board-backend/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSale(ctx context.Context, req models.SaleCreateRequest) (*models.Sale, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sale (input_date, amount, payment_type, sync_status) VALUES (?, ?, ?, 0)`,
		req.InputDate, req.Amount, req.PaymentType,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetSale(ctx, id)
}

func (r *Repository) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, input_date, amount, payment_type, created_at, sync_status
		FROM sale WHERE id = ?
	`, id).Scan(&sale.ID, &sale.InputDate, &sale.Amount, &sale.PaymentType, &sale.CreatedAt, &sale.SyncStatus)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *Repository) ListSales(ctx context.Context, page, pageSize int) (*models.SaleListResponse, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sale`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input_date, amount, payment_type, created_at, sync_status
		FROM sale
		ORDER BY input_date DESC, id DESC
		LIMIT ? OFFSET ?
	`, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.SaleListResponse{
		Sales:      sales,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAllSales returns every sale sorted by business date ascending, the
// order the aggregation engine consumes them in.
func (r *Repository) ListAllSales(ctx context.Context) ([]models.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input_date, amount, payment_type, created_at, sync_status
		FROM sale
		ORDER BY input_date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r *Repository) GetSalesByMonth(ctx context.Context, month string) (*models.MonthlySaleResponse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input_date, amount, payment_type, created_at, sync_status
		FROM sale
		WHERE input_date LIKE ? || '-%'
		ORDER BY input_date ASC, id ASC
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}

	resp := &models.MonthlySaleResponse{
		Month:            month,
		TransactionCount: len(sales),
		Sales:            sales,
	}
	for _, s := range sales {
		resp.TotalAmount += s.Amount
	}
	return resp, nil
}

func (r *Repository) UpdateSale(ctx context.Context, id int64, req models.SaleUpdateRequest) (*models.Sale, error) {
	sets := []string{}
	args := []interface{}{}

	if req.InputDate != nil {
		sets = append(sets, "input_date = ?")
		args = append(args, *req.InputDate)
	}
	if req.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *req.Amount)
	}
	if req.PaymentType != nil {
		sets = append(sets, "payment_type = ?")
		args = append(args, *req.PaymentType)
	}
	if req.SyncStatus != nil {
		sets = append(sets, "sync_status = ?")
		args = append(args, *req.SyncStatus)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE sale SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, sql.ErrNoRows
		}
	}

	return r.GetSale(ctx, id)
}

func (r *Repository) DeleteSale(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sale WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListUnsyncedSales returns the oldest sales the weather ingestion has not
// covered yet.
func (r *Repository) ListUnsyncedSales(ctx context.Context, limit int) ([]models.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input_date, amount, payment_type, created_at, sync_status
		FROM sale
		WHERE sync_status = 0
		ORDER BY input_date ASC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r *Repository) MarkSalesSynced(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(dates)-1) + "?"
	args := make([]interface{}, len(dates))
	for i, d := range dates {
		args[i] = d
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE sale SET sync_status = 1 WHERE input_date IN (`+placeholders+`)`, args...)
	return err
}

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.InputDate, &s.Amount, &s.PaymentType, &s.CreatedAt, &s.SyncStatus); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// UpsertWeather inserts or replaces the observation for its date.
func (r *Repository) UpsertWeather(ctx context.Context, w models.Weather) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weather (date, avg_temp, min_temp, max_temp, one_hour_rain, sum_rain, avg_humidity, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			avg_temp = excluded.avg_temp,
			min_temp = excluded.min_temp,
			max_temp = excluded.max_temp,
			one_hour_rain = excluded.one_hour_rain,
			sum_rain = excluded.sum_rain,
			avg_humidity = excluded.avg_humidity,
			summary = excluded.summary
	`, w.Date, w.AvgTemp, w.MinTemp, w.MaxTemp, w.OneHourRain, w.SumRain, w.AvgHumidity, nullString(w.Summary))
	return err
}

func (r *Repository) ListAllWeather(ctx context.Context) ([]models.Weather, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, avg_temp, min_temp, max_temp, one_hour_rain, sum_rain, avg_humidity, summary
		FROM weather
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWeather(rows)
}

func (r *Repository) ListWeatherByMonth(ctx context.Context, month string) ([]models.Weather, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, avg_temp, min_temp, max_temp, one_hour_rain, sum_rain, avg_humidity, summary
		FROM weather
		WHERE date LIKE ? || '%'
		ORDER BY date ASC
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWeather(rows)
}

func (r *Repository) ListWeatherByRange(ctx context.Context, start, end string) ([]models.Weather, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, avg_temp, min_temp, max_temp, one_hour_rain, sum_rain, avg_humidity, summary
		FROM weather
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWeather(rows)
}

func scanWeather(rows *sql.Rows) ([]models.Weather, error) {
	var weathers []models.Weather
	for rows.Next() {
		var w models.Weather
		var summary sql.NullString
		if err := rows.Scan(&w.Date, &w.AvgTemp, &w.MinTemp, &w.MaxTemp, &w.OneHourRain, &w.SumRain, &w.AvgHumidity, &summary); err != nil {
			return nil, err
		}
		if summary.Valid {
			w.Summary = summary.String
		}
		weathers = append(weathers, w)
	}
	return weathers, rows.Err()
}

// ReplaceStatistics swaps the entire sale_statistics view for records inside
// one transaction, so readers never observe a cleared or half-written view.
func (r *Repository) ReplaceStatistics(ctx context.Context, records []models.SaleStatistic) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_statistics`); err != nil {
		return fmt.Errorf("clear statistics: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sale_statistics
		(period_type, period_start, period_end, payment_type, total_amount, transaction_count, avg_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.PeriodType, rec.PeriodStart, rec.PeriodEnd, rec.PaymentType,
			rec.TotalAmount, rec.TransactionCount, rec.AvgAmount,
			rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert statistic %s %s/%s: %w", rec.PeriodType, rec.PeriodStart, rec.PaymentType, err)
		}
	}

	return tx.Commit()
}

// GetStatistics filters the persisted statistics. Empty filter values are
// skipped; date bounds apply to period_start/period_end.
func (r *Repository) GetStatistics(ctx context.Context, periodType, paymentType, startDate, endDate string) ([]models.SaleStatistic, error) {
	query := `
		SELECT period_type, period_start, period_end, payment_type, total_amount, transaction_count, avg_amount, created_at, updated_at
		FROM sale_statistics
		WHERE 1 = 1`
	args := []interface{}{}

	if periodType != "" {
		query += ` AND period_type = ?`
		args = append(args, periodType)
	}
	if paymentType != "" {
		query += ` AND payment_type = ?`
		args = append(args, paymentType)
	}
	if startDate != "" {
		query += ` AND period_start >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND period_end <= ?`
		args = append(args, endDate)
	}

	query += ` ORDER BY period_start ASC, period_type ASC, payment_type ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.SaleStatistic
	for rows.Next() {
		var s models.SaleStatistic
		err := rows.Scan(
			&s.PeriodType, &s.PeriodStart, &s.PeriodEnd, &s.PaymentType,
			&s.TotalAmount, &s.TransactionCount, &s.AvgAmount,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetDailySales returns per-day sales broken down by payment type over an
// optional date range.
func (r *Repository) GetDailySales(ctx context.Context, startDate, endDate string) ([]models.DailySalesByPaymentType, error) {
	query := `
		SELECT input_date, payment_type, SUM(amount) as amount
		FROM sale
		WHERE 1 = 1`
	args := []interface{}{}

	if startDate != "" {
		query += ` AND input_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND input_date <= ?`
		args = append(args, endDate)
	}

	query += ` GROUP BY input_date, payment_type ORDER BY input_date ASC, payment_type ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DailySalesByPaymentType
	for rows.Next() {
		var date, paymentType string
		var amount int64
		if err := rows.Scan(&date, &paymentType, &amount); err != nil {
			return nil, err
		}
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, models.DailySalesByPaymentType{
				Date:         date,
				PaymentTypes: map[string]int64{},
			})
		}
		day := &days[len(days)-1]
		day.PaymentTypes[paymentType] += amount
		day.TotalAmount += amount
	}
	return days, rows.Err()
}

// nullString maps empty strings to NULL for nullable columns
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
