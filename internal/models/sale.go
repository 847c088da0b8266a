package models

// Sale is one point-of-sale transaction. input_date is the business date
// (YYYY-MM-DD); created_at is the row timestamp. sync_status marks whether
// the weather ingestion job has already covered this date (0 = pending).
type Sale struct {
	ID          int64  `json:"id"`
	InputDate   string `json:"input_date"`
	Amount      int64  `json:"amount"`
	PaymentType string `json:"payment_type"`
	CreatedAt   string `json:"created_at"`
	SyncStatus  int    `json:"sync_status"`
}

type SaleCreateRequest struct {
	InputDate   string `json:"input_date"`
	Amount      int64  `json:"amount"`
	PaymentType string `json:"payment_type"`
}

// SaleUpdateRequest carries a partial update; nil fields are left untouched.
type SaleUpdateRequest struct {
	InputDate   *string `json:"input_date"`
	Amount      *int64  `json:"amount"`
	PaymentType *string `json:"payment_type"`
	SyncStatus  *int    `json:"sync_status"`
}

type SaleListResponse struct {
	Sales      []Sale `json:"sales"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// MonthlySaleResponse lists a single month's sales with their total.
type MonthlySaleResponse struct {
	Month            string `json:"month"`
	TotalAmount      int64  `json:"total_amount"`
	TransactionCount int    `json:"transaction_count"`
	Sales            []Sale `json:"sales"`
}
