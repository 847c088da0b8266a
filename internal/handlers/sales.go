package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigdaditor/weather-board-backend/internal/models"
	"github.com/bigdaditor/weather-board-backend/internal/period"
)

// CreateSale handles POST /api/sales
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.SaleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		http.Error(w, "amount must be non-negative", http.StatusBadRequest)
		return
	}
	if req.PaymentType == "" {
		http.Error(w, "payment_type is required", http.StatusBadRequest)
		return
	}

	date, err := period.Normalize(req.InputDate)
	if err != nil {
		h.respondError(w, err, "invalid input_date")
		return
	}
	req.InputDate = date

	sale, err := h.repo.CreateSale(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "Failed to create sale")
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

// ListSales handles GET /api/sales
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	resp, err := h.repo.ListSales(r.Context(), page, pageSize)
	if err != nil {
		h.respondError(w, err, "Failed to list sales")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetSale handles GET /api/sales/{id}
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := h.repo.GetSale(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Sale not found")
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// GetSalesByMonth handles GET /api/sales/month?key=YYYY-MM
func (h *Handler) GetSalesByMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("key")
	if month == "" {
		month = r.URL.Query().Get("month")
	}
	if month == "" {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.repo.GetSalesByMonth(r.Context(), month)
	if err != nil {
		h.respondError(w, err, "Failed to list monthly sales")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateSale handles PATCH /api/sales/{id}
func (h *Handler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid sale ID", http.StatusBadRequest)
		return
	}

	var req models.SaleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.InputDate != nil {
		date, err := period.Normalize(*req.InputDate)
		if err != nil {
			h.respondError(w, err, "invalid input_date")
			return
		}
		req.InputDate = &date
	}
	if req.Amount != nil && *req.Amount < 0 {
		http.Error(w, "amount must be non-negative", http.StatusBadRequest)
		return
	}

	sale, err := h.repo.UpdateSale(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err, "Sale not found")
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// DeleteSale handles DELETE /api/sales/{id}
func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid sale ID", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteSale(r.Context(), id); err != nil {
		h.respondError(w, err, "Sale not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
