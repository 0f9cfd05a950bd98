/**
 * @description
 * HTTP handlers for the sale-recording workflow and the sales history list.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
)

// RecordSaleHandler records one sale: stock decrements plus the transaction
// record. An empty line-item list is rejected before anything is written.
func (h *Handlers) RecordSaleHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	var req domain.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.service.RecordSale(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, app.ErrEmptySale) {
			h.writeError(w, http.StatusBadRequest, "No products in sale")
			return
		}
		if errors.Is(err, app.ErrMissingCustomer) {
			h.writeError(w, http.StatusBadRequest, "Customer is required")
			return
		}
		log.Printf("level=error component=api endpoint=record_sale msg=\"sale recording failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, tx)
}

// ListSalesHandler returns the account's sale history, newest first, with
// customer names joined in.
func (h *Handlers) ListSalesHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	sales, err := h.service.ListSales(r.Context(), accountID)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_sales msg=\"sales listing failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, sales)
}
