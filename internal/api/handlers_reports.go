package api

import (
	"log"
	"net/http"
)

// ReportsHandler returns the composite dashboard report: daily sales total,
// low-stock products, and top customers by spend.
func (h *Handlers) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	report, err := h.service.DashboardReport(r.Context(), accountID)
	if err != nil {
		log.Printf("level=error component=api endpoint=reports msg=\"report computation failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}
