package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
)

// CreateCustomerHandler creates a customer owned by the authenticated account.
func (h *Handlers) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	var input domain.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" {
		h.writeError(w, http.StatusBadRequest, "Customer name is required")
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), accountID, input)
	if err != nil {
		log.Printf("level=error component=api endpoint=create_customer msg=\"customer create failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, customer)
}

// ListCustomersHandler lists the account's customers sorted by name.
func (h *Handlers) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	customers, err := h.service.ListCustomers(r.Context(), accountID)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_customers msg=\"customer listing failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, customers)
}

// UpdateCustomerHandler updates a customer the account owns. A customer owned
// by a different account is indistinguishable from a missing one: both 404.
func (h *Handlers) UpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}
	customerID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return
	}

	var input domain.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), accountID, customerID, input)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			h.writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Printf("level=error component=api endpoint=update_customer msg=\"customer update failed\" account_id=%s customer_id=%s err=%v", accountID, customerID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, customer)
}

// DeleteCustomerHandler removes a customer the account owns.
func (h *Handlers) DeleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}
	customerID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), accountID, customerID); err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			h.writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Printf("level=error component=api endpoint=delete_customer msg=\"customer delete failed\" account_id=%s customer_id=%s err=%v", accountID, customerID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"msg": "Customer removed"})
}
