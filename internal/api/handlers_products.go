package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
)

// CreateProductHandler creates a product owned by the authenticated account.
func (h *Handlers) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" {
		h.writeError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), accountID, input)
	if err != nil {
		log.Printf("level=error component=api endpoint=create_product msg=\"product create failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, product)
}

// ListProductsHandler lists the account's products, newest first.
func (h *Handlers) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	products, err := h.service.ListProducts(r.Context(), accountID)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_products msg=\"product listing failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// UpdateProductHandler updates a product the account owns.
func (h *Handlers) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), accountID, productID, input)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("level=error component=api endpoint=update_product msg=\"product update failed\" account_id=%s product_id=%s err=%v", accountID, productID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// DeleteProductHandler removes a product the account owns.
func (h *Handlers) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), accountID, productID); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("level=error component=api endpoint=delete_product msg=\"product delete failed\" account_id=%s product_id=%s err=%v", accountID, productID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"msg": "Product removed"})
}
