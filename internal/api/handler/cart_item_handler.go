package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/cartcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/cartcenter/internal/service"
)

type CartItemHandler struct {
	itemService service.ICartItemService
}

func NewCartItemHandler(itemService service.ICartItemService) *CartItemHandler {
	if itemService == nil {
		panic("itemService cannot be nil")
	}
	return &CartItemHandler{itemService: itemService}
}

// PATCH /carts/products 只改數量
func (h *CartItemHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var updateDTO dto.UpdateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	rows, err := h.itemService.UpdateQuantity(r.Context(), updateDTO.ID, updateDTO.Quantity)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, dto.RowsAffectedDTO{RowsAffected: rows})
}

// DELETE /carts/products/{id} 回傳被刪除項目的快照
func (h *CartItemHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	itemID, err := parsePathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.itemService.RemoveItem(r.Context(), itemID)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, convertCartItemToDTO(item))
}
