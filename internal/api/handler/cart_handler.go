package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/cartcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/cartcenter/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService       service.ICartService
	abandonedProducer producer.IAbandonedCartProducer
}

func NewCartHandler(cartService service.ICartService, abandonedProducer producer.IAbandonedCartProducer) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService:       cartService,
		abandonedProducer: abandonedProducer,
	}
}

func parsePathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, key), 10, 64)
	return uint(id), err
}

func (h *CartHandler) GetAllCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.cartService.GetAllCarts(r.Context())
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}

	dtos := make([]dto.CartDTO, 0, len(carts))
	for _, cart := range carts {
		dtos = append(dtos, convertCartToDTO(&cart))
	}
	successJSON(w, http.StatusOK, dtos)
}

// POST /carts/{id}  id為user id，與原始API相同
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.cartService.CreateCart(r.Context(), userID)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusCreated, convertCartToDTO(cart))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := parsePathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), cartID)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, convertCartToDTO(cart))
}

// DELETE /carts/{id} 清空購物車商品，購物車本身保留
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := parsePathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.cartService.ClearCart(r.Context(), cartID); err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, nil)
}

func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var addDTO dto.AddProductDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	item := &model.CartItem{
		CartID:    addDTO.CartID,
		ProductID: addDTO.ProductID,
		Quantity:  addDTO.Quantity,
	}
	if err := h.cartService.AddProductToCart(r.Context(), item); err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, nil)
}

func (h *CartHandler) GetCartTotal(w http.ResponseWriter, r *http.Request) {
	cartID, err := parsePathID(r, "cartId")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := parsePathID(r, "userId")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := h.cartService.GetCartTotal(r.Context(), cartID, userID)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}
	successJSON(w, http.StatusOK, dto.CartTotalDTO{
		CartID: cartID,
		UserID: userID,
		Total:  total,
	})
}

// PublishAbandonedCarts 查出放棄購物車並發送kafka事件
// 同步執行，沒有背景排程
func (h *CartHandler) PublishAbandonedCarts(w http.ResponseWriter, r *http.Request) {
	var pubDTO dto.PublishAbandonedDTO
	if err := json.NewDecoder(r.Body).Decode(&pubDTO); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	carts, err := h.cartService.IdentifyAbandonedCarts(r.Context(), pubDTO.Threshold)
	if err != nil {
		serviceErrorJSON(w, err)
		return
	}

	if err := h.abandonedProducer.PublishAbandonedCarts(r.Context(), carts); err != nil {
		errorJSON(w, http.StatusBadGateway, err.Error())
		return
	}
	successJSON(w, http.StatusOK, dto.PublishAbandonedResultDTO{Published: len(carts)})
}

func convertCartToDTO(cart *model.Cart) dto.CartDTO {
	items := make([]dto.CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, convertCartItemToDTO(&item))
	}
	return dto.CartDTO{
		ID:        cart.CartID,
		UserID:    cart.UserID,
		Version:   cart.Version,
		UpdatedAt: cart.UpdatedAt,
		Items:     items,
	}
}

func convertCartItemToDTO(item *model.CartItem) dto.CartItemDTO {
	return dto.CartItemDTO{
		ID:        item.ItemID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Price:     item.Price,
		Quantity:  item.Quantity,
	}
}
