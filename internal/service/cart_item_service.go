package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

type ICartItemService interface {
	UpdateQuantity(ctx context.Context, itemID uint, quantity int) (int64, error)
	RemoveItem(ctx context.Context, itemID uint) (*model.CartItem, error)
}

type CartItemService struct {
	itemRepo db.ICartItemRepository
}

func NewCartItemService(itemRepo db.ICartItemRepository) *CartItemService {
	return &CartItemService{itemRepo: itemRepo}
}

// UpdateQuantity 只更新數量欄位，回傳影響筆數
// id不存在回傳0，不視為錯誤（與RemoveItem不同）
func (s *CartItemService) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return s.itemRepo.UpdateCartItemQuantity(ctx, itemID, quantity)
}

// RemoveItem 刪除購物車商品並回傳刪除前的快照
func (s *CartItemService) RemoveItem(ctx context.Context, itemID uint) (*model.CartItem, error) {
	item, err := s.itemRepo.GetCartItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrCartItemNotFound, itemID)
		}
		return nil, err
	}

	if err := s.itemRepo.DeleteCartItem(ctx, itemID); err != nil {
		return nil, err
	}
	return item, nil
}

var _ ICartItemService = (*CartItemService)(nil)
