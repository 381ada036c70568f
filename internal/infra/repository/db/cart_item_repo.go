package db

import (
	"context"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
)

type ICartItemRepository interface {
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (int64, error)
	DeleteCartItem(ctx context.Context, id uint) error
}

type CartItemRepo struct {
	dbDao *DbDao
}

func NewCartItemRepo(dbDao *DbDao) *CartItemRepo {
	return &CartItemRepo{dbDao: dbDao}
}

// Create - 新增購物車商品
func (s *CartItemRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return s.dbDao.WithContext(ctx).Create(item).Error
}

// Read - 根據ID查詢購物車商品
func (s *CartItemRepo) GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.dbDao.WithContext(ctx).First(&item, "item_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update - 只更新數量欄位，回傳影響筆數
// id不存在時影響筆數為0，不視為錯誤
func (s *CartItemRepo) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (int64, error) {
	result := s.dbDao.WithContext(ctx).Model(&model.CartItem{}).
		Where("item_id = ?", id).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// Delete - 硬刪除購物車商品
func (s *CartItemRepo) DeleteCartItem(ctx context.Context, id uint) error {
	return s.dbDao.WithContext(ctx).Delete(&model.CartItem{}, "item_id = ?", id).Error
}

var _ ICartItemRepository = (*CartItemRepo)(nil)
