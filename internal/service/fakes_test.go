package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

// in-memory測試替身，行為比照db repo: 查無資料回傳gorm.ErrRecordNotFound

type fakeCartRepo struct {
	carts     map[uint]*model.Cart
	nextID    uint
	saveCalls int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*model.Cart), nextID: 1}
}

func (f *fakeCartRepo) CreateCart(ctx context.Context, cart *model.Cart) error {
	cart.CartID = f.nextID
	f.nextID++
	cart.Version = 1
	cart.UpdatedAt = time.Now()
	f.carts[cart.CartID] = cart
	return nil
}

func (f *fakeCartRepo) GetCartByID(ctx context.Context, id uint) (*model.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (f *fakeCartRepo) GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) GetAllCarts(ctx context.Context) ([]model.Cart, error) {
	carts := make([]model.Cart, 0, len(f.carts))
	for _, cart := range f.carts {
		carts = append(carts, *cart)
	}
	return carts, nil
}

func (f *fakeCartRepo) SaveCart(ctx context.Context, cart *model.Cart) error {
	stored, ok := f.carts[cart.CartID]
	if !ok || stored.Version != cart.Version {
		return db.ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	f.carts[cart.CartID] = cart
	f.saveCalls++
	return nil
}

func (f *fakeCartRepo) ClearCartItems(ctx context.Context, cartID uint) error {
	if cart, ok := f.carts[cartID]; ok {
		cart.Items = nil
	}
	return nil
}

func (f *fakeCartRepo) GetCartsOlderThan(ctx context.Context, threshold time.Time) ([]model.Cart, error) {
	var carts []model.Cart
	for _, cart := range f.carts {
		if cart.UpdatedAt.Before(threshold) {
			carts = append(carts, *cart)
		}
	}
	return carts, nil
}

var _ db.ICartRepository = (*fakeCartRepo)(nil)

type fakeCartItemRepo struct {
	items  map[uint]*model.CartItem
	nextID uint
	// 連動cart repo，新增item時掛回所屬購物車
	cartRepo *fakeCartRepo
}

func newFakeCartItemRepo(cartRepo *fakeCartRepo) *fakeCartItemRepo {
	return &fakeCartItemRepo{items: make(map[uint]*model.CartItem), nextID: 1, cartRepo: cartRepo}
}

func (f *fakeCartItemRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	item.ItemID = f.nextID
	f.nextID++
	f.items[item.ItemID] = item
	if f.cartRepo != nil {
		if cart, ok := f.cartRepo.carts[item.CartID]; ok {
			cart.Items = append(cart.Items, *item)
		}
	}
	return nil
}

func (f *fakeCartItemRepo) GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeCartItemRepo) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (int64, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	item.Quantity = quantity
	return 1, nil
}

func (f *fakeCartItemRepo) DeleteCartItem(ctx context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

var _ db.ICartItemRepository = (*fakeCartItemRepo)(nil)

type fakeCatalogClient struct {
	products map[string]*client.Product
	calls    int
}

func (f *fakeCatalogClient) GetProductByID(ctx context.Context, id string) (*client.Product, error) {
	f.calls++
	product, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", client.ErrProductNotFound, id)
	}
	return product, nil
}

var _ client.IProductClient = (*fakeCatalogClient)(nil)

type fakeAccountClient struct {
	users map[uint]*client.User
}

func (f *fakeAccountClient) GetUserByID(ctx context.Context, id uint) (*client.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", client.ErrUserNotFound, id)
	}
	return user, nil
}

var _ client.IUserClient = (*fakeAccountClient)(nil)
