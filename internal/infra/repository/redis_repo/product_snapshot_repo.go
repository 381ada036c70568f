package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrSnapshotMiss ProductCacheError = errors.New("product snapshot not cached")

// IProductSnapshotRepository 定義Redis商品快照操作的介面
type IProductSnapshotRepository interface {
	// GetProductSnapshot 取得商品快照，不存在回傳ErrSnapshotMiss
	GetProductSnapshot(ctx context.Context, productID string) (*client.Product, error)

	// SetProductSnapshot 寫入商品快照，帶TTL
	SetProductSnapshot(ctx context.Context, product *client.Product) error

	// DeleteProductSnapshot 刪除商品快照
	DeleteProductSnapshot(ctx context.Context, productID string) error
}

/*	redis 專注商品快照
	結構:
	product:{id}:snapshot -> JSON, TTL到期自動失效 */

type ProductSnapshotRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductSnapshotRepo(productCache *redis.Client, ttl time.Duration) *ProductSnapshotRepo {
	return &ProductSnapshotRepo{productCache: productCache, ttl: ttl}
}

func generateProductSnapshotKey(productID string) string {
	return fmt.Sprintf("product:%s:snapshot", productID)
}

func (s *ProductSnapshotRepo) GetProductSnapshot(ctx context.Context, productID string) (*client.Product, error) {
	redisKey := generateProductSnapshotKey(productID)

	val, err := s.productCache.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product snapshot: %w", err)
	}

	var product client.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, fmt.Errorf("invalid snapshot for product %s: %w", productID, err)
	}
	return &product, nil
}

func (s *ProductSnapshotRepo) SetProductSnapshot(ctx context.Context, product *client.Product) error {
	redisKey := generateProductSnapshotKey(product.ID)

	val, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product snapshot: %w", err)
	}

	if err := s.productCache.Set(ctx, redisKey, val, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product snapshot: %w", err)
	}
	return nil
}

func (s *ProductSnapshotRepo) DeleteProductSnapshot(ctx context.Context, productID string) error {
	redisKey := generateProductSnapshotKey(productID)

	if err := s.productCache.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("failed to delete product snapshot: %w", err)
	}
	return nil
}

var _ IProductSnapshotRepository = (*ProductSnapshotRepo)(nil)
