package redis_decorator

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

/*
cache aside: 先查redis快照，miss才打catalog服務
快照有TTL，過期後重新取得，庫存以過期前的快照為準
redis故障時降級為直接查catalog
*/
type CacheAsideProductClient struct {
	client.IProductClient
	redis redis_repo.IProductSnapshotRepository
}

func NewCacheAsideProductClient(catalog client.IProductClient, redis redis_repo.IProductSnapshotRepository) client.IProductClient {
	return &CacheAsideProductClient{IProductClient: catalog, redis: redis}
}

func (p *CacheAsideProductClient) GetProductByID(ctx context.Context, id string) (*client.Product, error) {
	product, err := p.redis.GetProductSnapshot(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, redis_repo.ErrSnapshotMiss) {
		log.Warn().Err(err).Str("product_id", id).Msg("product snapshot cache get failed")
	}

	product, err = p.IProductClient.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.redis.SetProductSnapshot(ctx, product); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("product snapshot cache set failed")
	}

	return product, nil
}

var _ client.IProductClient = (*CacheAsideProductClient)(nil)
