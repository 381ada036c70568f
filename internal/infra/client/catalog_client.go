package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type IProductClient interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

// CatalogClient 呼叫商品目錄服務
// 每次查詢都是無狀態且冪等的，失敗不重試
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: defaultHttpClient(),
	}
}

func (c *CatalogClient) GetProductByID(ctx context.Context, id string) (*Product, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending catalog request: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog service returned %d", ErrExternalService, resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog response: %v", ErrExternalService, err)
	}

	return &product, nil
}

var _ IProductClient = (*CatalogClient)(nil)
