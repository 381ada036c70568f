package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type IUserClient interface {
	GetUserByID(ctx context.Context, id uint) (*User, error)
}

// AccountClient 呼叫用戶服務，取得用戶所在國家與稅率
type AccountClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAccountClient(baseURL string) *AccountClient {
	return &AccountClient{
		baseURL:    baseURL,
		httpClient: defaultHttpClient(),
	}
}

func (c *AccountClient) GetUserByID(ctx context.Context, id uint) (*User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending account request: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: account service returned %d", ErrExternalService, resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decoding account response: %v", ErrExternalService, err)
	}

	return &user, nil
}

var _ IUserClient = (*AccountClient)(nil)
