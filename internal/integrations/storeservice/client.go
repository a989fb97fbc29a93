package storeservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с StoreService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StoreService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStore получает магазин по ID
func (c *Client) GetStore(ctx context.Context, storeID uuid.UUID) (*Store, error) {
	url := fmt.Sprintf("%s/internal/stores/%s", c.baseURL, storeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid store ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStoreNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var store Store
	if err := json.NewDecoder(resp.Body).Decode(&store); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &store, nil
}

// GetActiveStore получает магазин и проверяет, что он принимает бронирования
func (c *Client) GetActiveStore(ctx context.Context, storeID uuid.UUID) (*Store, error) {
	c.log.Info("Fetching store id=%s", storeID)

	store, err := c.GetStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			c.log.Warn("Store id=%s not found", storeID)
			return nil, err
		}
		c.log.Error("StoreService request failed for store id=%s: %v", storeID, err)
		return nil, err
	}

	if !store.IsActive {
		c.log.Warn("Store id=%s is inactive", storeID)
		return nil, ErrStoreInactive
	}

	return store, nil
}
