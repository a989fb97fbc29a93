package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// keyProduct product:{store_id}:{product_id} -> товар с единицами и тарифами в JSON
const keyProduct = "product:%s:%s"

// DefaultTTL время жизни записи по умолчанию
const DefaultTTL = time.Minute

// Cache кеш товаров в Redis (cache-aside)
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCache создает кеш товаров
func NewCache(rdb redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewClient создает клиента Redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Key возвращает ключ товара в Redis
func Key(storeID, productID uuid.UUID) string {
	return fmt.Sprintf(keyProduct, storeID.String(), productID.String())
}

// Get возвращает товар из кеша; found=false при промахе
func (c *Cache) Get(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(storeID, productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %w", ErrCacheRead, err)
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &product, true, nil
}

// Set сохраняет товар в кеш
func (c *Cache) Set(ctx context.Context, product *domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %w", ErrCacheWrite, err)
	}

	if err := c.rdb.Set(ctx, Key(product.StoreID, product.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %w", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate удаляет товар из кеша
func (c *Cache) Invalidate(ctx context.Context, storeID, productID uuid.UUID) error {
	if err := c.rdb.Del(ctx, Key(storeID, productID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %w", ErrCacheWrite, err)
	}
	return nil
}

// Nop кеш-заглушка, когда Redis выключен
type Nop struct{}

func (Nop) Get(context.Context, uuid.UUID, uuid.UUID) (*domain.Product, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, *domain.Product) error {
	return nil
}

func (Nop) Invalidate(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
