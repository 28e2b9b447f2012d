package cache

import (
	"context"
	"time"

	"cosmossdk.io/math"
)

// CachedPrice is the serialized form of a consensus price.
type CachedPrice struct {
	Pair      string    `json:"pair"`
	Price     math.Int  `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceCache is a read-through cache in front of the oracle's consensus
// prices. ErrCacheMiss distinguishes absence from a backend failure.
type PriceCache interface {
	Get(ctx context.Context, pair string) (CachedPrice, error)
	Set(ctx context.Context, price CachedPrice) error
	Invalidate(ctx context.Context, pair string) error
	Close() error
}
