package cache

import "context"

// NoopCache misses every read. Used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (CachedPrice, error) { return CachedPrice{}, ErrCacheMiss }
func (NoopCache) Set(context.Context, CachedPrice) error           { return nil }
func (NoopCache) Invalidate(context.Context, string) error         { return nil }
func (NoopCache) Close() error                                     { return nil }
