package launchpad

import (
	"time"

	"github.com/miaswap/launchpad/cache"
)

const (
	saleStateKey = "sale-state"

	// proofs are immutable for a committed root, sale state changes with
	// every mint
	proofExpTime     = 12 * time.Hour
	saleStateExpTime = 5 * time.Second
)

// Cache fronts the hot read paths: merkle proofs and the sale state summary.
type Cache struct {
	proofCache *cache.BigCache
	stateCache *cache.BigCache
}

func NewCache() *Cache {
	proofCache, err := cache.NewBigCache(proofExpTime)
	if err != nil {
		panic(err)
	}
	stateCache, err := cache.NewBigCache(saleStateExpTime)
	if err != nil {
		panic(err)
	}
	return &Cache{
		proofCache: proofCache,
		stateCache: stateCache,
	}
}

func (c *Cache) GetProof(key string) ([]byte, error) {
	return c.proofCache.Get(key)
}

func (c *Cache) SetProof(key string, by []byte) {
	if err := c.proofCache.Set(key, by); err != nil {
		log.Warn("cache proof", "key", key, "err", err)
	}
}

func (c *Cache) GetSaleState() ([]byte, error) {
	return c.stateCache.Get(saleStateKey)
}

func (c *Cache) SetSaleState(by []byte) {
	if err := c.stateCache.Set(saleStateKey, by); err != nil {
		log.Warn("cache sale state", "err", err)
	}
}
