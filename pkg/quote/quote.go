// Package quote mirrors the top of the book into redis so dashboards and
// other processes can read the current market without touching the engine.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/joripage/matchsim/pkg/orderbook"
)

type Quote struct {
	Symbol  string          `json:"symbol"`
	BestBid decimal.Decimal `json:"best_bid"`
	BestAsk decimal.Decimal `json:"best_ask"`
	Spread  decimal.Decimal `json:"spread"`
	HasBid  bool            `json:"has_bid"`
	HasAsk  bool            `json:"has_ask"`
	At      time.Time       `json:"at"`
}

type Cache struct {
	rdb  *redis.Client
	tick decimal.Decimal
	ttl  time.Duration
}

func NewCache(rdb *redis.Client, tick decimal.Decimal, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, tick: tick, ttl: ttl}
}

// Publish writes the book's current top of book to quote:<symbol>.
func (c *Cache) Publish(ctx context.Context, ob *orderbook.OrderBook) error {
	q := Quote{
		Symbol: ob.Symbol(),
		At:     time.Now(),
	}

	bid, okBid := ob.BestBid()
	ask, okAsk := ob.BestAsk()
	q.HasBid, q.HasAsk = okBid, okAsk
	if okBid {
		q.BestBid = decimal.NewFromInt(bid).Mul(c.tick)
	}
	if okAsk {
		q.BestAsk = decimal.NewFromInt(ask).Mul(c.tick)
	}
	if spread, ok := ob.Spread(); ok {
		q.Spread = decimal.NewFromInt(spread).Mul(c.tick)
	}

	data, err := json.Marshal(q)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("quote:%s", q.Symbol)
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}
