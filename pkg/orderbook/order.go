package orderbook

import (
	"time"

	"github.com/google/uuid"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Order is a limit order. Price is in ticks (minor currency units); fractional
// prices are scaled by the caller before the order reaches the book.
// ID is assigned by the book at submission and doubles as the time-priority
// tie-breaker: a smaller ID always means an earlier arrival.
type Order struct {
	ID        int64
	Trader    string
	Symbol    string
	Side      Side
	Price     int64
	Qty       int64
	CreatedAt time.Time
}

func NewOrder(trader, symbol string, side Side, price, qty int64) (*Order, error) {
	if price <= 0 || qty <= 0 {
		return nil, ErrInvalidOrder
	}
	return &Order{
		Trader:    trader,
		Symbol:    symbol,
		Side:      side,
		Price:     price,
		Qty:       qty,
		CreatedAt: time.Now(),
	}, nil
}

// Trade records one fill between exactly one buy and one sell order.
// Immutable once created.
type Trade struct {
	ID          string
	Seq         int64
	Symbol      string
	BuyOrderID  int64
	SellOrderID int64
	Price       int64
	Qty         int64
	ExecutedAt  time.Time
}

func newTrade(symbol string, seq, buyID, sellID, price, qty int64) *Trade {
	return &Trade{
		ID:          uuid.New().String(),
		Seq:         seq,
		Symbol:      symbol,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Price:       price,
		Qty:         qty,
		ExecutedAt:  time.Now(),
	}
}
