package orderbook

import (
	"sort"

	"github.com/gammazero/deque"
)

// PriceLevel is the aggregated resident quantity at one price.
type PriceLevel struct {
	Price int64
	Qty   int64
}

// Snapshot is a read-only projection of the book: bids best (highest) price
// first, asks best (lowest) price first. Taking a snapshot never mutates the
// book, so repeated calls without an intervening Submit are identical.
type Snapshot struct {
	Symbol string
	Bids   []PriceLevel
	Asks   []PriceLevel
}

func (ob *OrderBook) Snapshot() *Snapshot {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return &Snapshot{
		Symbol: ob.symbol,
		Bids:   aggregateLevels(ob.buyOrders, func(i, j int64) bool { return i > j }),
		Asks:   aggregateLevels(ob.sellOrders, func(i, j int64) bool { return i < j }),
	}
}

// Depth returns the number of resident orders on each side.
func (ob *OrderBook) Depth() (bids, asks int) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	for _, q := range ob.buyOrders {
		bids += q.Len()
	}
	for _, q := range ob.sellOrders {
		asks += q.Len()
	}
	return bids, asks
}

func aggregateLevels(book map[int64]*deque.Deque[*Order], less func(i, j int64) bool) []PriceLevel {
	levels := make([]PriceLevel, 0, len(book))
	for price, q := range book {
		var qty int64
		for i := 0; i < q.Len(); i++ {
			qty += q.At(i).Qty
		}
		levels = append(levels, PriceLevel{Price: price, Qty: qty})
	}
	sort.Slice(levels, func(i, j int) bool { return less(levels[i].Price, levels[j].Price) })
	return levels
}
