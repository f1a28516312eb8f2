package orderbook

import (
	"container/heap"
	"sync"

	"github.com/gammazero/deque"
)

// OrderBook holds the resident orders of one instrument. Each side is a
// price -> FIFO deque map with a PriceHeap tracking the best price; at a
// level the deque front is the earliest arrival, so price-time priority is
// enforced by insertion position alone.
//
// Submit is one critical section: the match-then-insert sequence must never
// interleave with another submission.
type OrderBook struct {
	symbol string

	buyOrders  map[int64]*deque.Deque[*Order]
	sellOrders map[int64]*deque.Deque[*Order]

	buyHeap  *PriceHeap
	sellHeap *PriceHeap

	nextOrderID int64
	nextTradeID int64

	callbacks []func([]*Trade)

	mu sync.Mutex
}

func NewOrderBook(symbol string) *OrderBook {
	buyHeap := NewPriceHeap(func(i, j int64) bool { return i > j })  // Max-heap
	sellHeap := NewPriceHeap(func(i, j int64) bool { return i < j }) // Min-heap

	return &OrderBook{
		symbol:      symbol,
		buyOrders:   make(map[int64]*deque.Deque[*Order]),
		sellOrders:  make(map[int64]*deque.Deque[*Order]),
		buyHeap:     buyHeap,
		sellHeap:    sellHeap,
		nextOrderID: 1,
		nextTradeID: 1,
	}
}

func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// RegisterTradeCallback adds fn to the callbacks fired after every
// submission that produced trades.
func (ob *OrderBook) RegisterTradeCallback(fn func([]*Trade)) {
	ob.callbacks = append(ob.callbacks, fn)
}

// Submit matches order against the opposite side and books any remainder.
// It rejects the order before touching book state, so a returned error
// guarantees no mutation and no partial trades. Returned trades are in
// execution order, best price first.
func (ob *OrderBook) Submit(order *Order) ([]*Trade, error) {
	if order.Price <= 0 || order.Qty <= 0 {
		return nil, ErrInvalidOrder
	}
	if order.Symbol != ob.symbol {
		return nil, ErrSymbolMismatch
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	order.ID = ob.nextOrderID
	ob.nextOrderID++

	var sideBook, counterBook map[int64]*deque.Deque[*Order]
	var sideHeap, counterHeap *PriceHeap
	var crosses func(orderPrice, counterPrice int64) bool

	if order.Side == BUY {
		sideBook = ob.buyOrders
		sideHeap = ob.buyHeap
		counterBook = ob.sellOrders
		counterHeap = ob.sellHeap
		crosses = func(orderPrice, counterPrice int64) bool { return orderPrice >= counterPrice }
	} else { // SELL
		sideBook = ob.sellOrders
		sideHeap = ob.sellHeap
		counterBook = ob.buyOrders
		counterHeap = ob.buyHeap
		crosses = func(orderPrice, counterPrice int64) bool { return orderPrice <= counterPrice }
	}

	trades := ob.matchOrder(order, counterBook, counterHeap, crosses)

	if order.Qty > 0 {
		ob.addToBook(sideBook, sideHeap, order)
	}

	if len(trades) > 0 {
		for _, cb := range ob.callbacks {
			cb(trades)
		}
	}

	return trades, nil
}

func (ob *OrderBook) matchOrder(
	order *Order,
	counterBook map[int64]*deque.Deque[*Order],
	counterHeap *PriceHeap,
	crosses func(orderPrice, counterPrice int64) bool,
) []*Trade {
	var trades []*Trade

	for order.Qty > 0 {
		bestPrice, ok := counterHeap.Peek()
		if !ok || !crosses(order.Price, bestPrice) {
			break
		}

		q := counterBook[bestPrice]
		best := q.Front()

		matchQty := min(order.Qty, best.Qty)
		order.Qty -= matchQty
		best.Qty -= matchQty

		// The resting order sets the price.
		if order.Side == BUY {
			trades = append(trades, newTrade(ob.symbol, ob.nextTradeID, order.ID, best.ID, bestPrice, matchQty))
		} else {
			trades = append(trades, newTrade(ob.symbol, ob.nextTradeID, best.ID, order.ID, bestPrice, matchQty))
		}
		ob.nextTradeID++

		if best.Qty == 0 {
			q.PopFront()
		}
		if q.Len() == 0 {
			heap.Pop(counterHeap)
			delete(counterBook, bestPrice)
		}
	}

	return trades
}

func (ob *OrderBook) addToBook(book map[int64]*deque.Deque[*Order], priceHeap *PriceHeap, order *Order) {
	if book[order.Price] == nil {
		book[order.Price] = &deque.Deque[*Order]{}
		heap.Push(priceHeap, order.Price)
	}
	book[order.Price].PushBack(order)
}

// BestBid returns the highest resident buy price, or false if no bids rest.
func (ob *OrderBook) BestBid() (int64, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.buyHeap.Peek()
}

// BestAsk returns the lowest resident sell price, or false if no asks rest.
func (ob *OrderBook) BestAsk() (int64, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.sellHeap.Peek()
}

// Spread returns bestAsk - bestBid; false when either side is empty.
func (ob *OrderBook) Spread() (int64, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	bid, okBid := ob.buyHeap.Peek()
	ask, okAsk := ob.sellHeap.Peek()
	if !okBid || !okAsk {
		return 0, false
	}
	return ask - bid, true
}
