package tape

import (
	"sync"

	"github.com/joripage/matchsim/pkg/orderbook"
)

type InMemoryTradeStore struct {
	mu       sync.RWMutex
	trades   []*orderbook.Trade
	byOrder  map[int64][]*orderbook.Trade // order ID -> fills touching it
	totalQty int64
}

func NewInMemoryTradeStore() *InMemoryTradeStore {
	return &InMemoryTradeStore{
		byOrder: make(map[int64][]*orderbook.Trade),
	}
}

func (s *InMemoryTradeStore) Append(trades ...*orderbook.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tr := range trades {
		s.trades = append(s.trades, tr)
		s.byOrder[tr.BuyOrderID] = append(s.byOrder[tr.BuyOrderID], tr)
		s.byOrder[tr.SellOrderID] = append(s.byOrder[tr.SellOrderID], tr)
		s.totalQty += tr.Qty
	}
}

// All returns the full tape in execution order.
func (s *InMemoryTradeStore) All() []*orderbook.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*orderbook.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// ByOrderID returns every fill the given order took part in, either side.
func (s *InMemoryTradeStore) ByOrderID(orderID int64) []*orderbook.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fills := s.byOrder[orderID]
	out := make([]*orderbook.Trade, len(fills))
	copy(out, fills)
	return out
}

func (s *InMemoryTradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.trades)
}

func (s *InMemoryTradeStore) TotalQty() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalQty
}
