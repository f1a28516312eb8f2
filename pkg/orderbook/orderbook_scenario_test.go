package orderbook

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestResidualAskThenNonCrossingBid(t *testing.T) {
	ob := NewOrderBook("ABC")

	trades, _ := ob.Submit(mustOrder(t, SELL, 106, 20))
	if len(trades) != 0 {
		t.Fatalf("expected no trades on empty book, got %d", len(trades))
	}

	snap := ob.Snapshot()
	if !reflect.DeepEqual(snap.Asks, []PriceLevel{{Price: 106, Qty: 20}}) {
		t.Fatalf("unexpected asks: %+v", snap.Asks)
	}

	// 102 < 106: no cross, bid rests
	trades, _ = ob.Submit(mustOrder(t, BUY, 102, 8))
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(trades))
	}

	snap = ob.Snapshot()
	if !reflect.DeepEqual(snap.Asks, []PriceLevel{{Price: 106, Qty: 20}}) {
		t.Errorf("unexpected asks: %+v", snap.Asks)
	}
	if !reflect.DeepEqual(snap.Bids, []PriceLevel{{Price: 102, Qty: 8}}) {
		t.Errorf("unexpected bids: %+v", snap.Bids)
	}

	ask, _ := ob.BestAsk()
	bid, _ := ob.BestBid()
	spread, ok := ob.Spread()
	if ask != 106 || bid != 102 || !ok || spread != 4 {
		t.Errorf("expected ask=106 bid=102 spread=4, got ask=%d bid=%d spread=%d", ask, bid, spread)
	}
}

func TestIncomingRemainderRestsAfterSweep(t *testing.T) {
	ob := NewOrderBook("ABC")

	sell := mustOrder(t, SELL, 100, 10)
	ob.Submit(sell)

	buy := mustOrder(t, BUY, 100, 15)
	trades, _ := ob.Submit(buy)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].SellOrderID != sell.ID || trades[0].Price != 100 || trades[0].Qty != 10 {
		t.Errorf("unexpected trade: %+v", trades[0])
	}

	snap := ob.Snapshot()
	if len(snap.Asks) != 0 {
		t.Errorf("expected empty ask side, got %+v", snap.Asks)
	}
	if !reflect.DeepEqual(snap.Bids, []PriceLevel{{Price: 100, Qty: 5}}) {
		t.Errorf("expected remainder 5@100 resting, got %+v", snap.Bids)
	}
}

func TestSweepLeavesCounterRemainder(t *testing.T) {
	ob := NewOrderBook("ABC")

	s1 := mustOrder(t, SELL, 100, 5)
	s2 := mustOrder(t, SELL, 101, 5)
	ob.Submit(s1)
	ob.Submit(s2)

	trades, _ := ob.Submit(mustOrder(t, BUY, 101, 8))
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].Price != 100 || trades[0].Qty != 5 || trades[0].SellOrderID != s1.ID {
		t.Errorf("unexpected first trade: %+v", trades[0])
	}
	if trades[1].Price != 101 || trades[1].Qty != 3 || trades[1].SellOrderID != s2.ID {
		t.Errorf("unexpected second trade: %+v", trades[1])
	}

	snap := ob.Snapshot()
	if len(snap.Bids) != 0 {
		t.Errorf("incoming was fully filled, expected no resident bid, got %+v", snap.Bids)
	}
	if !reflect.DeepEqual(snap.Asks, []PriceLevel{{Price: 101, Qty: 2}}) {
		t.Errorf("expected ask remainder 2@101, got %+v", snap.Asks)
	}
}

func TestSnapshotIdempotent(t *testing.T) {
	ob := NewOrderBook("ABC")
	ob.Submit(mustOrder(t, SELL, 105, 7))
	ob.Submit(mustOrder(t, SELL, 103, 2))
	ob.Submit(mustOrder(t, BUY, 101, 4))

	first := ob.Snapshot()
	second := ob.Snapshot()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshot not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// Random order flow: every trade crosses, quantity is conserved, and no
// zero-qty order ever rests.
func TestRandomFlowInvariants(t *testing.T) {
	ob := NewOrderBook("ABC")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5_000; i++ {
		side := BUY
		if rng.Intn(2) == 0 {
			side = SELL
		}
		price := int64(90 + rng.Intn(21))
		qty := int64(1 + rng.Intn(20))

		o := mustOrder(t, side, price, qty)
		trades, err := ob.Submit(o)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		var filled int64
		for _, tr := range trades {
			filled += tr.Qty
			if tr.Qty <= 0 {
				t.Fatalf("non-positive trade qty: %+v", tr)
			}
			if side == BUY && tr.Price > price {
				t.Fatalf("buy filled above limit: %+v", tr)
			}
			if side == SELL && tr.Price < price {
				t.Fatalf("sell filled below limit: %+v", tr)
			}
		}
		if filled+o.Qty != qty {
			t.Fatalf("quantity not conserved: filled=%d remaining=%d original=%d", filled, o.Qty, qty)
		}

		// book never crosses itself and never holds empty levels
		bid, okBid := ob.BestBid()
		ask, okAsk := ob.BestAsk()
		if okBid && okAsk && bid >= ask {
			t.Fatalf("book crossed: bid=%d ask=%d", bid, ask)
		}
		snap := ob.Snapshot()
		for _, lvl := range append(snap.Bids, snap.Asks...) {
			if lvl.Qty <= 0 {
				t.Fatalf("empty price level resident: %+v", lvl)
			}
		}
	}
}
