package sim

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joripage/matchsim/pkg/orderbook"
	"github.com/joripage/matchsim/pkg/tape"
)

func TestSimRun(t *testing.T) {
	book := orderbook.NewOrderBook("AAPL")
	gen, err := NewGenerator(testGeneratorConfig(), 42)
	require.NoError(t, err)

	store := tape.NewInMemoryTradeStore()
	var out bytes.Buffer
	renderer := NewRenderer(&out, decimal.RequireFromString("1"))

	s := NewSim(book, gen, store, renderer, 100, 0)
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Order Book for AAPL")

	// with ±10% price noise some of 100 rounds must cross
	assert.Greater(t, store.Len(), 0)

	// conservation: everything on the tape also counts once per side
	var tapeQty int64
	for _, tr := range store.All() {
		tapeQty += tr.Qty
		assert.Equal(t, "AAPL", tr.Symbol)
	}
	assert.Equal(t, tapeQty, store.TotalQty())

	// book must never end up crossed
	bid, okBid := book.BestBid()
	ask, okAsk := book.BestAsk()
	if okBid && okAsk {
		assert.Less(t, bid, ask)
	}
}

func TestSimRunCanceled(t *testing.T) {
	book := orderbook.NewOrderBook("AAPL")
	gen, err := NewGenerator(testGeneratorConfig(), 42)
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewSim(book, gen, tape.NewInMemoryTradeStore(), NewRenderer(&out, decimal.New(1, 0)), 1000, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

type capturePublisher struct {
	trades []*orderbook.Trade
}

func (p *capturePublisher) Publish(trades []*orderbook.Trade) {
	p.trades = append(p.trades, trades...)
}

func TestSimPublishesTrades(t *testing.T) {
	book := orderbook.NewOrderBook("AAPL")
	gen, err := NewGenerator(testGeneratorConfig(), 7)
	require.NoError(t, err)

	store := tape.NewInMemoryTradeStore()
	var out bytes.Buffer
	s := NewSim(book, gen, store, NewRenderer(&out, decimal.New(1, 0)), 100, 0)

	pub := &capturePublisher{}
	s.SetPublisher(pub)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, store.All(), pub.trades)
}
