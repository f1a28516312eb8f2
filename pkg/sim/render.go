package sim

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/joripage/matchsim/pkg/orderbook"
)

// Renderer writes a console view of the book: ask levels from highest to
// lowest, then bid levels from highest to lowest, aggregated qty per level,
// followed by the spread. Tick counts are scaled back to currency units.
type Renderer struct {
	w    io.Writer
	tick decimal.Decimal
}

func NewRenderer(w io.Writer, tick decimal.Decimal) *Renderer {
	return &Renderer{w: w, tick: tick}
}

func (r *Renderer) price(ticks int64) decimal.Decimal {
	return decimal.NewFromInt(ticks).Mul(r.tick)
}

func (r *Renderer) RenderOrder(o *orderbook.Order) {
	fmt.Fprintf(r.w, "Placing %s order: %d %s at $%s\n", o.Side, o.Qty, o.Symbol, r.price(o.Price))
}

func (r *Renderer) RenderTrades(trades []*orderbook.Trade) {
	if len(trades) == 0 {
		return
	}
	fmt.Fprintln(r.w, "TRADES EXECUTED:")
	for _, tr := range trades {
		fmt.Fprintf(r.w, "  %d at $%s\n", tr.Qty, r.price(tr.Price))
	}
}

func (r *Renderer) RenderBook(snap *orderbook.Snapshot) {
	fmt.Fprintf(r.w, "Order Book for %s\n", snap.Symbol)
	fmt.Fprintln(r.w, "---------------------------")

	fmt.Fprintln(r.w, "SELL ORDERS:")
	for i := len(snap.Asks) - 1; i >= 0; i-- {
		lvl := snap.Asks[i]
		fmt.Fprintf(r.w, "  %s: %d\n", r.price(lvl.Price), lvl.Qty)
	}

	fmt.Fprintln(r.w, "---------------------------")

	fmt.Fprintln(r.w, "BUY ORDERS:")
	for _, lvl := range snap.Bids {
		fmt.Fprintf(r.w, "  %s: %d\n", r.price(lvl.Price), lvl.Qty)
	}

	fmt.Fprintln(r.w, "---------------------------")
}

func (r *Renderer) RenderSpread(ob *orderbook.OrderBook) {
	bid, okBid := ob.BestBid()
	ask, okAsk := ob.BestAsk()

	switch {
	case okBid && okAsk:
		fmt.Fprintf(r.w, "Current spread: $%s - $%s = $%s\n",
			r.price(ask), r.price(bid), r.price(ask-bid))
	case okBid:
		fmt.Fprintf(r.w, "Best bid: $%s (no asks)\n", r.price(bid))
	case okAsk:
		fmt.Fprintf(r.w, "Best ask: $%s (no bids)\n", r.price(ask))
	default:
		fmt.Fprintln(r.w, "Order book is empty")
	}
}
