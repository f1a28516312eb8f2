// Package sim drives the matching engine with random order flow and renders
// the book after every round. The engine does the matching; everything here
// is glue around Submit and Snapshot.
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joripage/matchsim/pkg/orderbook"
	"github.com/joripage/matchsim/pkg/quote"
	"github.com/joripage/matchsim/pkg/tape"
)

type tradePublisher interface {
	Publish(trades []*orderbook.Trade)
}

type Sim struct {
	book     *orderbook.OrderBook
	gen      *Generator
	store    tape.TradeStore
	renderer *Renderer

	publisher  tradePublisher
	quoteCache *quote.Cache

	rounds   int
	interval time.Duration
}

func NewSim(book *orderbook.OrderBook, gen *Generator, store tape.TradeStore, renderer *Renderer, rounds int, interval time.Duration) *Sim {
	s := &Sim{
		book:     book,
		gen:      gen,
		store:    store,
		renderer: renderer,
		rounds:   rounds,
		interval: interval,
	}

	book.RegisterTradeCallback(func(trades []*orderbook.Trade) {
		s.store.Append(trades...)
		if s.publisher != nil {
			s.publisher.Publish(trades)
		}
	})

	return s
}

func (s *Sim) SetPublisher(p tradePublisher) {
	s.publisher = p
}

func (s *Sim) SetQuoteCache(c *quote.Cache) {
	s.quoteCache = c
}

// Run plays rounds sequentially until done or ctx is canceled. Each round:
// generate, submit, report trades, render the book and spread.
func (s *Sim) Run(ctx context.Context) error {
	fmt.Fprintf(s.renderer.w, "Simulating random trading for %s\n", s.book.Symbol())
	fmt.Fprintln(s.renderer.w, "=================================")

	for i := 1; i <= s.rounds; i++ {
		fmt.Fprintf(s.renderer.w, "\nRound %d\n", i)

		order, err := s.gen.Next()
		if err != nil {
			return err
		}
		s.renderer.RenderOrder(order)

		trades, err := s.book.Submit(order)
		if err != nil {
			return err
		}

		s.renderer.RenderTrades(trades)
		s.renderer.RenderBook(s.book.Snapshot())
		s.renderer.RenderSpread(s.book)

		if s.quoteCache != nil {
			if err := s.quoteCache.Publish(ctx, s.book); err != nil {
				zap.S().Warnw("publish quote", "err", err)
			}
		}

		if i < s.rounds && s.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.interval):
			}
		}
	}

	bids, asks := s.book.Depth()
	zap.S().Infow("simulation finished",
		"rounds", s.rounds,
		"trades", s.store.Len(),
		"matched_qty", s.store.TotalQty(),
		"resident_bids", bids,
		"resident_asks", asks,
	)

	return nil
}
