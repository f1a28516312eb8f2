package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/matchsim/pkg/orderbook"
	"github.com/joripage/matchsim/pkg/sim"
)

const numOrders = 1_000_000

func main() {
	gen, err := sim.NewGenerator(&sim.GeneratorConfig{
		Symbol:         "ABC",
		BasePrice:      decimal.RequireFromString("150"),
		PriceVariation: decimal.RequireFromString("50"),
		TickSize:       decimal.RequireFromString("0.01"),
		MinQty:         1,
		MaxQty:         100,
	}, time.Now().UnixNano())
	if err != nil {
		panic(err)
	}

	book := orderbook.NewOrderBook("ABC")

	totalMatched := 0
	totalQty := int64(0)
	book.RegisterTradeCallback(func(trades []*orderbook.Trade) {
		for _, tr := range trades {
			totalMatched++
			totalQty += tr.Qty
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		order, err := gen.Next()
		if err != nil {
			panic(err)
		}
		if _, err := book.Submit(order); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)

	bids, asks := book.Depth()

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %d\n", totalQty)
	fmt.Printf("Resident Orders  : %d bids / %d asks\n", bids, asks)
	fmt.Printf("Time Taken       : %s (%.0f orders/sec)\n", elapsed, float64(numOrders)/elapsed.Seconds())
}
