package sim

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/joripage/matchsim/pkg/orderbook"
)

const traderIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type GeneratorConfig struct {
	Symbol         string
	BasePrice      decimal.Decimal
	PriceVariation decimal.Decimal
	TickSize       decimal.Decimal
	MinQty         int64
	MaxQty         int64
}

var errBadGeneratorConfig = errors.New("generator config: tick size, base price and qty bounds must be positive")

// Generator produces random limit orders around a base price. Prices are
// configured as decimals and converted to ticks once, so every generated
// order lands on the grid the engine expects.
type Generator struct {
	cfg       *GeneratorConfig
	rng       *rand.Rand
	baseTicks int64
	varTicks  int64
}

func NewGenerator(cfg *GeneratorConfig, seed int64) (*Generator, error) {
	if cfg.TickSize.Sign() <= 0 || cfg.BasePrice.Sign() <= 0 ||
		cfg.MinQty <= 0 || cfg.MaxQty < cfg.MinQty {
		return nil, errBadGeneratorConfig
	}

	baseTicks := cfg.BasePrice.Div(cfg.TickSize).IntPart()
	varTicks := cfg.PriceVariation.Div(cfg.TickSize).IntPart()
	if baseTicks-varTicks <= 0 {
		return nil, errBadGeneratorConfig
	}

	return &Generator{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		baseTicks: baseTicks,
		varTicks:  varTicks,
	}, nil
}

// Next returns one random order: 50/50 side, price uniform in
// base ± variation snapped to tick, qty uniform in [MinQty, MaxQty].
func (g *Generator) Next() (*orderbook.Order, error) {
	side := orderbook.BUY
	if g.rng.Intn(2) == 0 {
		side = orderbook.SELL
	}

	price := g.baseTicks + g.rng.Int63n(2*g.varTicks+1) - g.varTicks
	qty := g.cfg.MinQty + g.rng.Int63n(g.cfg.MaxQty-g.cfg.MinQty+1)

	return orderbook.NewOrder(g.randomTraderID(), g.cfg.Symbol, side, price, qty)
}

func (g *Generator) randomTraderID() string {
	b := make([]byte, 5)
	for i := range b {
		b[i] = traderIDChars[g.rng.Intn(len(traderIDChars))]
	}
	return "TRADER-" + string(b)
}
