package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appconfig "github.com/joripage/matchsim/config"
	"github.com/joripage/matchsim/pkg/feed"
	"github.com/joripage/matchsim/pkg/logging"
	"github.com/joripage/matchsim/pkg/orderbook"
	"github.com/joripage/matchsim/pkg/tape"
)

// tapereader follows the trade feed and keeps a local copy of the tape,
// logging each fill as it arrives.
func main() {
	configPath := flag.String("config", "./config/sim.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := logging.Init(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		zap.S().Fatalw("load config", "err", err)
	}
	if cfg.Nats == nil {
		zap.S().Fatal("config has no nats section")
	}

	consumer, err := feed.NewConsumer(&feed.Config{
		URL:     cfg.Nats.URL,
		Stream:  cfg.Nats.Stream,
		Subject: cfg.Nats.Subject,
		Durable: cfg.Nats.Durable,
	})
	if err != nil {
		zap.S().Fatalw("init consumer", "err", err)
	}
	defer consumer.Close()

	store := tape.NewInMemoryTradeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = consumer.Run(ctx, func(tr *orderbook.Trade) error {
		store.Append(tr)
		zap.S().Infow("trade",
			"symbol", tr.Symbol,
			"buy_order_id", tr.BuyOrderID,
			"sell_order_id", tr.SellOrderID,
			"price", tr.Price,
			"qty", tr.Qty,
		)
		return nil
	})
	if err != nil && err != context.Canceled {
		zap.S().Fatalw("consumer failed", "err", err)
	}

	zap.S().Infow("tape closed", "trades", store.Len(), "total_qty", store.TotalQty())
}
