package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appconfig "github.com/joripage/matchsim/config"
	"github.com/joripage/matchsim/pkg/feed"
	redis_wrapper "github.com/joripage/matchsim/pkg/infra/redis"
	"github.com/joripage/matchsim/pkg/logging"
	"github.com/joripage/matchsim/pkg/orderbook"
	"github.com/joripage/matchsim/pkg/quote"
	"github.com/joripage/matchsim/pkg/sim"
	"github.com/joripage/matchsim/pkg/tape"
)

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
	if cfg.Sim == nil {
		zap.S().Fatal("config has no sim section")
	}

	base, variation, tick, err := cfg.Sim.Prices()
	if err != nil {
		zap.S().Fatalw("parse sim prices", "err", err)
	}

	gen, err := sim.NewGenerator(&sim.GeneratorConfig{
		Symbol:         cfg.Sim.Symbol,
		BasePrice:      base,
		PriceVariation: variation,
		TickSize:       tick,
		MinQty:         cfg.Sim.MinQty,
		MaxQty:         cfg.Sim.MaxQty,
	}, seed(cfg.Sim.Seed))
	if err != nil {
		zap.S().Fatalw("init generator", "err", err)
	}

	book := orderbook.NewOrderBook(cfg.Sim.Symbol)
	store := tape.NewInMemoryTradeStore()
	renderer := sim.NewRenderer(os.Stdout, tick)

	interval := time.Duration(cfg.Sim.IntervalMs) * time.Millisecond
	s := sim.NewSim(book, gen, store, renderer, cfg.Sim.Rounds, interval)

	if cfg.Nats != nil {
		pub, err := feed.NewPublisher(&feed.Config{
			URL:     cfg.Nats.URL,
			Stream:  cfg.Nats.Stream,
			Subject: cfg.Nats.Subject,
		})
		if err != nil {
			zap.S().Fatalw("init trade feed", "err", err)
		}
		defer pub.Close()
		s.SetPublisher(pub)
	}

	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedisWithBackoff(cfg.Redis)
		if err != nil {
			zap.S().Fatalw("init redis", "err", err)
		}
		defer rdb.Close()
		s.SetQuoteCache(quote.NewCache(rdb, tick, 30*time.Second))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil && err != context.Canceled {
		zap.S().Fatalw("simulation failed", "err", err)
	}
}

func seed(s int64) int64 {
	if s != 0 {
		return s
	}
	return time.Now().UnixNano()
}
