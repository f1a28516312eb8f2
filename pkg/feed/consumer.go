package feed

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/matchsim/pkg/orderbook"
)

type Consumer struct {
	nc  *nats.Conn
	sub *nats.Subscription
}

func NewConsumer(cfg *Config) (*Consumer, error) {
	nc, js, err := connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	sub, err := js.PullSubscribe(cfg.Subject, cfg.Durable)
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &Consumer{nc: nc, sub: sub}, nil
}

// Run fetches trades in batches and hands them to handle until ctx is done.
// Messages that fail handling are not acked and will redeliver.
func (c *Consumer) Run(ctx context.Context, handle func(*orderbook.Trade) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := c.sub.Fetch(10, nats.Context(ctx))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			zap.S().Warnw("fetch trades", "err", err)
			continue
		}

		for _, msg := range msgs {
			var tr orderbook.Trade
			if err := json.Unmarshal(msg.Data, &tr); err != nil {
				zap.S().Errorw("unmarshal trade", "err", err)
				_ = msg.Ack()
				continue
			}
			if err := handle(&tr); err != nil {
				zap.S().Errorw("handle trade", "trade_id", tr.ID, "err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

func (c *Consumer) Close() {
	c.nc.Close()
}
