package feed

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/matchsim/pkg/orderbook"
)

type Publisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
}

// NewPublisher connects and makes sure the trade stream exists.
func NewPublisher(cfg *Config) (*Publisher, error) {
	nc, js, err := connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.Subject},
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		nc.Close()
		return nil, err
	}

	return &Publisher{nc: nc, js: js, subject: cfg.Subject}, nil
}

// Publish sends each trade as one JSON message, async with a single drain
// point so a slow broker does not stall the matching loop.
func (p *Publisher) Publish(trades []*orderbook.Trade) {
	for _, tr := range trades {
		data, err := json.Marshal(tr)
		if err != nil {
			zap.S().Errorw("marshal trade", "trade_id", tr.ID, "err", err)
			continue
		}
		if _, err := p.js.PublishAsync(p.subject, data); err != nil {
			zap.S().Errorw("publish trade", "trade_id", tr.ID, "err", err)
		}
	}
}

// Close waits for pending acks then drops the connection.
func (p *Publisher) Close() {
	select {
	case <-p.js.PublishAsyncComplete():
	case <-time.After(5 * time.Second):
		zap.S().Warn("timeout waiting for publish acks")
	}
	p.nc.Close()
}
