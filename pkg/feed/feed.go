// Package feed streams executed trades over NATS JetStream. The publisher
// hangs off the book's trade callback; consumers replay the tape from the
// durable stream.
package feed

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type Config struct {
	URL     string
	Stream  string
	Subject string
	Durable string
}

func connect(url string) (*nats.Conn, nats.JetStreamContext, error) {
	var nc *nats.Conn
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 30 * time.Second
	err := backoff.Retry(func() error {
		var err error
		nc, err = nats.Connect(url)
		if err != nil {
			zap.S().Warnf("connect nats error: %v", err)
		}
		return err
	}, boff)
	if err != nil {
		return nil, nil, err
	}

	js, err := nc.JetStream(nats.PublishAsyncMaxPending(65536))
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return nc, js, nil
}
