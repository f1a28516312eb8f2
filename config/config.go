package config

import (
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	redis_wrapper "github.com/joripage/matchsim/pkg/infra/redis"
)

type AppConfig struct {
	ServiceName string                     `yaml:"service_name"`
	Sim         *SimConfig                 `yaml:"sim"`
	Nats        *NatsConfig                `yaml:"nats"`
	Redis       *redis_wrapper.RedisConfig `yaml:"redis"`
}

// SimConfig drives the random order flow. Price fields are decimal strings
// in currency units; they are converted to integer ticks at the engine
// boundary.
type SimConfig struct {
	Symbol         string `yaml:"symbol"`
	Rounds         int    `yaml:"rounds"`
	IntervalMs     int    `yaml:"interval_ms"`
	Seed           int64  `yaml:"seed"`
	BasePrice      string `yaml:"base_price"`
	PriceVariation string `yaml:"price_variation"`
	TickSize       string `yaml:"tick_size"`
	MinQty         int64  `yaml:"min_qty"`
	MaxQty         int64  `yaml:"max_qty"`
}

// Prices parses the decimal price fields.
func (c *SimConfig) Prices() (base, variation, tick decimal.Decimal, err error) {
	if base, err = decimal.NewFromString(c.BasePrice); err != nil {
		return
	}
	if variation, err = decimal.NewFromString(c.PriceVariation); err != nil {
		return
	}
	tick, err = decimal.NewFromString(c.TickSize)
	return
}

type NatsConfig struct {
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
	Durable string `yaml:"durable"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
