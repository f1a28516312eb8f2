package orderbook

import "errors"

var (
	ErrInvalidOrder   = errors.New("invalid order: price and qty must be positive")
	ErrSymbolMismatch = errors.New("order symbol does not match book symbol")
)
