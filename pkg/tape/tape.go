package tape

import "github.com/joripage/matchsim/pkg/orderbook"

// TradeStore journals executed trades. Implementations must be safe for
// concurrent use: the book's trade callback appends while readers poll.
type TradeStore interface {
	Append(trades ...*orderbook.Trade)
	All() []*orderbook.Trade
	ByOrderID(orderID int64) []*orderbook.Trade
	Len() int
	TotalQty() int64
}
