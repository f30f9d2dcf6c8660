package models

// Transaction represents a single raw trade tick from a daily IDX
// done-summary dump. One value is built per data line during parsing and
// discarded after aggregation; individual ticks are never persisted.
//
// OrderRef1 and OrderRef2 are the order sequence references used by the
// bid/ask classifier: OrderRef1 > OrderRef2 marks the trade as HAKA-side
// (seller-initiated bid); anything else, including equal references, is
// HAKI-side (buyer-initiated ask).
type Transaction struct {
	StockCode    string  // 4-char ticker, e.g. "BBCA"
	SellerBroker string  // broker code on the selling side
	BuyerBroker  string  // broker code on the buying side
	Volume       float64 // traded volume in lots
	Price        float64 // exact trade price, no banding
	TypeCode     string  // transaction type code, kept as-is
	Time         string  // transaction time, kept as-is
	OrderRef1    float64
	OrderRef2    float64
}

// Value returns the transaction value (price x volume).
func (t Transaction) Value() float64 {
	return t.Price * t.Volume
}

// IsBid reports whether the transaction classifies as a bid
// (seller-initiated). The comparison is strict: equal order references
// classify as ask.
func (t Transaction) IsBid() bool {
	return t.OrderRef1 > t.OrderRef2
}
