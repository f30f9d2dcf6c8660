package models

// The types below are the rows of the derived CSV artifacts. Field names
// double as CSV column headers (gocsv falls back to the field name when no
// tag is present), so they are part of the output contract and must stay
// PascalCase in declaration order.

// PriceLevel is one row of a per-stock bid/ask footprint file. The stock code
// is implicit from the file path.
//
// NetVolume and TotalVolume are always derived from BidVolume/AskVolume at
// row-build time, never accumulated separately. Broker counts are the sizes
// of per-bucket unique broker sets, scoped to one input file.
type PriceLevel struct {
	Price          float64
	BidVolume      float64
	AskVolume      float64
	NetVolume      float64 // AskVolume - BidVolume
	TotalVolume    float64 // BidVolume + AskVolume
	BidCount       int64
	AskCount       int64
	TotalCount     int64
	BidBrokerCount int64
	AskBrokerCount int64
}

// StockPriceLevel is one row of the consolidated ALL_STOCK file; identical to
// PriceLevel with the stock code explicit.
type StockPriceLevel struct {
	StockCode      string
	Price          float64
	BidVolume      float64
	AskVolume      float64
	NetVolume      float64
	TotalVolume    float64
	BidCount       int64
	AskCount       int64
	TotalCount     int64
	BidBrokerCount int64
	AskBrokerCount int64
}

// BrokerSummary is one row of a per-emiten broker summary file: one broker's
// buyer-side and seller-side totals within a single stock.
//
// Average prices are 0 when the corresponding volume is 0. Net figures are
// buyer minus seller.
type BrokerSummary struct {
	BrokerCode     string
	BuyerVolume    float64
	BuyerValue     float64
	BuyerAvgPrice  float64
	SellerVolume   float64
	SellerValue    float64
	SellerAvgPrice float64
	NetBuyVolume   float64
	NetBuyValue    float64
}

// BrokerTransaction is one row of a per-broker transaction file: one stock
// the broker touched that day, with combined figures across both sides.
type BrokerTransaction struct {
	StockCode        string
	BuyerVolume      float64
	BuyerValue       float64
	BuyerAvgPrice    float64
	SellerVolume     float64
	SellerValue      float64
	SellerAvgPrice   float64
	NetBuyVolume     float64
	NetBuyValue      float64
	TransactionCount int64
	AvgPrice         float64 // combined value / combined volume
}

// BrokerDetail is one row of the single cross-stock detailed broker summary:
// one broker's totals over every stock, with per-side frequencies.
type BrokerDetail struct {
	BrokerCode      string
	BuyerVolume     float64
	BuyerValue      float64
	BuyerAvgPrice   float64
	BuyerFrequency  int64
	SellerVolume    float64
	SellerValue     float64
	SellerAvgPrice  float64
	SellerFrequency int64
	NetBuyVolume    float64
	NetBuyValue     float64
}

// TopBroker is one row of the comprehensive top-broker ranking, sorted
// descending by TotalValue.
type TopBroker struct {
	BrokerCode      string
	TotalVolume     float64
	TotalValue      float64
	TotalFrequency  int64
	BuyerVolume     float64
	BuyerValue      float64
	BuyerFrequency  int64
	SellerVolume    float64
	SellerValue     float64
	SellerFrequency int64
	NetBuyVolume    float64
	NetBuyValue     float64
}
