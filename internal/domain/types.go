// Package domain defines the value types shared across the uscalendar
// packages.
package domain

// Market identifies an exchange calendar. Only MarketUS has rules.
type Market string

const (
	MarketUS Market = "us"
)

// TradingDay is the persisted and wire form of a classified date.
type TradingDay struct {
	Market  Market `json:"market"`
	Date    string `json:"date"` // YYYY-MM-DD
	Open    bool   `json:"open"`
	Weekend bool   `json:"weekend"`
	Holiday string `json:"holiday,omitempty"`
}
