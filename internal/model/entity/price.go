package entity

import (
	"time"
)

// DailyPrice holds the commodity spot prices and exchange rate used for
// valuations on a given day. One row per calendar date.
type DailyPrice struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Date           time.Time `json:"date" gorm:"type:date;not null;uniqueIndex"`
	GoldPriceUsd   float64   `json:"gold_price_usd"`
	SilverPriceUsd float64   `json:"silver_price_usd"`
	ExchangeRate   float64   `json:"exchange_rate"`
	Source         string    `json:"source" gorm:"size:32;not null;default:manual"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DailyPrice) TableName() string {
	return "daily_prices"
}

// DailyPrice sources
const (
	PriceSourceManual = "manual"
	PriceSourceFeed   = "feed"
)
