package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billing document for one job card. All monetary columns
// are decimal so the levy chain carries no float rounding into storage;
// values are rounded to 2dp only at render time.
type Invoice struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	Number    string `json:"number" gorm:"size:32;not null;uniqueIndex"`
	JobCardID string `json:"job_card_id" gorm:"size:32;not null;index"`
	AssayID   string `json:"assay_id" gorm:"size:32;not null"`
	Currency  string `json:"currency" gorm:"size:8;not null;default:GHS"`

	// Valuation snapshot carried over from the assay.
	AssayUsdValue decimal.Decimal `json:"assay_usd_value" gorm:"type:numeric(18,4)"`
	AssayGhsValue decimal.Decimal `json:"assay_ghs_value" gorm:"type:numeric(18,4)"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate" gorm:"type:numeric(18,6)"`

	// Levy breakdown. Rate is the regulator's service-fee percentage.
	Rate           decimal.Decimal `json:"rate" gorm:"type:numeric(8,4)"`
	RateCharge     decimal.Decimal `json:"rate_charge" gorm:"type:numeric(18,4)"`
	TotalExclusive decimal.Decimal `json:"total_exclusive" gorm:"type:numeric(18,4)"`
	Nhil           decimal.Decimal `json:"nhil" gorm:"type:numeric(18,4)"`
	Getfund        decimal.Decimal `json:"getfund" gorm:"type:numeric(18,4)"`
	Covid          decimal.Decimal `json:"covid" gorm:"type:numeric(18,4)"`
	SubTotal       decimal.Decimal `json:"sub_total" gorm:"type:numeric(18,4)"`
	Vat            decimal.Decimal `json:"vat" gorm:"type:numeric(18,4)"`
	GrandTotal     decimal.Decimal `json:"grand_total" gorm:"type:numeric(18,4)"`

	Status    string     `json:"status" gorm:"size:16;not null;default:pending"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedBy string     `json:"created_by" gorm:"size:32;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	JobCard *JobCard `json:"job_card,omitempty" gorm:"foreignKey:JobCardID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceStatus values
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)
