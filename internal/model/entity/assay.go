package entity

import (
	"time"
)

// Assay is a laboratory measurement batch for one job card. The pricing
// fields are a snapshot of the prices used at valuation time so stored
// totals stay reproducible even after daily prices change.
type Assay struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	JobCardID      string    `json:"job_card_id" gorm:"size:32;not null;index"`
	Method         string    `json:"method" gorm:"size:16;not null"`
	DateOfAnalysis time.Time `json:"date_of_analysis"`
	Signatory      string    `json:"signatory" gorm:"size:128"`
	CustomsSealNo  string    `json:"customs_seal_no" gorm:"size:64"`
	SecuritySealNo string    `json:"security_seal_no" gorm:"size:64"`
	OtherSealNo    string    `json:"other_seal_no" gorm:"size:64"`

	// Pricing snapshot (USD per troy ounce, GHS per USD).
	GoldPriceUsd   float64 `json:"gold_price_usd"`
	SilverPriceUsd float64 `json:"silver_price_usd"`
	ExchangeRate   float64 `json:"exchange_rate"`
	PricePerOz     float64 `json:"price_per_oz"`

	// Aggregates recomputed whenever measurements change.
	TotalNetGoldWeightOz   float64 `json:"total_net_gold_weight_oz"`
	TotalNetSilverWeightOz float64 `json:"total_net_silver_weight_oz"`
	TotalGoldValueUsd      float64 `json:"total_gold_value_usd"`
	TotalSilverValueUsd    float64 `json:"total_silver_value_usd"`
	TotalCombinedValueUsd  float64 `json:"total_combined_value_usd"`
	TotalValueGhs          float64 `json:"total_value_ghs"`

	CreatedBy string    `json:"created_by" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobCard      *JobCard      `json:"job_card,omitempty" gorm:"foreignKey:JobCardID"`
	Measurements []Measurement `json:"measurements,omitempty" gorm:"foreignKey:AssayID"`
}

func (Assay) TableName() string {
	return "assays"
}

// AssayMethod values
const (
	AssayMethodXRay         = "X_RAY"
	AssayMethodWaterDensity = "WATER_DENSITY"
)

// Measurement is one physical piece (bar) within an assay batch. Net
// weights are nullable: when absent they are recomputed from the gross
// weight and the fineness percentage.
type Measurement struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	AssayID    string `json:"assay_id" gorm:"size:32;not null;index"`
	PieceIndex int    `json:"piece_index" gorm:"not null;default:1"`
	BarNumber  string `json:"bar_number" gorm:"size:64"`

	GrossWeight    float64  `json:"gross_weight"`
	Unit           string   `json:"unit" gorm:"size:8;not null;default:g"`
	GoldAssayPct   float64  `json:"gold_assay_pct"`
	SilverAssayPct float64  `json:"silver_assay_pct"`
	NetGoldWeight  *float64 `json:"net_gold_weight"`
	NetSilverWeight *float64 `json:"net_silver_weight"`

	CreatedAt time.Time `json:"created_at"`
}

func (Measurement) TableName() string {
	return "measurements"
}
