package entity

import (
	"time"
)

// JobCard is a per-shipment intake record for a gold/silver export.
type JobCard struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Code          string    `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Reference     string    `json:"reference" gorm:"size:64"`
	ExporterID    string    `json:"exporter_id" gorm:"size:32;not null;index"`
	Scale         string    `json:"scale" gorm:"size:16;not null;default:large_scale"`
	UnitOfMeasure string    `json:"unit_of_measure" gorm:"size:8;not null;default:g"`
	ReceivedDate  time.Time `json:"received_date"`
	Status        string    `json:"status" gorm:"size:16;not null;default:pending"`
	Destination   string    `json:"destination" gorm:"size:128"`
	Notes         string    `json:"notes" gorm:"type:text"`

	// Aggregates rolled up from the assays of this job card.
	TotalGrossWeight      *float64 `json:"total_gross_weight"`
	TotalNetGoldWeightOz  *float64 `json:"total_net_gold_weight_oz"`
	TotalNetSilverWeightOz *float64 `json:"total_net_silver_weight_oz"`
	TotalGoldValueUsd     *float64 `json:"total_gold_value_usd"`
	TotalSilverValueUsd   *float64 `json:"total_silver_value_usd"`
	TotalCombinedValueUsd *float64 `json:"total_combined_value_usd"`
	TotalValueGhs         *float64 `json:"total_value_ghs"`

	CreatedBy string     `json:"created_by" gorm:"size:32;not null"`
	UpdatedBy string     `json:"updated_by" gorm:"size:32"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Exporter *Exporter `json:"exporter,omitempty" gorm:"foreignKey:ExporterID"`
	Assays   []Assay   `json:"assays,omitempty" gorm:"foreignKey:JobCardID"`
	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:JobCardID"`
}

func (JobCard) TableName() string {
	return "job_cards"
}

// JobCardStatus values
const (
	JobCardStatusPending    = "pending"
	JobCardStatusInProgress = "in_progress"
	JobCardStatusCompleted  = "completed"
	JobCardStatusPaid       = "paid"
	JobCardStatusRejected   = "rejected"
)

// JobCardScale values
const (
	JobCardScaleLarge = "large_scale"
	JobCardScaleSmall = "small_scale"
)

// UnitOfMeasure values accepted at intake
const (
	UnitGrams     = "g"
	UnitKilograms = "kg"
)

// HasAssay reports whether at least one assay batch exists for this card.
// Assays must be preloaded.
func (j *JobCard) HasAssay() bool {
	return len(j.Assays) > 0
}

// HasPaidInvoice reports whether a paid invoice exists for this card.
// Invoices must be preloaded.
func (j *JobCard) HasPaidInvoice() bool {
	for _, inv := range j.Invoices {
		if inv.Status == InvoiceStatusPaid {
			return true
		}
	}
	return false
}
