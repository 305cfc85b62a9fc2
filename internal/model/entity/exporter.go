package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONB maps to the PostgreSQL jsonb column type.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Exporter is a registered exporting business entity.
type Exporter struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:32"`
	Code                string     `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name                string     `json:"name" gorm:"size:128;not null"`
	Type                string     `json:"type" gorm:"size:16;not null;default:gold"`
	AuthorizedSignatory string     `json:"authorized_signatory" gorm:"size:128"`
	Email               string     `json:"email" gorm:"size:128"`
	Phone               string     `json:"phone" gorm:"size:32"`
	ContactInfo         JSONB      `json:"contact_info" gorm:"type:jsonb"`
	CreatedBy           string     `json:"created_by" gorm:"size:32"`
	UpdatedBy           string     `json:"updated_by" gorm:"size:32"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	DeletedAt           *time.Time `json:"deleted_at" gorm:"index"`

	JobCards []JobCard `json:"job_cards,omitempty" gorm:"foreignKey:ExporterID"`
}

func (Exporter) TableName() string {
	return "exporters"
}

// ExporterType values
const (
	ExporterTypeSmallScale = "small_scale"
	ExporterTypeLargeScale = "large_scale"
	ExporterTypeGold       = "gold"
	ExporterTypeOther      = "other"
)
