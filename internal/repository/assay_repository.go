package repository

import (
	"context"
	"errors"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssayRepository handles assay and measurement persistence. Writes that
// touch measurements also refresh the parent job card aggregates inside
// the same transaction.
type AssayRepository struct {
	db *gorm.DB
}

func NewAssayRepository(db *gorm.DB) *AssayRepository {
	return &AssayRepository{db: db}
}

// FindByID looks up an assay with its measurements.
func (r *AssayRepository) FindByID(ctx context.Context, id string) (*entity.Assay, error) {
	var assay entity.Assay
	err := r.db.WithContext(ctx).
		Preload("Measurements", func(db *gorm.DB) *gorm.DB {
			return db.Order("piece_index ASC")
		}).
		Where("id = ?", id).
		First(&assay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assay, nil
}

// ListByJobCard returns all assays of a job card, oldest first.
func (r *AssayRepository) ListByJobCard(ctx context.Context, jobCardID string) ([]entity.Assay, error) {
	var assays []entity.Assay
	err := r.db.WithContext(ctx).
		Preload("Measurements", func(db *gorm.DB) *gorm.DB {
			return db.Order("piece_index ASC")
		}).
		Where("job_card_id = ?", jobCardID).
		Order("created_at ASC").
		Find(&assays).Error
	return assays, err
}

// CreateWithMeasurements inserts an assay and its measurements and rolls
// the new totals up onto the job card, all in one transaction.
func (r *AssayRepository) CreateWithMeasurements(ctx context.Context, assay *entity.Assay, measurements []entity.Measurement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assay).Error; err != nil {
			return err
		}
		for i := range measurements {
			measurements[i].AssayID = assay.ID
			if measurements[i].ID == "" {
				measurements[i].ID = generateID()
			}
		}
		if len(measurements) > 0 {
			if err := tx.Create(&measurements).Error; err != nil {
				return err
			}
		}
		return rollupJobCard(tx, assay.JobCardID)
	})
}

// Update saves the assay header and its recomputed totals, then refreshes
// the job card aggregates.
func (r *AssayRepository) Update(ctx context.Context, assay *entity.Assay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(assay).Error; err != nil {
			return err
		}
		return rollupJobCard(tx, assay.JobCardID)
	})
}

// Delete removes an assay and its measurements and refreshes the job card.
func (r *AssayRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assay entity.Assay
		if err := tx.Where("id = ?", id).First(&assay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("assay_id = ?", id).Delete(&entity.Measurement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&entity.Assay{}).Error; err != nil {
			return err
		}
		return rollupJobCard(tx, assay.JobCardID)
	})
}

// AddMeasurement appends one measurement and writes the recomputed assay
// totals, then refreshes the job card.
func (r *AssayRepository) AddMeasurement(ctx context.Context, assay *entity.Assay, m *entity.Measurement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ID == "" {
			m.ID = generateID()
		}
		m.AssayID = assay.ID
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(assay).Error; err != nil {
			return err
		}
		return rollupJobCard(tx, assay.JobCardID)
	})
}

// DeleteMeasurement removes one measurement and writes the recomputed
// assay totals, then refreshes the job card.
func (r *AssayRepository) DeleteMeasurement(ctx context.Context, assay *entity.Assay, measurementID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND assay_id = ?", measurementID, assay.ID).Delete(&entity.Measurement{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Omit(clause.Associations).Save(assay).Error; err != nil {
			return err
		}
		return rollupJobCard(tx, assay.JobCardID)
	})
}

// rollupJobCard recomputes the job card aggregate columns from the stored
// assays and measurements. A card with at least one assay moves to
// completed unless it is already paid.
func rollupJobCard(tx *gorm.DB, jobCardID string) error {
	totals := struct {
		AssayCount  int64
		GrossWeight float64
		GoldOz      float64
		SilverOz    float64
		GoldUsd     float64
		SilverUsd   float64
		CombinedUsd float64
		Ghs         float64
	}{}

	err := tx.Model(&entity.Assay{}).
		Select(`COUNT(*) AS assay_count,
			COALESCE(SUM(total_net_gold_weight_oz), 0) AS gold_oz,
			COALESCE(SUM(total_net_silver_weight_oz), 0) AS silver_oz,
			COALESCE(SUM(total_gold_value_usd), 0) AS gold_usd,
			COALESCE(SUM(total_silver_value_usd), 0) AS silver_usd,
			COALESCE(SUM(total_combined_value_usd), 0) AS combined_usd,
			COALESCE(SUM(total_value_ghs), 0) AS ghs`).
		Where("job_card_id = ?", jobCardID).
		Scan(&totals).Error
	if err != nil {
		return err
	}

	err = tx.Table("measurements m").
		Select("COALESCE(SUM(m.gross_weight), 0)").
		Joins("JOIN assays a ON a.id = m.assay_id").
		Where("a.job_card_id = ?", jobCardID).
		Scan(&totals.GrossWeight).Error
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"total_gross_weight":         totals.GrossWeight,
		"total_net_gold_weight_oz":   totals.GoldOz,
		"total_net_silver_weight_oz": totals.SilverOz,
		"total_gold_value_usd":       totals.GoldUsd,
		"total_silver_value_usd":     totals.SilverUsd,
		"total_combined_value_usd":   totals.CombinedUsd,
		"total_value_ghs":            totals.Ghs,
	}

	if err := tx.Model(&entity.JobCard{}).Where("id = ?", jobCardID).Updates(updates).Error; err != nil {
		return err
	}

	if totals.AssayCount > 0 {
		return tx.Model(&entity.JobCard{}).
			Where("id = ? AND status NOT IN ?", jobCardID, []string{entity.JobCardStatusPaid, entity.JobCardStatusRejected}).
			Update("status", entity.JobCardStatusCompleted).Error
	}
	return tx.Model(&entity.JobCard{}).
		Where("id = ? AND status = ?", jobCardID, entity.JobCardStatusCompleted).
		Update("status", entity.JobCardStatusPending).Error
}
