package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobCardRepository handles job card persistence.
type JobCardRepository struct {
	db *gorm.DB
}

func NewJobCardRepository(db *gorm.DB) *JobCardRepository {
	return &JobCardRepository{db: db}
}

// FindByID looks up a job card with its exporter, assays and invoices.
func (r *JobCardRepository) FindByID(ctx context.Context, id string) (*entity.JobCard, error) {
	var card entity.JobCard
	err := r.db.WithContext(ctx).
		Preload("Exporter").
		Preload("Assays", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Assays.Measurements", func(db *gorm.DB) *gorm.DB {
			return db.Order("piece_index ASC")
		}).
		Preload("Invoices").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByCode looks up a job card by its human readable code.
func (r *JobCardRepository) FindByCode(ctx context.Context, code string) (*entity.JobCard, error) {
	var card entity.JobCard
	err := r.db.WithContext(ctx).
		Preload("Exporter").
		Where("code = ? AND deleted_at IS NULL", code).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// Create inserts a new job card.
func (r *JobCardRepository) Create(ctx context.Context, card *entity.JobCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Update saves all fields of a job card. Associations are written by
// their own repositories.
func (r *JobCardRepository) Update(ctx context.Context, card *entity.JobCard) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error
}

// Delete soft deletes a job card.
func (r *JobCardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.JobCard{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List returns a page of job cards with optional filters.
func (r *JobCardRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.JobCard, int64, error) {
	var cards []entity.JobCard
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.JobCard{}).Where("job_cards.deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("code ILIKE ? OR reference ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if exporterID, ok := filters["exporter_id"].(string); ok && exporterID != "" {
		query = query.Where("exporter_id = ?", exporterID)
	}
	if scale, ok := filters["scale"].(string); ok && scale != "" {
		query = query.Where("scale = ?", scale)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if from, ok := filters["received_from"].(time.Time); ok && !from.IsZero() {
		query = query.Where("received_date >= ?", from)
	}
	if to, ok := filters["received_to"].(time.Time); ok && !to.IsZero() {
		query = query.Where("received_date <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Exporter").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&cards).Error

	return cards, total, err
}

// ListForReport returns job cards created since a cutoff, capped at limit rows.
func (r *JobCardRepository) ListForReport(ctx context.Context, since time.Time, limit int) ([]entity.JobCard, error) {
	var cards []entity.JobCard
	query := r.db.WithContext(ctx).
		Preload("Exporter").
		Preload("Assays").
		Where("deleted_at IS NULL")
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}

// GenerateCode allocates the next job card code for a scale. Large and
// small scale intakes number independently.
func (r *JobCardRepository) GenerateCode(ctx context.Context, scale string) (string, error) {
	seqName := "job_card_ls_seq"
	prefix := "LS"
	if scale == entity.JobCardScaleSmall {
		seqName = "job_card_ss_seq"
		prefix = "SS"
	}
	var seq int64
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf("SELECT nextval('%s')", seqName)).Scan(&seq).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}

// CountByStatus returns the number of live job cards in the given status.
func (r *JobCardRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.JobCard{}).
		Where("deleted_at IS NULL")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// SumCompletedValues returns the summed USD and GHS values of job cards
// completed or paid since the cutoff.
func (r *JobCardRepository) SumCompletedValues(ctx context.Context, since time.Time) (usd, ghs float64, err error) {
	row := struct {
		Usd float64
		Ghs float64
	}{}
	query := r.db.WithContext(ctx).
		Model(&entity.JobCard{}).
		Select("COALESCE(SUM(total_combined_value_usd), 0) AS usd, COALESCE(SUM(total_value_ghs), 0) AS ghs").
		Where("deleted_at IS NULL AND status IN ?", []string{entity.JobCardStatusCompleted, entity.JobCardStatusPaid})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Usd, row.Ghs, nil
}
