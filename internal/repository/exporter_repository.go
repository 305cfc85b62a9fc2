package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"gorm.io/gorm"
)

// ExporterRepository handles exporter persistence.
type ExporterRepository struct {
	db *gorm.DB
}

func NewExporterRepository(db *gorm.DB) *ExporterRepository {
	return &ExporterRepository{db: db}
}

// FindByID looks up an exporter by id.
func (r *ExporterRepository) FindByID(ctx context.Context, id string) (*entity.Exporter, error) {
	var exporter entity.Exporter
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&exporter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exporter, nil
}

// FindByCode looks up an exporter by its registration code.
func (r *ExporterRepository) FindByCode(ctx context.Context, code string) (*entity.Exporter, error) {
	var exporter entity.Exporter
	err := r.db.WithContext(ctx).
		Where("code = ? AND deleted_at IS NULL", code).
		First(&exporter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exporter, nil
}

// Create inserts a new exporter.
func (r *ExporterRepository) Create(ctx context.Context, exporter *entity.Exporter) error {
	return r.db.WithContext(ctx).Create(exporter).Error
}

// Update saves all fields of an exporter.
func (r *ExporterRepository) Update(ctx context.Context, exporter *entity.Exporter) error {
	return r.db.WithContext(ctx).Save(exporter).Error
}

// Delete soft deletes an exporter.
func (r *ExporterRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Exporter{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List returns a page of exporters with optional filters.
func (r *ExporterRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Exporter, int64, error) {
	var exporters []entity.Exporter
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Exporter{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if exporterType, ok := filters["type"].(string); ok && exporterType != "" {
		query = query.Where("type = ?", exporterType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&exporters).Error

	return exporters, total, err
}

// CountActiveJobCards returns the number of live job cards referencing the exporter.
func (r *ExporterRepository) CountActiveJobCards(ctx context.Context, exporterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.JobCard{}).
		Where("exporter_id = ? AND deleted_at IS NULL", exporterID).
		Count(&count).Error
	return count, err
}

// GenerateCode allocates the next exporter registration code.
func (r *ExporterRepository) GenerateCode(ctx context.Context) (string, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('exporter_code_seq')").Scan(&seq).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EXP-%06d", seq), nil
}
