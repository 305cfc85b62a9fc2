package repository

import (
	"context"
	"errors"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceRepository handles daily price persistence.
type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// FindByDate looks up the price row for a calendar date.
func (r *PriceRepository) FindByDate(ctx context.Context, date time.Time) (*entity.DailyPrice, error) {
	var price entity.DailyPrice
	day := date.Truncate(24 * time.Hour)
	err := r.db.WithContext(ctx).
		Where("date = ?", day.Format("2006-01-02")).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindLatest returns the most recent price row.
func (r *PriceRepository) FindLatest(ctx context.Context) (*entity.DailyPrice, error) {
	var price entity.DailyPrice
	err := r.db.WithContext(ctx).
		Order("date DESC").
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// Upsert inserts the price row for its date, or overwrites the prices of
// an existing row for the same date.
func (r *PriceRepository) Upsert(ctx context.Context, price *entity.DailyPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gold_price_usd", "silver_price_usd", "exchange_rate", "source", "updated_at",
			}),
		}).
		Create(price).Error
}

// List returns price rows between two dates, newest first.
func (r *PriceRepository) List(ctx context.Context, from, to time.Time, limit int) ([]entity.DailyPrice, error) {
	var prices []entity.DailyPrice
	query := r.db.WithContext(ctx).Model(&entity.DailyPrice{})
	if !from.IsZero() {
		query = query.Where("date >= ?", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to.Format("2006-01-02"))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("date DESC").Find(&prices).Error
	return prices, err
}

// Delete removes the price row for a date.
func (r *PriceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DailyPrice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
