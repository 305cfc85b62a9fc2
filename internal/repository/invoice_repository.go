package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"gorm.io/gorm"
)

// InvoiceRepository handles invoice persistence.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// FindByID looks up an invoice with its job card.
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("JobCard").
		Preload("JobCard.Exporter").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber looks up an invoice by its invoice number.
func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("JobCard").
		Where("number = ?", number).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// ListByJobCard returns all invoices of a job card, newest first.
func (r *InvoiceRepository) ListByJobCard(ctx context.Context, jobCardID string) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("job_card_id = ?", jobCardID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// List returns a page of invoices with optional filters.
func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if jobCardID, ok := filters["job_card_id"].(string); ok && jobCardID != "" {
		query = query.Where("job_card_id = ?", jobCardID)
	}
	if number, ok := filters["number"].(string); ok && number != "" {
		query = query.Where("number ILIKE ?", "%"+number+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("JobCard").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&invoices).Error

	return invoices, total, err
}

// Create inserts a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// MarkPaid flips the invoice to paid and moves the job card to paid in
// one transaction. Returns ErrNotFound when the invoice is missing and
// an error when it is already paid.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if invoice.Status == entity.InvoiceStatusPaid {
			return fmt.Errorf("invoice %s already paid", invoice.Number)
		}
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaidAt = &paidAt
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&entity.JobCard{}).
			Where("id = ?", invoice.JobCardID).
			Update("status", entity.JobCardStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GenerateNumber allocates the next invoice number.
func (r *InvoiceRepository) GenerateNumber(ctx context.Context) (string, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('invoice_number_seq')").Scan(&seq).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", seq), nil
}

// SumByStatus returns the count of invoices in a status and their summed
// grand totals in GHS.
func (r *InvoiceRepository) SumByStatus(ctx context.Context, status string, since time.Time) (count int64, totalGhs float64, err error) {
	row := struct {
		Count int64
		Total float64
	}{}
	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(grand_total), 0) AS total")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Count, row.Total, nil
}
