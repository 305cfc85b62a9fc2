package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/krys2fa/gbrapp-sub001/internal/valuation"
	"github.com/shopspring/decimal"
)

// InvoiceService generates levy invoices from valued job cards.
type InvoiceService struct {
	repo        *repository.InvoiceRepository
	jobCardRepo *repository.JobCardRepository
	assayRepo   *repository.AssayRepository
	cfg         *config.Config
}

func NewInvoiceService(repo *repository.InvoiceRepository, jobCardRepo *repository.JobCardRepository, assayRepo *repository.AssayRepository, cfg *config.Config) *InvoiceService {
	return &InvoiceService{repo: repo, jobCardRepo: jobCardRepo, assayRepo: assayRepo, cfg: cfg}
}

// CreateInvoiceRequest raises an invoice for a job card. A zero rate
// falls back to the configured service rate percentage.
type CreateInvoiceRequest struct {
	JobCardID   string  `json:"job_card_id" binding:"required"`
	AssayID     string  `json:"assay_id"`
	RatePercent float64 `json:"rate_percent" binding:"gte=0"`
}

// InvoiceListResult is one page of invoices.
type InvoiceListResult struct {
	Items      []entity.Invoice `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// List returns a page of invoices.
func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*InvoiceListResult, error) {
	invoices, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &InvoiceListResult{
		Items:      invoices,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one invoice.
func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return invoice, nil
}

// Create raises an invoice on a valued job card. The levy chain is
// computed from the card's GHS value at the configured or requested
// service rate.
func (s *InvoiceService) Create(ctx context.Context, userID string, req *CreateInvoiceRequest) (*entity.Invoice, error) {
	card, err := s.jobCardRepo.FindByID(ctx, req.JobCardID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("job card not found")
		}
		return nil, fmt.Errorf("find job card: %w", err)
	}
	if !card.HasAssay() {
		return nil, fmt.Errorf("job card has no recorded assay to invoice")
	}
	if card.HasPaidInvoice() {
		return nil, fmt.Errorf("job card already has a paid invoice")
	}

	// The invoice references one assay for its pricing snapshot:
	// either the requested one or the latest on the card.
	assayID := req.AssayID
	var exchangeRate float64
	if assayID != "" {
		assay, err := s.assayRepo.FindByID(ctx, assayID)
		if err != nil || assay.JobCardID != card.ID {
			return nil, fmt.Errorf("assay not found on this job card")
		}
		exchangeRate = assay.ExchangeRate
	} else {
		latest := card.Assays[len(card.Assays)-1]
		assayID = latest.ID
		exchangeRate = latest.ExchangeRate
	}

	ratePercent := req.RatePercent
	if ratePercent == 0 {
		ratePercent = s.cfg.Billing.ServiceRatePercent
	}

	var usdValue, ghsValue float64
	if card.TotalCombinedValueUsd != nil {
		usdValue = *card.TotalCombinedValueUsd
	}
	if card.TotalValueGhs != nil {
		ghsValue = *card.TotalValueGhs
	}
	if ghsValue == 0 {
		return nil, fmt.Errorf("job card has no GHS valuation to invoice")
	}

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	assayGhs := decimal.NewFromFloat(ghsValue)
	rate := decimal.NewFromFloat(ratePercent)
	breakdown := valuation.ComputeLevies(assayGhs, rate)

	now := time.Now()
	invoice := &entity.Invoice{
		ID:        generateID(),
		Number:    number,
		JobCardID: card.ID,
		AssayID:   assayID,
		Currency:  "GHS",

		AssayUsdValue: decimal.NewFromFloat(usdValue),
		AssayGhsValue: assayGhs,
		ExchangeRate:  decimal.NewFromFloat(exchangeRate),

		Rate:           rate,
		RateCharge:     breakdown.RateCharge,
		TotalExclusive: breakdown.TotalExclusive,
		Nhil:           breakdown.Nhil,
		Getfund:        breakdown.Getfund,
		Covid:          breakdown.Covid,
		SubTotal:       breakdown.SubTotal,
		Vat:            breakdown.Vat,
		GrandTotal:     breakdown.GrandTotal,

		Status:    entity.InvoiceStatusPending,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	return s.repo.FindByID(ctx, invoice.ID)
}

// ListByJobCard returns all invoices raised on a job card.
func (s *InvoiceService) ListByJobCard(ctx context.Context, jobCardID string) ([]entity.Invoice, error) {
	if _, err := s.jobCardRepo.FindByID(ctx, jobCardID); err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}
	return s.repo.ListByJobCard(ctx, jobCardID)
}

// MarkPaid settles an invoice and moves its job card to paid.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := s.repo.MarkPaid(ctx, id, time.Now())
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("invoice not found")
		}
		return nil, err
	}
	return invoice, nil
}
