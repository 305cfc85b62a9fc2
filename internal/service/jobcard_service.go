package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
)

// JobCardService handles shipment intake records.
type JobCardService struct {
	repo         *repository.JobCardRepository
	exporterRepo *repository.ExporterRepository
}

func NewJobCardService(repo *repository.JobCardRepository, exporterRepo *repository.ExporterRepository) *JobCardService {
	return &JobCardService{repo: repo, exporterRepo: exporterRepo}
}

// CreateJobCardRequest opens a new intake record.
type CreateJobCardRequest struct {
	ExporterID    string    `json:"exporter_id" binding:"required"`
	Scale         string    `json:"scale" binding:"omitempty,oneof=large_scale small_scale"`
	Reference     string    `json:"reference"`
	UnitOfMeasure string    `json:"unit_of_measure" binding:"omitempty,oneof=g kg"`
	ReceivedDate  time.Time `json:"received_date"`
	Destination   string    `json:"destination"`
	Notes         string    `json:"notes"`
}

// UpdateJobCardRequest amends an intake record before assay.
type UpdateJobCardRequest struct {
	ExporterID    string     `json:"exporter_id"`
	Reference     string     `json:"reference"`
	UnitOfMeasure string     `json:"unit_of_measure" binding:"omitempty,oneof=g kg"`
	ReceivedDate  *time.Time `json:"received_date"`
	Destination   string     `json:"destination"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status" binding:"omitempty,oneof=pending in_progress rejected"`
}

// JobCardListResult is one page of job cards.
type JobCardListResult struct {
	Items      []entity.JobCard `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// List returns a page of job cards.
func (s *JobCardService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*JobCardListResult, error) {
	cards, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list job cards: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &JobCardListResult{
		Items:      cards,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one job card with its assays and invoices.
func (s *JobCardService) Get(ctx context.Context, id string) (*entity.JobCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}
	return card, nil
}

// Create opens a new job card with a generated code. Large and small
// scale intakes number independently.
func (s *JobCardService) Create(ctx context.Context, userID string, req *CreateJobCardRequest) (*entity.JobCard, error) {
	if _, err := s.exporterRepo.FindByID(ctx, req.ExporterID); err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("exporter not found")
		}
		return nil, fmt.Errorf("find exporter: %w", err)
	}

	scale := req.Scale
	if scale == "" {
		scale = entity.JobCardScaleLarge
	}

	code, err := s.repo.GenerateCode(ctx, scale)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	unit := req.UnitOfMeasure
	if unit == "" {
		unit = entity.UnitGrams
	}

	received := req.ReceivedDate
	if received.IsZero() {
		received = time.Now()
	}

	now := time.Now()
	card := &entity.JobCard{
		ID:            generateID(),
		Code:          code,
		Reference:     req.Reference,
		ExporterID:    req.ExporterID,
		Scale:         scale,
		UnitOfMeasure: unit,
		ReceivedDate:  received,
		Status:        entity.JobCardStatusPending,
		Destination:   req.Destination,
		Notes:         req.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create job card: %w", err)
	}

	return s.repo.FindByID(ctx, card.ID)
}

// Update amends a job card. Cards with recorded assays or a paid invoice
// are immutable.
func (s *JobCardService) Update(ctx context.Context, id, userID string, req *UpdateJobCardRequest) (*entity.JobCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}

	if card.HasPaidInvoice() {
		return nil, fmt.Errorf("cannot modify job card with a paid invoice")
	}
	if card.HasAssay() {
		return nil, fmt.Errorf("cannot modify job card with recorded assays")
	}

	if req.ExporterID != "" && req.ExporterID != card.ExporterID {
		if _, err := s.exporterRepo.FindByID(ctx, req.ExporterID); err != nil {
			if err == repository.ErrNotFound {
				return nil, fmt.Errorf("exporter not found")
			}
			return nil, fmt.Errorf("find exporter: %w", err)
		}
		card.ExporterID = req.ExporterID
	}
	if req.Reference != "" {
		card.Reference = req.Reference
	}
	if req.UnitOfMeasure != "" {
		card.UnitOfMeasure = req.UnitOfMeasure
	}
	if req.ReceivedDate != nil && !req.ReceivedDate.IsZero() {
		card.ReceivedDate = *req.ReceivedDate
	}
	if req.Destination != "" {
		card.Destination = req.Destination
	}
	if req.Notes != "" {
		card.Notes = req.Notes
	}
	if req.Status != "" {
		card.Status = req.Status
	}
	card.UpdatedBy = userID
	card.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("update job card: %w", err)
	}

	return s.repo.FindByID(ctx, card.ID)
}

// Delete soft deletes a job card. Cards with recorded assays or a paid
// invoice cannot be removed.
func (s *JobCardService) Delete(ctx context.Context, id string) error {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find job card: %w", err)
	}

	if card.HasPaidInvoice() {
		return fmt.Errorf("cannot delete job card with a paid invoice")
	}
	if card.HasAssay() {
		return fmt.Errorf("cannot delete job card with recorded assays")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job card: %w", err)
	}
	return nil
}
