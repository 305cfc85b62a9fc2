package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
)

// ExporterService handles exporter registration.
type ExporterService struct {
	repo *repository.ExporterRepository
}

func NewExporterService(repo *repository.ExporterRepository) *ExporterService {
	return &ExporterService{repo: repo}
}

// CreateExporterRequest registers an exporting entity.
type CreateExporterRequest struct {
	Name                string                 `json:"name" binding:"required"`
	Type                string                 `json:"type" binding:"omitempty,oneof=small_scale large_scale gold other"`
	AuthorizedSignatory string                 `json:"authorized_signatory"`
	Email               string                 `json:"email" binding:"omitempty,email"`
	Phone               string                 `json:"phone"`
	ContactInfo         map[string]interface{} `json:"contact_info"`
}

// UpdateExporterRequest amends exporter details.
type UpdateExporterRequest struct {
	Name                string                 `json:"name"`
	Type                string                 `json:"type" binding:"omitempty,oneof=small_scale large_scale gold other"`
	AuthorizedSignatory string                 `json:"authorized_signatory"`
	Email               string                 `json:"email" binding:"omitempty,email"`
	Phone               string                 `json:"phone"`
	ContactInfo         map[string]interface{} `json:"contact_info"`
}

// ExporterListResult is one page of exporters.
type ExporterListResult struct {
	Items      []entity.Exporter `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// List returns a page of exporters.
func (s *ExporterService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ExporterListResult, error) {
	exporters, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list exporters: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ExporterListResult{
		Items:      exporters,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one exporter.
func (s *ExporterService) Get(ctx context.Context, id string) (*entity.Exporter, error) {
	exporter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find exporter: %w", err)
	}
	return exporter, nil
}

// Create registers a new exporter with a generated registration code.
func (s *ExporterService) Create(ctx context.Context, userID string, req *CreateExporterRequest) (*entity.Exporter, error) {
	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	exporterType := req.Type
	if exporterType == "" {
		exporterType = entity.ExporterTypeGold
	}

	now := time.Now()
	exporter := &entity.Exporter{
		ID:                  generateID(),
		Code:                code,
		Name:                req.Name,
		Type:                exporterType,
		AuthorizedSignatory: req.AuthorizedSignatory,
		Email:               req.Email,
		Phone:               req.Phone,
		ContactInfo:         entity.JSONB(req.ContactInfo),
		CreatedBy:           userID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, exporter); err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	return exporter, nil
}

// Update amends an exporter.
func (s *ExporterService) Update(ctx context.Context, id, userID string, req *UpdateExporterRequest) (*entity.Exporter, error) {
	exporter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find exporter: %w", err)
	}

	if req.Name != "" {
		exporter.Name = req.Name
	}
	if req.Type != "" {
		exporter.Type = req.Type
	}
	if req.AuthorizedSignatory != "" {
		exporter.AuthorizedSignatory = req.AuthorizedSignatory
	}
	if req.Email != "" {
		exporter.Email = req.Email
	}
	if req.Phone != "" {
		exporter.Phone = req.Phone
	}
	if req.ContactInfo != nil {
		exporter.ContactInfo = entity.JSONB(req.ContactInfo)
	}
	exporter.UpdatedBy = userID
	exporter.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, exporter); err != nil {
		return nil, fmt.Errorf("update exporter: %w", err)
	}

	return exporter, nil
}

// Delete soft deletes an exporter. Exporters with live job cards are
// kept to preserve the audit trail.
func (s *ExporterService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find exporter: %w", err)
	}

	count, err := s.repo.CountActiveJobCards(ctx, id)
	if err != nil {
		return fmt.Errorf("count job cards: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete exporter with %d active job cards", count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exporter: %w", err)
	}
	return nil
}
