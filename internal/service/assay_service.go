package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/krys2fa/gbrapp-sub001/internal/valuation"
)

// AssayService captures laboratory measurements and values them against
// the daily prices.
type AssayService struct {
	repo        *repository.AssayRepository
	jobCardRepo *repository.JobCardRepository
	priceSvc    *PriceService
}

func NewAssayService(repo *repository.AssayRepository, jobCardRepo *repository.JobCardRepository, priceSvc *PriceService) *AssayService {
	return &AssayService{repo: repo, jobCardRepo: jobCardRepo, priceSvc: priceSvc}
}

// MeasurementInput is one physical piece in an assay submission.
type MeasurementInput struct {
	PieceIndex      int      `json:"piece_index"`
	BarNumber       string   `json:"bar_number"`
	GrossWeight     float64  `json:"gross_weight" binding:"required,gt=0"`
	Unit            string   `json:"unit" binding:"omitempty,oneof=g kg lb lbs"`
	GoldAssayPct    float64  `json:"gold_assay_pct" binding:"gte=0,lte=100"`
	SilverAssayPct  float64  `json:"silver_assay_pct" binding:"gte=0,lte=100"`
	NetGoldWeight   *float64 `json:"net_gold_weight"`
	NetSilverWeight *float64 `json:"net_silver_weight"`
}

// CreateAssayRequest records a measurement batch for a job card. When
// the price override fields are zero the daily prices for the analysis
// date are used.
type CreateAssayRequest struct {
	Method         string             `json:"method" binding:"required,oneof=X_RAY WATER_DENSITY"`
	DateOfAnalysis time.Time          `json:"date_of_analysis"`
	Signatory      string             `json:"signatory"`
	CustomsSealNo  string             `json:"customs_seal_no"`
	SecuritySealNo string             `json:"security_seal_no"`
	OtherSealNo    string             `json:"other_seal_no"`
	GoldPriceUsd   float64            `json:"gold_price_usd" binding:"gte=0"`
	SilverPriceUsd float64            `json:"silver_price_usd" binding:"gte=0"`
	ExchangeRate   float64            `json:"exchange_rate" binding:"gte=0"`
	Measurements   []MeasurementInput `json:"measurements" binding:"required,min=1,dive"`
}

// AddMeasurementRequest appends one piece to an existing assay.
type AddMeasurementRequest struct {
	MeasurementInput
}

// ListByJobCard returns all assays of a job card.
func (s *AssayService) ListByJobCard(ctx context.Context, jobCardID string) ([]entity.Assay, error) {
	if _, err := s.jobCardRepo.FindByID(ctx, jobCardID); err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}
	return s.repo.ListByJobCard(ctx, jobCardID)
}

// Get returns one assay with its measurements.
func (s *AssayService) Get(ctx context.Context, id string) (*entity.Assay, error) {
	assay, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find assay: %w", err)
	}
	return assay, nil
}

// Create records a measurement batch, values it against the pricing
// snapshot and rolls the totals up onto the job card.
func (s *AssayService) Create(ctx context.Context, jobCardID, userID string, req *CreateAssayRequest) (*entity.Assay, error) {
	card, err := s.jobCardRepo.FindByID(ctx, jobCardID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("job card not found")
		}
		return nil, fmt.Errorf("find job card: %w", err)
	}
	if card.HasPaidInvoice() {
		return nil, fmt.Errorf("cannot add assays to a paid job card")
	}

	analysisDate := req.DateOfAnalysis
	if analysisDate.IsZero() {
		analysisDate = time.Now()
	}

	pricing, err := s.resolvePricing(ctx, analysisDate, req)
	if err != nil {
		return nil, err
	}

	measurements := make([]entity.Measurement, len(req.Measurements))
	calcInputs := make([]valuation.Measurement, len(req.Measurements))
	now := time.Now()
	for i, m := range req.Measurements {
		pieceIndex := m.PieceIndex
		if pieceIndex == 0 {
			pieceIndex = i + 1
		}
		unit := m.Unit
		if unit == "" {
			unit = card.UnitOfMeasure
		}
		measurements[i] = entity.Measurement{
			PieceIndex:      pieceIndex,
			BarNumber:       m.BarNumber,
			GrossWeight:     m.GrossWeight,
			Unit:            unit,
			GoldAssayPct:    m.GoldAssayPct,
			SilverAssayPct:  m.SilverAssayPct,
			NetGoldWeight:   m.NetGoldWeight,
			NetSilverWeight: m.NetSilverWeight,
			CreatedAt:       now,
		}
		calcInputs[i] = valuation.Measurement{
			GrossWeight:     m.GrossWeight,
			Unit:            unit,
			GoldAssayPct:    m.GoldAssayPct,
			SilverAssayPct:  m.SilverAssayPct,
			NetGoldWeight:   m.NetGoldWeight,
			NetSilverWeight: m.NetSilverWeight,
		}
	}

	result := valuation.Compute(calcInputs, pricing)

	assay := &entity.Assay{
		ID:             generateID(),
		JobCardID:      jobCardID,
		Method:         req.Method,
		DateOfAnalysis: analysisDate,
		Signatory:      req.Signatory,
		CustomsSealNo:  req.CustomsSealNo,
		SecuritySealNo: req.SecuritySealNo,
		OtherSealNo:    req.OtherSealNo,

		GoldPriceUsd:   pricing.GoldPriceUsd,
		SilverPriceUsd: pricing.SilverPriceUsd,
		ExchangeRate:   pricing.ExchangeRate,
		PricePerOz:     pricing.GoldPriceUsd,

		TotalNetGoldWeightOz:   result.Gold.Ounces,
		TotalNetSilverWeightOz: result.Silver.Ounces,
		TotalGoldValueUsd:      result.Gold.UsdValue,
		TotalSilverValueUsd:    result.Silver.UsdValue,
		TotalCombinedValueUsd:  result.CombinedUsd,
		TotalValueGhs:          result.CombinedGhs,

		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithMeasurements(ctx, assay, measurements); err != nil {
		return nil, fmt.Errorf("create assay: %w", err)
	}

	return s.repo.FindByID(ctx, assay.ID)
}

// Delete removes an assay and recomputes the job card totals.
func (s *AssayService) Delete(ctx context.Context, id string) error {
	assay, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find assay: %w", err)
	}
	card, err := s.jobCardRepo.FindByID(ctx, assay.JobCardID)
	if err != nil {
		return fmt.Errorf("find job card: %w", err)
	}
	if card.HasPaidInvoice() {
		return fmt.Errorf("cannot remove assays from a paid job card")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete assay: %w", err)
	}
	return nil
}

// AddMeasurement appends one piece to an assay and revalues it against
// the stored pricing snapshot.
func (s *AssayService) AddMeasurement(ctx context.Context, assayID, userID string, req *AddMeasurementRequest) (*entity.Assay, error) {
	assay, err := s.repo.FindByID(ctx, assayID)
	if err != nil {
		return nil, fmt.Errorf("find assay: %w", err)
	}
	card, err := s.jobCardRepo.FindByID(ctx, assay.JobCardID)
	if err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}
	if card.HasPaidInvoice() {
		return nil, fmt.Errorf("cannot modify assays on a paid job card")
	}

	pieceIndex := req.PieceIndex
	if pieceIndex == 0 {
		pieceIndex = len(assay.Measurements) + 1
	}
	unit := req.Unit
	if unit == "" {
		unit = card.UnitOfMeasure
	}
	m := &entity.Measurement{
		PieceIndex:      pieceIndex,
		BarNumber:       req.BarNumber,
		GrossWeight:     req.GrossWeight,
		Unit:            unit,
		GoldAssayPct:    req.GoldAssayPct,
		SilverAssayPct:  req.SilverAssayPct,
		NetGoldWeight:   req.NetGoldWeight,
		NetSilverWeight: req.NetSilverWeight,
		CreatedAt:       time.Now(),
	}

	revalue(assay, append(assay.Measurements, *m))
	assay.UpdatedAt = time.Now()

	if err := s.repo.AddMeasurement(ctx, assay, m); err != nil {
		return nil, fmt.Errorf("add measurement: %w", err)
	}

	return s.repo.FindByID(ctx, assayID)
}

// DeleteMeasurement removes one piece and revalues the assay.
func (s *AssayService) DeleteMeasurement(ctx context.Context, assayID, measurementID string) (*entity.Assay, error) {
	assay, err := s.repo.FindByID(ctx, assayID)
	if err != nil {
		return nil, fmt.Errorf("find assay: %w", err)
	}
	card, err := s.jobCardRepo.FindByID(ctx, assay.JobCardID)
	if err != nil {
		return nil, fmt.Errorf("find job card: %w", err)
	}
	if card.HasPaidInvoice() {
		return nil, fmt.Errorf("cannot modify assays on a paid job card")
	}

	remaining := make([]entity.Measurement, 0, len(assay.Measurements))
	found := false
	for _, m := range assay.Measurements {
		if m.ID == measurementID {
			found = true
			continue
		}
		remaining = append(remaining, m)
	}
	if !found {
		return nil, fmt.Errorf("find measurement: %w", repository.ErrNotFound)
	}
	if len(remaining) == 0 {
		return nil, fmt.Errorf("an assay must keep at least one measurement; delete the assay instead")
	}

	revalue(assay, remaining)
	assay.UpdatedAt = time.Now()

	if err := s.repo.DeleteMeasurement(ctx, assay, measurementID); err != nil {
		return nil, fmt.Errorf("delete measurement: %w", err)
	}

	return s.repo.FindByID(ctx, assayID)
}

// resolvePricing builds the pricing snapshot: request overrides win,
// anything left zero falls back to the daily prices.
func (s *AssayService) resolvePricing(ctx context.Context, date time.Time, req *CreateAssayRequest) (valuation.Pricing, error) {
	pricing := valuation.Pricing{
		GoldPriceUsd:   req.GoldPriceUsd,
		SilverPriceUsd: req.SilverPriceUsd,
		ExchangeRate:   req.ExchangeRate,
	}
	if pricing.GoldPriceUsd > 0 && pricing.ExchangeRate > 0 {
		return pricing, nil
	}

	daily, err := s.priceSvc.GetForValuation(ctx, date)
	if err != nil {
		return valuation.Pricing{}, fmt.Errorf("resolve daily prices: %w", err)
	}
	if pricing.GoldPriceUsd == 0 {
		pricing.GoldPriceUsd = daily.GoldPriceUsd
	}
	if pricing.SilverPriceUsd == 0 {
		pricing.SilverPriceUsd = daily.SilverPriceUsd
	}
	if pricing.ExchangeRate == 0 {
		pricing.ExchangeRate = daily.ExchangeRate
	}
	return pricing, nil
}

// revalue recomputes the assay totals from a measurement set using the
// assay's stored pricing snapshot.
func revalue(assay *entity.Assay, measurements []entity.Measurement) {
	inputs := make([]valuation.Measurement, len(measurements))
	for i, m := range measurements {
		inputs[i] = valuation.Measurement{
			GrossWeight:     m.GrossWeight,
			Unit:            m.Unit,
			GoldAssayPct:    m.GoldAssayPct,
			SilverAssayPct:  m.SilverAssayPct,
			NetGoldWeight:   m.NetGoldWeight,
			NetSilverWeight: m.NetSilverWeight,
		}
	}
	result := valuation.Compute(inputs, valuation.Pricing{
		GoldPriceUsd:   assay.GoldPriceUsd,
		SilverPriceUsd: assay.SilverPriceUsd,
		ExchangeRate:   assay.ExchangeRate,
	})
	assay.TotalNetGoldWeightOz = result.Gold.Ounces
	assay.TotalNetSilverWeightOz = result.Silver.Ounces
	assay.TotalGoldValueUsd = result.Gold.UsdValue
	assay.TotalSilverValueUsd = result.Silver.UsdValue
	assay.TotalCombinedValueUsd = result.CombinedUsd
	assay.TotalValueGhs = result.CombinedGhs
}
