package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/report"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
)

const dashboardCacheTTL = 60 * time.Second

// ReportService builds revenue reports and the dashboard from the
// stored job cards and invoices.
type ReportService struct {
	jobCardRepo  *repository.JobCardRepository
	invoiceRepo  *repository.InvoiceRepository
	exporterRepo *repository.ExporterRepository
	rdb          *redis.Client
	minioClient  *minio.Client
	cfg          *config.Config
}

func NewReportService(jobCardRepo *repository.JobCardRepository, invoiceRepo *repository.InvoiceRepository, exporterRepo *repository.ExporterRepository, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config) *ReportService {
	return &ReportService{
		jobCardRepo:  jobCardRepo,
		invoiceRepo:  invoiceRepo,
		exporterRepo: exporterRepo,
		rdb:          rdb,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

// ReportFile is a rendered report ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Dashboard is the landing page snapshot.
type Dashboard struct {
	JobCardsTotal     int64                    `json:"job_cards_total"`
	JobCardsPending   int64                    `json:"job_cards_pending"`
	JobCardsCompleted int64                    `json:"job_cards_completed"`
	JobCardsPaid      int64                    `json:"job_cards_paid"`
	InvoicesPending   int64                    `json:"invoices_pending"`
	InvoicesPaid      int64                    `json:"invoices_paid"`
	PendingLevyGhs    float64                  `json:"pending_levy_ghs"`
	CollectedLevyGhs  float64                  `json:"collected_levy_ghs"`
	RevenueUsd30d     float64                  `json:"revenue_usd_30d"`
	RevenueGhs30d     float64                  `json:"revenue_ghs_30d"`
	TopExporters      []report.ExporterSummary `json:"top_exporters"`
	GeneratedAt       time.Time                `json:"generated_at"`
}

// records loads the job cards of the lookback window flattened into
// report rows. Row count is capped by configuration.
func (s *ReportService) records(ctx context.Context, days int) ([]report.Record, error) {
	since := time.Now().AddDate(0, 0, -days)
	maxRows := s.cfg.Report.MaxRows
	if maxRows <= 0 {
		maxRows = 2000
	}

	cards, err := s.jobCardRepo.ListForReport(ctx, since, maxRows)
	if err != nil {
		return nil, fmt.Errorf("load job cards: %w", err)
	}

	records := make([]report.Record, 0, len(cards))
	for _, card := range cards {
		name := report.UnknownExporter
		if card.Exporter != nil {
			name = card.Exporter.Name
		}
		var usd, ghs float64
		if card.TotalCombinedValueUsd != nil {
			usd = *card.TotalCombinedValueUsd
		}
		if card.TotalValueGhs != nil {
			ghs = *card.TotalValueGhs
		}
		records = append(records, report.Record{
			JobCardID:    card.ID,
			JobCardCode:  card.Code,
			ExporterName: name,
			Status:       card.Status,
			AssayCount:   len(card.Assays),
			RevenueUsd:   usd,
			RevenueGhs:   ghs,
			CreatedAt:    card.CreatedAt,
		})
	}
	return records, nil
}

// Generate renders a report selected by flag ("weekly-summary",
// "monthly-comprehensive", ...) in the requested format (csv or xlsx).
func (s *ReportService) Generate(ctx context.Context, flag, format string) (*ReportFile, error) {
	period, mode, err := report.ParseFlag(flag)
	if err != nil {
		return nil, err
	}
	days, err := report.PeriodDays(period)
	if err != nil {
		return nil, err
	}

	records, err := s.records(ctx, days)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("20060102")
	var buf bytes.Buffer

	switch format {
	case "csv", "":
		switch mode {
		case report.ModeSummary:
			if err := report.WriteSummaryCSV(&buf, report.AggregateByExporter(records)); err != nil {
				return nil, fmt.Errorf("write csv: %w", err)
			}
		case report.ModeComprehensive:
			if err := report.WriteComprehensiveCSV(&buf, report.Comprehensive(records)); err != nil {
				return nil, fmt.Errorf("write csv: %w", err)
			}
		}
		file := &ReportFile{
			Filename:    fmt.Sprintf("%s-%s-%s.csv", period, mode, stamp),
			ContentType: "text/csv",
			Data:        buf.Bytes(),
		}
		s.archive(ctx, file)
		return file, nil

	case "xlsx":
		switch mode {
		case report.ModeSummary:
			f, err := report.BuildSummaryWorkbook(report.AggregateByExporter(records))
			if err != nil {
				return nil, fmt.Errorf("build workbook: %w", err)
			}
			if err := f.Write(&buf); err != nil {
				return nil, fmt.Errorf("write workbook: %w", err)
			}
		case report.ModeComprehensive:
			f, err := report.BuildComprehensiveWorkbook(report.Comprehensive(records))
			if err != nil {
				return nil, fmt.Errorf("build workbook: %w", err)
			}
			if err := f.Write(&buf); err != nil {
				return nil, fmt.Errorf("write workbook: %w", err)
			}
		}
		file := &ReportFile{
			Filename:    fmt.Sprintf("%s-%s-%s.xlsx", period, mode, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        buf.Bytes(),
		}
		s.archive(ctx, file)
		return file, nil

	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// PrintHTML renders the printable A4 revenue report for a period.
func (s *ReportService) PrintHTML(ctx context.Context, period string) (string, error) {
	days, err := report.PeriodDays(period)
	if err != nil {
		return "", err
	}
	records, err := s.records(ctx, days)
	if err != nil {
		return "", err
	}
	summaries := report.AggregateByExporter(records)
	return report.RenderPrintHTML(report.PrintDocument{
		Title:       "Export Revenue Report",
		Period:      period,
		GeneratedAt: time.Now(),
		Summaries:   summaries,
		TotalUsd:    report.TotalRevenue(summaries),
	})
}

// Dashboard assembles the landing page counters, cached briefly in
// Redis since every session loads it.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	const cacheKey = "dashboard:snapshot"
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var dash Dashboard
			if err := json.Unmarshal([]byte(cached), &dash); err == nil {
				return &dash, nil
			}
		}
	}
	dash := &Dashboard{GeneratedAt: time.Now()}

	var err error
	if dash.JobCardsTotal, err = s.jobCardRepo.CountByStatus(ctx, ""); err != nil {
		return nil, fmt.Errorf("count job cards: %w", err)
	}
	if dash.JobCardsPending, err = s.jobCardRepo.CountByStatus(ctx, entity.JobCardStatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	if dash.JobCardsCompleted, err = s.jobCardRepo.CountByStatus(ctx, entity.JobCardStatusCompleted); err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}
	if dash.JobCardsPaid, err = s.jobCardRepo.CountByStatus(ctx, entity.JobCardStatusPaid); err != nil {
		return nil, fmt.Errorf("count paid: %w", err)
	}

	if dash.InvoicesPending, dash.PendingLevyGhs, err = s.invoiceRepo.SumByStatus(ctx, entity.InvoiceStatusPending, time.Time{}); err != nil {
		return nil, fmt.Errorf("sum pending invoices: %w", err)
	}
	if dash.InvoicesPaid, dash.CollectedLevyGhs, err = s.invoiceRepo.SumByStatus(ctx, entity.InvoiceStatusPaid, time.Time{}); err != nil {
		return nil, fmt.Errorf("sum paid invoices: %w", err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if dash.RevenueUsd30d, dash.RevenueGhs30d, err = s.jobCardRepo.SumCompletedValues(ctx, since); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	records, err := s.records(ctx, 30)
	if err != nil {
		return nil, err
	}
	summaries := report.AggregateByExporter(records)
	if len(summaries) > 5 {
		summaries = summaries[:5]
	}
	dash.TopExporters = summaries

	if s.rdb != nil {
		if data, err := json.Marshal(dash); err == nil {
			s.rdb.Set(ctx, cacheKey, data, dashboardCacheTTL)
		}
	}

	return dash, nil
}

// archive uploads a rendered report to object storage when configured.
// Archiving is best-effort: a storage outage never fails the download.
func (s *ReportService) archive(ctx context.Context, file *ReportFile) {
	if s.minioClient == nil {
		return
	}
	objectName := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006/01"), file.Filename)
	_, _ = s.minioClient.PutObject(ctx, s.cfg.MinIO.Bucket, objectName,
		bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
}
