package service

import (
	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/pricefeed"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services is the business logic collection.
type Services struct {
	Auth     *AuthService
	Exporter *ExporterService
	JobCard  *JobCardService
	Assay    *AssayService
	Invoice  *InvoiceService
	Price    *PriceService
	Report   *ReportService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var feedClient *pricefeed.Client
	if cfg.PriceFeed.BaseURL != "" {
		feedClient = pricefeed.NewClient(
			cfg.PriceFeed.BaseURL,
			cfg.PriceFeed.APIKey,
			cfg.PriceFeed.Timeout,
			cfg.PriceFeed.CacheTTL,
		)
	}

	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// Continue without object storage; report archiving is skipped.
			minioClient = nil
		}
	}

	priceSvc := NewPriceService(repos.Price, rdb, feedClient)

	return &Services{
		Auth:     NewAuthService(repos.User, rdb, cfg),
		Exporter: NewExporterService(repos.Exporter),
		JobCard:  NewJobCardService(repos.JobCard, repos.Exporter),
		Assay:    NewAssayService(repos.Assay, repos.JobCard, priceSvc),
		Invoice:  NewInvoiceService(repos.Invoice, repos.JobCard, repos.Assay, cfg),
		Price:    priceSvc,
		Report:   NewReportService(repos.JobCard, repos.Invoice, repos.Exporter, rdb, minioClient, cfg),
	}
}
