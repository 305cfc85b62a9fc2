package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// generateID returns a 32 char hex id.
func generateID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// Repositories is the data access collection.
type Repositories struct {
	User     *UserRepository
	Exporter *ExporterRepository
	JobCard  *JobCardRepository
	Assay    *AssayRepository
	Invoice  *InvoiceRepository
	Price    *PriceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Exporter: NewExporterRepository(db),
		JobCard:  NewJobCardRepository(db),
		Assay:    NewAssayRepository(db),
		Invoice:  NewInvoiceRepository(db),
		Price:    NewPriceRepository(db),
	}
}
