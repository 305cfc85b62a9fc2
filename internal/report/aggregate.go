// Package report groups valuation outputs by exporter or time period and
// renders them as CSV, XLSX or a printable HTML document. The inputs are
// flat records assembled by the report service; nothing in here touches
// the database.
package report

import (
	"sort"
	"time"
)

// UnknownExporter is the bucket for records with no exporter name.
const UnknownExporter = "Unknown"

// Record is one job card flattened for aggregation.
type Record struct {
	JobCardID    string    `json:"job_card_id"`
	JobCardCode  string    `json:"job_card_code"`
	ExporterName string    `json:"exporter_name"`
	Status       string    `json:"status"`
	AssayCount   int       `json:"assay_count"`
	RevenueUsd   float64   `json:"revenue_usd"`
	RevenueGhs   float64   `json:"revenue_ghs"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExporterSummary is one aggregated dashboard/CSV row.
type ExporterSummary struct {
	Exporter        string    `json:"exporter"`
	RevenueUsd      float64   `json:"revenue_usd"`
	JobCards        int       `json:"job_cards"`
	Assays          int       `json:"assays"`
	AvgJobCardValue float64   `json:"avg_job_card_value"`
	MarketSharePct  float64   `json:"market_share_pct"`
	LastActivity    time.Time `json:"last_activity"`
}

// AggregateByExporter buckets records by exporter name and sums their
// valuation outputs. Rows come back sorted by revenue descending, then
// name, so output order is stable. Division guards: an exporter with no
// job cards averages to 0, and market share is 0 when total revenue is 0.
func AggregateByExporter(records []Record) []ExporterSummary {
	buckets := make(map[string]*ExporterSummary)
	var totalRevenue float64

	for _, r := range records {
		name := r.ExporterName
		if name == "" {
			name = UnknownExporter
		}
		s, ok := buckets[name]
		if !ok {
			s = &ExporterSummary{Exporter: name}
			buckets[name] = s
		}
		s.RevenueUsd += r.RevenueUsd
		s.JobCards++
		s.Assays += r.AssayCount
		if r.CreatedAt.After(s.LastActivity) {
			s.LastActivity = r.CreatedAt
		}
		totalRevenue += r.RevenueUsd
	}

	summaries := make([]ExporterSummary, 0, len(buckets))
	for _, s := range buckets {
		if s.JobCards > 0 {
			s.AvgJobCardValue = s.RevenueUsd / float64(s.JobCards)
		}
		if totalRevenue > 0 {
			s.MarketSharePct = s.RevenueUsd / totalRevenue * 100
		}
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].RevenueUsd != summaries[j].RevenueUsd {
			return summaries[i].RevenueUsd > summaries[j].RevenueUsd
		}
		return summaries[i].Exporter < summaries[j].Exporter
	})

	return summaries
}

// TotalRevenue sums revenue across summaries.
func TotalRevenue(summaries []ExporterSummary) float64 {
	var total float64
	for _, s := range summaries {
		total += s.RevenueUsd
	}
	return total
}
