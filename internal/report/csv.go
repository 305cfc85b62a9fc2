package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// SummaryCSVHeader is the revenue summary schema.
var SummaryCSVHeader = []string{
	"Exporter",
	"Total_Revenue_USD",
	"Job_Cards",
	"Assays",
	"Avg_Value_Per_Card",
	"Market_Share_Percent",
	"Last_Activity",
}

// ComprehensiveCSVHeader is the per-job-card detail schema.
var ComprehensiveCSVHeader = []string{
	"Job_Card",
	"Exporter",
	"Status",
	"Assays",
	"Revenue_USD",
	"Revenue_GHS",
	"Created_At",
}

// WriteSummaryCSV renders exporter summaries as RFC-4180 CSV. Monetary
// values are rounded to 2dp here, at the display boundary.
func WriteSummaryCSV(w io.Writer, summaries []ExporterSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryCSVHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Exporter,
			strconv.FormatFloat(s.RevenueUsd, 'f', 2, 64),
			strconv.Itoa(s.JobCards),
			strconv.Itoa(s.Assays),
			strconv.FormatFloat(s.AvgJobCardValue, 'f', 2, 64),
			strconv.FormatFloat(s.MarketSharePct, 'f', 2, 64),
			formatActivity(s),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComprehensiveCSV renders per-record detail rows.
func WriteComprehensiveCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ComprehensiveCSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.JobCardCode,
			r.ExporterName,
			r.Status,
			strconv.Itoa(r.AssayCount),
			strconv.FormatFloat(r.RevenueUsd, 'f', 2, 64),
			strconv.FormatFloat(r.RevenueGhs, 'f', 2, 64),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatActivity(s ExporterSummary) string {
	if s.LastActivity.IsZero() {
		return ""
	}
	return s.LastActivity.Format("2006-01-02")
}
