package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestWriteSummaryCSVEscaping(t *testing.T) {
	summaries := []ExporterSummary{
		{
			Exporter:        `O'Brien, Gold Ltd`,
			RevenueUsd:      1234.5,
			JobCards:        2,
			Assays:          2,
			AvgJobCardValue: 617.25,
			MarketSharePct:  100,
			LastActivity:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, summaries); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"O'Brien, Gold Ltd"`) {
		t.Errorf("field with comma should be quoted, got:\n%s", out)
	}

	// Round trip: parsing restores the original field.
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != strings.Join(SummaryCSVHeader, ",") {
		t.Errorf("header = %s", got)
	}
	if rows[1][0] != `O'Brien, Gold Ltd` {
		t.Errorf("exporter field = %q", rows[1][0])
	}
	if rows[1][1] != "1234.50" {
		t.Errorf("revenue field = %q, want 1234.50", rows[1][1])
	}
	if rows[1][6] != "2025-06-03" {
		t.Errorf("last activity = %q", rows[1][6])
	}
}

func TestWriteComprehensiveCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteComprehensiveCSV(&buf, []Record{
		{JobCardCode: "JC-LS-000007", ExporterName: "Akora Mining", Status: "completed",
			AssayCount: 1, RevenueUsd: 5915.2, RevenueGhs: 70982.4,
			CreatedAt: time.Date(2025, 6, 3, 9, 30, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "JC-LS-000007" || rows[1][4] != "5915.20" {
		t.Errorf("unexpected row: %v", rows[1])
	}
}

func TestRenderPrintHTML(t *testing.T) {
	html, err := RenderPrintHTML(PrintDocument{
		Title:       "Revenue by Exporter",
		Period:      "weekly",
		GeneratedAt: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Summaries: []ExporterSummary{
			{Exporter: "Bonte <Gold>", RevenueUsd: 6000, JobCards: 1, Assays: 1, AvgJobCardValue: 6000, MarketSharePct: 60},
		},
		TotalUsd: 6000,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<!DOCTYPE html>") || !strings.Contains(html, "Revenue by Exporter") {
		t.Errorf("document missing expected content")
	}
	if !strings.Contains(html, "Bonte &lt;Gold&gt;") {
		t.Errorf("exporter name should be HTML-escaped")
	}
	if !strings.Contains(html, "6000.00") {
		t.Errorf("money values should render with 2dp")
	}
}
