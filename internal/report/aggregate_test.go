package report

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, n, 12, 0, 0, 0, time.UTC)
}

func sampleRecords() []Record {
	return []Record{
		{JobCardID: "jc1", JobCardCode: "JC-LS-000001", ExporterName: "Akora Mining", AssayCount: 1, RevenueUsd: 1000, CreatedAt: day(1)},
		{JobCardID: "jc2", JobCardCode: "JC-LS-000002", ExporterName: "Akora Mining", AssayCount: 2, RevenueUsd: 3000, CreatedAt: day(3)},
		{JobCardID: "jc3", JobCardCode: "JC-SS-000003", ExporterName: "Bonte Gold", AssayCount: 1, RevenueUsd: 6000, CreatedAt: day(2)},
	}
}

func TestAggregateByExporterSums(t *testing.T) {
	summaries := AggregateByExporter(sampleRecords())

	if len(summaries) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(summaries))
	}

	// Sorted by revenue descending.
	if summaries[0].Exporter != "Bonte Gold" {
		t.Errorf("expected Bonte Gold first, got %s", summaries[0].Exporter)
	}

	akora := summaries[1]
	if akora.RevenueUsd != 4000 {
		t.Errorf("akora revenue = %v, want 4000", akora.RevenueUsd)
	}
	if akora.JobCards != 2 || akora.Assays != 3 {
		t.Errorf("akora counts = %d cards / %d assays, want 2/3", akora.JobCards, akora.Assays)
	}
	if akora.AvgJobCardValue != 2000 {
		t.Errorf("akora avg = %v, want 2000", akora.AvgJobCardValue)
	}
	if !akora.LastActivity.Equal(day(3)) {
		t.Errorf("akora last activity = %v, want %v", akora.LastActivity, day(3))
	}

	if got := TotalRevenue(summaries); got != 10000 {
		t.Errorf("total revenue = %v, want 10000", got)
	}

	var shareSum float64
	for _, s := range summaries {
		shareSum += s.MarketSharePct
	}
	if math.Abs(shareSum-100) > 1e-9 {
		t.Errorf("market shares sum to %v, want 100", shareSum)
	}
}

func TestAggregateUnknownBucket(t *testing.T) {
	summaries := AggregateByExporter([]Record{
		{JobCardID: "jc1", RevenueUsd: 500, CreatedAt: day(1)},
	})
	if len(summaries) != 1 || summaries[0].Exporter != UnknownExporter {
		t.Fatalf("expected a single %q bucket, got %+v", UnknownExporter, summaries)
	}
}

func TestAggregateZeroDivisionGuards(t *testing.T) {
	summaries := AggregateByExporter([]Record{
		{JobCardID: "jc1", ExporterName: "Zero Co", RevenueUsd: 0, CreatedAt: day(1)},
	})
	s := summaries[0]
	if math.IsNaN(s.AvgJobCardValue) || math.IsInf(s.AvgJobCardValue, 0) {
		t.Errorf("avg value not guarded: %v", s.AvgJobCardValue)
	}
	if s.MarketSharePct != 0 {
		t.Errorf("market share = %v, want 0 when total revenue is 0", s.MarketSharePct)
	}

	if got := AggregateByExporter(nil); len(got) != 0 {
		t.Errorf("empty input should aggregate to no rows, got %d", len(got))
	}
}

func TestParseFlag(t *testing.T) {
	period, mode, err := ParseFlag("weekly-summary")
	if err != nil || period != PeriodWeekly || mode != ModeSummary {
		t.Errorf("ParseFlag(weekly-summary) = %q,%q,%v", period, mode, err)
	}
	if _, _, err := ParseFlag("yearly-summary"); err == nil {
		t.Error("expected error for unknown period")
	}
	if _, _, err := ParseFlag("weekly"); err == nil {
		t.Error("expected error for malformed flag")
	}
	if _, _, err := ParseFlag("daily-everything"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFilterSince(t *testing.T) {
	now := day(10)
	records := sampleRecords() // days 1..3
	if got := FilterSince(records, now, 7); len(got) != 1 {
		t.Errorf("7-day window from day 10 should keep 1 record (day 3), got %d", len(got))
	}
	if got := FilterSince(records, now, 30); len(got) != 3 {
		t.Errorf("30-day window should keep all, got %d", len(got))
	}
}

func TestComprehensiveSortsDateDesc(t *testing.T) {
	rows := Comprehensive(sampleRecords())
	if rows[0].JobCardID != "jc2" || rows[2].JobCardID != "jc1" {
		t.Errorf("unexpected order: %s, %s, %s", rows[0].JobCardID, rows[1].JobCardID, rows[2].JobCardID)
	}
}
