package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// PrintDocument is the data behind the printable A4 revenue report.
type PrintDocument struct {
	Title       string
	Period      string
	GeneratedAt time.Time
	Summaries   []ExporterSummary
	TotalUsd    float64
}

var printTmpl = template.Must(template.New("print").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2 Jan 2006")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 20mm; }
  body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { color: #666; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
  th { background: #f0f0f0; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Period: {{.Period}} &mdash; generated {{date .GeneratedAt}}</div>
<table>
<thead>
<tr>
  <th>Exporter</th><th class="num">Revenue (USD)</th><th class="num">Job Cards</th>
  <th class="num">Assays</th><th class="num">Avg / Card</th><th class="num">Share %</th><th>Last Activity</th>
</tr>
</thead>
<tbody>
{{range .Summaries}}<tr>
  <td>{{.Exporter}}</td><td class="num">{{money .RevenueUsd}}</td><td class="num">{{.JobCards}}</td>
  <td class="num">{{.Assays}}</td><td class="num">{{money .AvgJobCardValue}}</td><td class="num">{{money .MarketSharePct}}</td><td>{{date .LastActivity}}</td>
</tr>
{{end}}</tbody>
<tfoot>
<tr><td>Total</td><td class="num">{{money .TotalUsd}}</td><td colspan="5"></td></tr>
</tfoot>
</table>
</body>
</html>
`))

// RenderPrintHTML produces the full HTML document for print-to-PDF.
func RenderPrintHTML(doc PrintDocument) (string, error) {
	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
