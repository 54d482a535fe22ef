// Package renderer turns portfolio snapshots into markdown reports.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/holdings"
)

// Snapshot is a struct to represent the snapshot data in json.
// Numbers are handled using the exact decimal types (Money, Quantity, etc.)
// so that they already contain basic renderers (SignedString etc.)
type Snapshot struct {
	// TakenAt is the capture timestamp of the snapshot.
	TakenAt time.Time `json:"takenAt"`
	// TotalEquity is the portfolio total in the reporting currency.
	TotalEquity holdings.Money `json:"totalEquity"`
	// Rows is the list of holdings, one per symbol.
	Rows []Row `json:"rows"`
	// Warnings are the recoverable conditions met while building the snapshot.
	Warnings []holdings.Warning `json:"warnings,omitempty"`
}

// Row represents a single holding row.
type Row struct {
	Symbol        string              `json:"symbol"`
	Name          string              `json:"name,omitempty"`
	Class         holdings.AssetClass `json:"assetClass"`
	Quantity      holdings.Quantity   `json:"quantity"`
	Price         holdings.Money      `json:"price"`
	Equity        holdings.Money      `json:"equity"`
	EquityChange  holdings.Money      `json:"equityChange"`
	PercentChange holdings.Percent    `json:"percentChange"`
	Weight        holdings.Percent    `json:"weight"`
}

// PriceString renders the price at the row's precision: conventional dollar
// formatting for equities, all digits for crypto.
func (r Row) PriceString() string {
	if r.Class == holdings.Crypto {
		return "$" + r.Price.ExactString()
	}
	return r.Price.String()
}

// EquityString is like PriceString for the row's market value.
func (r Row) EquityString() string {
	if r.Class == holdings.Crypto {
		return "$" + r.Equity.ExactString()
	}
	return r.Equity.String()
}

// NewSnapshot creates a new Snapshot struct from a portfolio snapshot.
// It populates the struct with all the necessary data for rendering.
func NewSnapshot(s *holdings.PortfolioSnapshot) *Snapshot {
	v := &Snapshot{
		TakenAt:     s.On(),
		TotalEquity: s.TotalEquity(),
		Rows:        make([]Row, 0, s.Len()),
		Warnings:    s.Warnings(),
	}
	for h := range s.Holdings() {
		v.Rows = append(v.Rows, Row{
			Symbol:        h.Symbol,
			Name:          h.Name,
			Class:         h.Class,
			Quantity:      h.Quantity,
			Price:         h.Price,
			Equity:        h.Equity,
			EquityChange:  h.EquityChange,
			PercentChange: h.PercentChange,
			Weight:        h.Weight,
		})
	}
	return v
}

// snapshotMarkdownTemplate is the template for rendering a Snapshot report in Markdown.
const snapshotMarkdownTemplate = `# Portfolio Snapshot on {{ .TakenAt.Format "2006-01-02 15:04" }}

Total Equity: **{{ .TotalEquity }}**

{{- if .Rows }}

## Holdings

| Symbol | Name | Class | Quantity | Price | Equity | Change | Weight |
|:---|:---|:---|---:|---:|---:|---:|---:|
{{- range .Rows }}
| {{ .Symbol }} | {{ .Name }} | {{ .Class }} | {{ .Quantity }} | {{ .PriceString }} | {{ .EquityString }} | {{ .PercentChange.SignedString }} | {{ .Weight }} |
{{- end }}
| **Total** | | | | | **{{ .TotalEquity }}** | | |
{{- else }}

No holdings.
{{- end -}}

{{- if .Warnings }}

## Warnings

{{- range .Warnings }}
- {{ . }}
{{- end }}
{{- end -}}
`

// RenderSnapshot renders the Snapshot struct to a markdown string using a text/template.
func RenderSnapshot(v *Snapshot) string {
	tmpl := template.Must(template.New("snapshot").Parse(snapshotMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}

// SnapshotMarkdown is the one-call convenience used by the CLI.
func SnapshotMarkdown(s *holdings.PortfolioSnapshot) string {
	return RenderSnapshot(NewSnapshot(s))
}
