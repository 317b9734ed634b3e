// Package observability provides human-readable output for the CLI's text mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a factor bar at risk 1.0
	barWidth = 20
	// forecastDaysToShow limits the forecast table to the first days of the horizon
	forecastDaysToShow = 7
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRiskResult outputs the probability, status band and per-factor risk bars.
func (p *Printer) PrintRiskResult(result *types.RiskResult) {
	if result == nil {
		return
	}

	status := risk.StatusFor(result.BurnoutProbability)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Burnout probability: %.2f%% (%s)\n", result.BurnoutProbability, status))
	sb.WriteString(fmt.Sprintf("Risk index:          %.3f\n", result.RiskIndexRaw))
	sb.WriteString("\n")

	for _, factor := range risk.FactorValues(result) {
		filled := int(factor.Value*barWidth + 0.5)
		sb.WriteString(fmt.Sprintf("%-10s %s%s %.3f\n",
			factor.Name,
			strings.Repeat("█", filled),
			strings.Repeat("░", barWidth-filled),
			factor.Value))
	}
	sb.WriteString("\n")
	sb.WriteString(risk.Explain(result))

	p.printBox("BURNOUT RISK", sb.String())
}

// PrintForecast outputs the first days of a forecast with its band.
func (p *Printer) PrintForecast(result *types.ForecastResult) {
	if result == nil || len(result.Forecast) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %8s %8s %8s\n", "Day", "Low", "Risk", "High"))

	count := min(len(result.Forecast), forecastDaysToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("%-5d %8.3f %8.3f %8.3f\n", i+1, result.LowerBound[i], result.Forecast[i], result.UpperBound[i]))
	}
	if len(result.Forecast) > forecastDaysToShow {
		sb.WriteString(fmt.Sprintf("... and %d more days", len(result.Forecast)-forecastDaysToShow))
	}

	p.printBox(fmt.Sprintf("%d-DAY RISK FORECAST", len(result.Forecast)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs the metrics read from a journal entry.
func (p *Printer) PrintExtraction(resp *types.AnalyzeResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provider: %s\n", resp.Provider))
	if resp.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", resp.Summary))
	}
	sb.WriteString("\n")

	m := resp.MetricInput
	writeMetric(&sb, "Sleep hours", m.SleepHours)
	writeMetric(&sb, "Work hours", m.WorkHours)
	writeMetric(&sb, "Sentiment", m.SentimentScore)
	writeIntMetric(&sb, "Deadlines", m.DeadlinesNext7Days)
	writeIntMetric(&sb, "Stress", m.StressSelfReport)

	p.printBox("JOURNAL METRICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs how many batch records scored and failed.
func (p *Printer) PrintBatchSummary(scored, failed, highRisk int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scored:    %d\n", scored))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", failed))
	sb.WriteString(fmt.Sprintf("High risk: %d", highRisk))

	p.printBox("BATCH SUMMARY", sb.String())
}

func writeMetric(sb *strings.Builder, label string, v *float64) {
	if v == nil {
		sb.WriteString(fmt.Sprintf("  • %-12s n/a\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("  • %-12s %g\n", label, *v))
}

func writeIntMetric(sb *strings.Builder, label string, v *int) {
	if v == nil {
		sb.WriteString(fmt.Sprintf("  • %-12s n/a\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("  • %-12s %d\n", label, *v))
}
