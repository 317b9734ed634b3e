// Package schemas embeds the JSON Schemas describing the service's documents.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	MetricExtraction = "metric_extraction.schema.json"
	RiskResult       = "risk_result.schema.json"
	ForecastResult   = "forecast_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the contents of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema.
func Names() []string {
	return []string{MetricExtraction, RiskResult, ForecastResult}
}
