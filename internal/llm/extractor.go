package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines what to extract from free text and the rules the model must follow.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JournalMetrics")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Extra instructions appended after the field list
}

// FieldKind is the JSON type of an extracted field.
type FieldKind int

// Field kinds
const (
	KindString FieldKind = iota
	KindNumber
	KindInteger
	KindBoolean
)

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string    // JSON field name
	Kind        FieldKind // JSON type enforced through the response schema
	Type        string    // Type hint shown to the model; defaults to the kind
	Description string    // Description for the LLM
	Required    bool      // Always present in the output; otherwise omitted when unknown
}

func (k FieldKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON (no markdown, no extra text). Keys must be a subset of:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = field.Kind.String()
		}
		presence := "optional"
		if field.Required {
			presence = "always include"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s (%s)", field.Name, typeHint, presence))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	if len(schema.Rules) > 0 {
		sb.WriteString("Rules:\n")
		for _, rule := range schema.Rules {
			sb.WriteString("- ")
			sb.WriteString(rule)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Journal entry:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JournalMetricsSchema returns the extraction schema for wellbeing metrics in a journal entry.
// Behavioral numbers are only reported when stated; sentiment is always estimated.
func JournalMetricsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "JournalMetrics",
		Description: "You read a student's journal entry and report wellbeing signals it contains.",
		Fields: []SchemaField{
			{
				Name:        "sleep_hours",
				Kind:        KindNumber,
				Description: "Hours slept",
			},
			{
				Name:        "deadlines_next_7_days",
				Kind:        KindInteger,
				Description: "Number of deadlines due in the next 7 days",
			},
			{
				Name:        "work_hours",
				Kind:        KindNumber,
				Description: "Hours worked or studied",
			},
			{
				Name:        "stress_self_report",
				Kind:        KindInteger,
				Type:        "integer 1-10",
				Description: "Stress level the writer gives themselves",
			},
			{
				Name:        "sentiment_score",
				Kind:        KindNumber,
				Type:        "number in [-1, 1]",
				Description: "Overall tone: -1 very negative, 0 neutral or mixed, +1 very positive",
				Required:    true,
			},
		},
		Rules: []string{
			"Include sleep_hours, deadlines_next_7_days, work_hours and stress_self_report ONLY if the journal explicitly states a numeric value. Otherwise OMIT the key.",
			"Do NOT guess or infer numeric values.",
			"ALWAYS include sentiment_score, computed from the overall tone.",
		},
	}
}
