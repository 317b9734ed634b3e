package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Status band thresholds on burnout probability (0-100)
const (
	lowStatusBelow      = 35.0
	mediumStatusAtMost  = 70.0
	explanationTopCount = 2
)

// Explain names the two strongest drivers of a result.
func Explain(result *types.RiskResult) string {
	if result == nil {
		return "Risk is stable with no dominant burnout drivers."
	}

	ranked := make([]ComponentRisk, 0, len(result.InputsUsed))
	for _, f := range AllFactors() {
		if v, ok := result.Factors[f.String()]; ok {
			ranked = append(ranked, ComponentRisk{Factor: f, Value: v})
		}
	}
	// Stable keeps factor order among equal values.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	if len(ranked) < explanationTopCount {
		return "Risk is stable with no dominant burnout drivers."
	}

	return fmt.Sprintf("%s and %s are currently the strongest burnout drivers.",
		titleCase(ranked[0].Factor.String()), titleCase(ranked[1].Factor.String()))
}

// StatusFor buckets a burnout probability.
func StatusFor(probability float64) types.StatusColor {
	switch {
	case probability < lowStatusBelow:
		return types.StatusLow
	case probability <= mediumStatusAtMost:
		return types.StatusMedium
	default:
		return types.StatusHigh
	}
}

// AlertText returns the headline shown for a status band.
func AlertText(status types.StatusColor) string {
	switch status {
	case types.StatusLow:
		return "Risk is low and stable. Keep your routine consistent."
	case types.StatusMedium:
		return "Risk is moderate. Consider small preventive adjustments this week."
	default:
		return "Risk is high and trending up. Immediate preventive action is recommended."
	}
}

// Actions returns preventive recommendations for a status band.
func Actions(status types.StatusColor) []types.ActionItem {
	switch status {
	case types.StatusLow:
		return []types.ActionItem{
			{ID: "maintain-sleep", Label: "Maintain a consistent 7-8 hour sleep schedule"},
			{ID: "protect-breaks", Label: "Protect 2 short breaks during long work blocks"},
			{ID: "weekly-checkin", Label: "Do a quick weekly stress check-in"},
			{ID: "exercise", Label: "Keep at least 3 light activity sessions this week"},
		}
	case types.StatusMedium:
		return []types.ActionItem{
			{ID: "reduce-load", Label: "Defer or split one non-urgent task"},
			{ID: "sleep-target", Label: "Target at least 6.5 hours of sleep nightly"},
			{ID: "focus-block", Label: "Use 90-minute focus blocks with breaks"},
			{ID: "support", Label: "Check in with a mentor or teammate about workload"},
		}
	default:
		return []types.ActionItem{
			{ID: "sleep-priority", Label: "Prioritize sleep recovery tonight (5+ hours minimum)"},
			{ID: "drop-task", Label: "Drop or defer one low-priority commitment"},
			{ID: "ask-help", Label: "Request help on one high-effort task"},
			{ID: "recovery-block", Label: "Schedule a short recovery block in the next 24 hours"},
		}
	}
}

// FactorValues lists every active factor of a result in factor order, with display names.
func FactorValues(result *types.RiskResult) []types.FactorValue {
	if result == nil {
		return nil
	}
	out := make([]types.FactorValue, 0, len(result.Factors))
	for _, f := range AllFactors() {
		if v, ok := result.Factors[f.String()]; ok {
			out = append(out, types.FactorValue{Name: titleCase(f.String()), Value: v})
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
