package risk

import (
	"fmt"
	"sort"

	"github.com/equilibria/burnout-risk/internal/types"
)

// scenarios are reference student profiles for demos and tests.
var scenarios = map[string]types.MetricInput{
	"balanced": {
		SleepHours:         types.Float(7),
		DeadlinesNext7Days: types.Int(1),
		WorkHours:          types.Float(20),
		StressSelfReport:   types.Int(3),
		SentimentScore:     types.Float(0.4),
	},
	"midterms": {
		SleepHours:         types.Float(5),
		DeadlinesNext7Days: types.Int(4),
		WorkHours:          types.Float(30),
		StressSelfReport:   types.Int(7),
		SentimentScore:     types.Float(-0.4),
	},
	"burnout": {
		SleepHours:         types.Float(4),
		DeadlinesNext7Days: types.Int(6),
		WorkHours:          types.Float(40),
		StressSelfReport:   types.Int(9),
		SentimentScore:     types.Float(-0.8),
	},
}

// Scenario returns a copy of the named reference profile.
func Scenario(name string) (types.MetricInput, error) {
	in, ok := scenarios[name]
	if !ok {
		return types.MetricInput{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	// Overlay onto an empty input to copy the pointed-to values.
	return types.MetricInput{}.Overlay(in), nil
}

// ScenarioNames returns the known profile names, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
