package risk

import "errors"

// ErrNoValidInputs is returned when none of the five metrics is present.
var ErrNoValidInputs = errors.New("No valid inputs provided") //nolint:staticcheck // message is part of the API contract

// ErrUnknownScenario is returned by Scenario for an unrecognized profile name.
var ErrUnknownScenario = errors.New("unknown scenario")
