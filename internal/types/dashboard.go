package types

// StatusColor buckets a burnout probability for display.
type StatusColor string

// Status bands
const (
	StatusLow    StatusColor = "low"
	StatusMedium StatusColor = "medium"
	StatusHigh   StatusColor = "high"
)

// FactorValue is a named component risk for charting.
type FactorValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Dashboard summarizes a user's current burnout risk and its projected trend.
type Dashboard struct {
	RiskPercent float64         `json:"risk_percent"`
	StatusColor StatusColor     `json:"status_color"`
	Factors     []FactorValue   `json:"factors"`
	Forecast    *ForecastResult `json:"forecast"`
	AlertText   string          `json:"alert_text"`
	Explanation string          `json:"explanation"`
	Actions     []ActionItem    `json:"actions"`
	CheckIns    int             `json:"check_ins"`
	Pulse       *PulseReading   `json:"pulse,omitempty"`
}
