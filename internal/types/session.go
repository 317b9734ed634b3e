package types

import (
	"time"

	"github.com/google/uuid"
)

// Session is the response of POST /sessions: an anonymous user identity and its bearer token.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CheckIn is a stored daily self-report with its computed score.
type CheckIn struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Metrics     MetricInput `json:"metrics"`
	JournalText string      `json:"journal_text,omitempty"`
	Result      *RiskResult `json:"result"`
	Explanation string      `json:"explanation"`
	CreatedAt   time.Time   `json:"created_at"`
}

// PulseReading is a physiological reading captured for a pulse session token.
type PulseReading struct {
	Token            uuid.UUID `json:"token"`
	HeartRate        float64   `json:"heart_rate"`
	BreathingRate    float64   `json:"breathing_rate"`
	Confidence       float64   `json:"confidence"`
	StressIndex      float64   `json:"stress_index"`
	BreakRecommended bool      `json:"break_recommended"`
	CreatedAt        time.Time `json:"created_at"`
}

// CheckInList is the response of GET /me/checkins, newest first.
type CheckInList struct {
	CheckIns []CheckIn `json:"check_ins"`
}
