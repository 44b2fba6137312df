package vitals

import "time"

// VitalID identifier type
type VitalID string

// VitalType enum
type VitalType string

const (
	TypeBP        VitalType = "BP"
	TypeSugar     VitalType = "Sugar"
	TypeWeight    VitalType = "Weight"
	TypeHeartRate VitalType = "Heart Rate"
)

// Vital is a single manual reading (e.g. "120/80" blood pressure on a date).
// Status is a caller-supplied label like "Normal" or "Stable"; it is stored
// verbatim, never computed.
type Vital struct {
	ID        VitalID   `json:"id"`
	UserID    string    `json:"user_id"`
	Type      VitalType `json:"type"`
	Value     string    `json:"value"`
	Date      string    `json:"date"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
