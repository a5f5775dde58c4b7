package alarm

import (
	"time"

	"github.com/oshokin/mission-console/internal/domain/telemetry"
)

// EventType tells why an alarm notification was emitted.
type EventType string

// Alarm notification kinds sent by the server.
const (
	EventActive            EventType = "ACTIVE"
	EventTriggered         EventType = "TRIGGERED"
	EventSeverityIncreased EventType = "SEVERITY_INCREASED"
	EventValueUpdated      EventType = "PVAL_UPDATED"
	// EventValueUpdatedV5 is the newer spelling of EventValueUpdated.
	EventValueUpdatedV5 EventType = "VALUE_UPDATED"
	EventAcknowledged   EventType = "ACKNOWLEDGED"
	EventReturnToNormal EventType = "RTN"
	EventShelved        EventType = "SHELVED"
	EventUnshelved      EventType = "UNSHELVED"
	EventReset          EventType = "RESET"
	EventCleared        EventType = "CLEARED"
)

// AcknowledgeInfo records who acknowledged an alarm.
type AcknowledgeInfo struct {
	// AcknowledgedBy is the user that acknowledged the alarm.
	AcknowledgedBy string `json:"acknowledgedBy"`
	// AcknowledgeMessage is the optional operator note.
	AcknowledgeMessage string `json:"acknowledgeMessage,omitempty"`
	// AcknowledgeTime is when the acknowledgement happened.
	AcknowledgeTime time.Time `json:"acknowledgeTime"`
}

// Alarm is one notification about a live out-of-limits condition.
// Alarms are never mutated after decoding: a newer notification replaces
// the previous one for the same parameter.
type Alarm struct {
	// SeqNum is the server-side alarm instance number.
	SeqNum int `json:"seqNum"`
	// Type is the notification kind.
	Type EventType `json:"type"`
	// TriggerValue is the sample that raised the alarm. Its id names the alarm.
	TriggerValue *telemetry.ParameterValue `json:"triggerValue,omitempty"`
	// MostSevereValue is the worst sample seen while the alarm was active.
	MostSevereValue *telemetry.ParameterValue `json:"mostSevereValue,omitempty"`
	// CurrentValue is the latest sample.
	CurrentValue *telemetry.ParameterValue `json:"currentValue,omitempty"`
	// Violations counts out-of-limits samples.
	Violations int `json:"violations"`
	// AcknowledgeInfo is set once an operator acknowledged the alarm.
	AcknowledgeInfo *AcknowledgeInfo `json:"acknowledgeInfo,omitempty"`
}

// Name returns the qualified parameter name identifying the alarm,
// and false when the notification carries no trigger value.
func (a *Alarm) Name() (string, bool) {
	if a == nil || a.TriggerValue == nil || a.TriggerValue.ID.Name == "" {
		return "", false
	}

	return a.TriggerValue.ID.Name, true
}

// Severity returns the monitoring result of the most severe known sample.
func (a *Alarm) Severity() string {
	switch {
	case a.MostSevereValue != nil && a.MostSevereValue.MonitoringResult != "":
		return a.MostSevereValue.MonitoringResult
	case a.TriggerValue != nil:
		return a.TriggerValue.MonitoringResult
	default:
		return ""
	}
}

// IsAcknowledged reports whether an operator acknowledged the alarm.
func (a *Alarm) IsAcknowledged() bool {
	return a.AcknowledgeInfo != nil
}

// LatestValue returns the current sample, falling back to the trigger sample.
func (a *Alarm) LatestValue() *telemetry.ParameterValue {
	if a.CurrentValue != nil {
		return a.CurrentValue
	}

	return a.TriggerValue
}
