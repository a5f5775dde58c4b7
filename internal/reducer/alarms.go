package reducer

import (
	"strings"

	"github.com/oshokin/mission-console/internal/domain/alarm"
)

// AlarmRules folds alarm notifications keyed by qualified parameter name.
// The list renders in name order.
func AlarmRules() Rules[string, alarm.Alarm] {
	return Rules[string, alarm.Alarm]{
		Key: func(a alarm.Alarm) (string, bool) {
			return a.Name()
		},
		Classify: classifyAlarm,
		Kind: func(a alarm.Alarm) string {
			return string(a.Type)
		},
		Compare: func(a, b alarm.Alarm) int {
			an, _ := a.Name()
			bn, _ := b.Name()

			return strings.Compare(an, bn)
		},
	}
}

// classifyAlarm maps alarm notification kinds to actions.
func classifyAlarm(a alarm.Alarm) Action {
	switch a.Type {
	case alarm.EventActive,
		alarm.EventTriggered,
		alarm.EventSeverityIncreased,
		alarm.EventValueUpdated,
		alarm.EventValueUpdatedV5,
		alarm.EventAcknowledged,
		alarm.EventReturnToNormal,
		alarm.EventShelved,
		alarm.EventUnshelved,
		alarm.EventReset:
		return ActionUpsert
	case alarm.EventCleared:
		return ActionRemove
	default:
		return ActionUnknown
	}
}
