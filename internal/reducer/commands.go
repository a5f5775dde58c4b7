package reducer

import (
	"cmp"
	"strings"

	"github.com/oshokin/mission-console/internal/domain/command"
)

// CommandRules folds command history entries keyed by command id. Updates
// extend the stored attribute trail. The list renders newest first.
func CommandRules() Rules[command.ID, command.Entry] {
	return Rules[command.ID, command.Entry]{
		Key: func(e command.Entry) (command.ID, bool) {
			return e.CommandID, !e.CommandID.IsZero()
		},
		Classify: func(e command.Entry) Action {
			switch e.Event {
			case command.EventIssued, command.EventUpdated:
				return ActionUpsert
			default:
				return ActionUnknown
			}
		},
		Kind: func(e command.Entry) string {
			return string(e.Event)
		},
		Merge: func(prev, next command.Entry) command.Entry {
			return prev.Merge(next)
		},
		Compare: func(a, b command.Entry) int {
			if c := cmp.Compare(b.CommandID.GenerationTime, a.CommandID.GenerationTime); c != 0 {
				return c
			}

			if c := strings.Compare(a.CommandID.Origin, b.CommandID.Origin); c != 0 {
				return c
			}

			return cmp.Compare(b.CommandID.SequenceNumber, a.CommandID.SequenceNumber)
		},
	}
}
