package command

import (
	"time"

	"github.com/oshokin/mission-console/internal/domain/telemetry"
)

// EventType tags why an entry reached the console.
type EventType string

const (
	// EventIssued marks entries read from the archive snapshot.
	EventIssued EventType = "ISSUED"
	// EventUpdated marks entries pushed on the live stream.
	EventUpdated EventType = "UPDATED"
)

// Well-known attribute names in a command's attribute trail.
const (
	AttrUsername           = "username"
	AttrSource             = "source"
	AttrBinary             = "binary"
	AttrCommandFailed      = "CommandFailed"
	AttrFinalSequenceCount = "Final_Sequence_Count"
	AttrCommandComplete    = "CommandComplete"
)

// Completion values of the CommandComplete attribute.
const (
	CompletionOK  = "OK"
	CompletionNOK = "NOK"
)

// ID identifies one issued command.
type ID struct {
	// GenerationTime is the issue time in milliseconds since the epoch.
	GenerationTime int64 `json:"generationTime"`
	// Origin is the client that issued the command.
	Origin string `json:"origin"`
	// SequenceNumber is the origin's command counter.
	SequenceNumber int32 `json:"sequenceNumber"`
	// CommandName is the qualified name of the command.
	CommandName string `json:"commandName"`
}

// IsZero reports whether the id carries no identity.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Attribute is one name/value pair of the attribute trail.
type Attribute struct {
	Name  string          `json:"name"`
	Value telemetry.Value `json:"value"`
}

// Entry is a command with its attribute trail.
// Names in Attr are not guaranteed to be unique; lookups take the first match.
type Entry struct {
	CommandID ID          `json:"commandId"`
	Attr      []Attribute `json:"attr"`
	// Event is set by the client and never sent by the server.
	Event EventType `json:"-"`
}

// GenerationTime returns the issue time.
func (e *Entry) GenerationTime() time.Time {
	return time.UnixMilli(e.CommandID.GenerationTime).UTC()
}

// Lookup returns the first attribute value with the given name.
func (e *Entry) Lookup(name string) (telemetry.Value, bool) {
	for _, attr := range e.Attr {
		if attr.Name == name {
			return attr.Value, true
		}
	}

	return telemetry.Value{}, false
}

// lookupString returns the string value of the first attribute with the given name.
func (e *Entry) lookupString(name string) string {
	v, ok := e.Lookup(name)
	if !ok {
		return ""
	}

	return v.StringValue
}

// Username returns the user that issued the command.
func (e *Entry) Username() string {
	return e.lookupString(AttrUsername)
}

// Source returns the command string as typed by the user.
func (e *Entry) Source() string {
	return e.lookupString(AttrSource)
}

// Binary returns the encoded command.
func (e *Entry) Binary() []byte {
	v, ok := e.Lookup(AttrBinary)
	if !ok {
		return nil
	}

	return v.BinaryValue
}

// FailedReason returns the failure message, if any.
func (e *Entry) FailedReason() string {
	return e.lookupString(AttrCommandFailed)
}

// FinalSequenceCount returns the final sequence count as reported by the link.
func (e *Entry) FinalSequenceCount() string {
	v, ok := e.Lookup(AttrFinalSequenceCount)
	if !ok {
		return ""
	}

	return v.String()
}

// IsCompleted reports whether the command completed successfully.
func (e *Entry) IsCompleted() bool {
	return e.lookupString(AttrCommandComplete) == CompletionOK
}

// IsFailed reports whether the command completed with a failure.
func (e *Entry) IsFailed() bool {
	return e.lookupString(AttrCommandComplete) == CompletionNOK
}

// Merge returns a new entry with the attributes of next folded onto e.
// For every name in next, the first occurrence in e is overwritten with the
// first value of that name in next; names unseen in e are appended.
// Merging the same update twice yields the same entry.
func (e Entry) Merge(next Entry) Entry {
	incoming := make(map[string]telemetry.Value, len(next.Attr))
	order := make([]string, 0, len(next.Attr))

	for _, attr := range next.Attr {
		if _, seen := incoming[attr.Name]; seen {
			continue
		}

		incoming[attr.Name] = attr.Value
		order = append(order, attr.Name)
	}

	merged := make([]Attribute, 0, len(e.Attr)+len(order))
	replaced := make(map[string]bool, len(order))

	for _, attr := range e.Attr {
		if v, ok := incoming[attr.Name]; ok && !replaced[attr.Name] {
			attr.Value = v
			replaced[attr.Name] = true
		}

		merged = append(merged, attr)
	}

	for _, name := range order {
		if !replaced[name] {
			merged = append(merged, Attribute{Name: name, Value: incoming[name]})
		}
	}

	return Entry{
		CommandID: next.CommandID,
		Attr:      merged,
		Event:     next.Event,
	}
}
