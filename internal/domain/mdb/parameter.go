package mdb

import "github.com/oshokin/mission-console/internal/domain/telemetry"

// AlarmLevel is the severity assigned by an alarm definition.
type AlarmLevel string

// Alarm levels in increasing severity.
const (
	LevelNormal   AlarmLevel = "NORMAL"
	LevelWatch    AlarmLevel = "WATCH"
	LevelWarning  AlarmLevel = "WARNING"
	LevelDistress AlarmLevel = "DISTRESS"
	LevelCritical AlarmLevel = "CRITICAL"
	LevelSevere   AlarmLevel = "SEVERE"
)

// EnumValue is one state of an enumerated type.
type EnumValue struct {
	Value       int64  `json:"value,string"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// EnumerationAlarm assigns a level to an enumeration label.
type EnumerationAlarm struct {
	Level AlarmLevel `json:"level"`
	Label string     `json:"label"`
}

// AlarmRange is a static numeric range for one level.
type AlarmRange struct {
	Level        AlarmLevel `json:"level"`
	MinInclusive *float64   `json:"minInclusive,omitempty"`
	MaxInclusive *float64   `json:"maxInclusive,omitempty"`
	MinExclusive *float64   `json:"minExclusive,omitempty"`
	MaxExclusive *float64   `json:"maxExclusive,omitempty"`
}

// AlarmInfo is an alarm definition.
type AlarmInfo struct {
	MinViolations    int                `json:"minViolations,omitempty"`
	StaticAlarmRange []AlarmRange       `json:"staticAlarmRange,omitempty"`
	EnumerationAlarm []EnumerationAlarm `json:"enumerationAlarm,omitempty"`
}

// ContextAlarmInfo is an alarm definition that applies only while its context
// expression holds.
type ContextAlarmInfo struct {
	Context string     `json:"context"`
	Alarm   *AlarmInfo `json:"alarm"`
}

// UnitInfo is a unit of measurement.
type UnitInfo struct {
	Unit string `json:"unit"`
}

// ArrayInfo describes the element type of an array type.
type ArrayInfo struct {
	Type       *ParameterType `json:"type"`
	Dimensions int            `json:"dimensions,omitempty"`
}

// ParameterType is the structural type descriptor of a parameter or member.
type ParameterType struct {
	Name         string             `json:"name,omitempty"`
	EngType      string             `json:"engType"`
	UnitSet      []UnitInfo         `json:"unitSet,omitempty"`
	DefaultAlarm *AlarmInfo         `json:"defaultAlarm,omitempty"`
	ContextAlarm []ContextAlarmInfo `json:"contextAlarm,omitempty"`
	EnumValue    []EnumValue        `json:"enumValue,omitempty"`
	Member       []Member           `json:"member,omitempty"`
	ArrayInfo    *ArrayInfo         `json:"arrayInfo,omitempty"`
}

// FindMember returns the member with the given name.
func (t *ParameterType) FindMember(name string) (*Member, bool) {
	if t == nil {
		return nil, false
	}

	for i := range t.Member {
		if t.Member[i].Name == name {
			return &t.Member[i], true
		}
	}

	return nil, false
}

// Member is a field of an aggregate type.
type Member struct {
	Name             string         `json:"name"`
	ShortDescription string         `json:"shortDescription,omitempty"`
	LongDescription  string         `json:"longDescription,omitempty"`
	Type             *ParameterType `json:"type,omitempty"`
}

// Parameter is a mission database parameter definition.
type Parameter struct {
	Name             string                    `json:"name"`
	QualifiedName    string                    `json:"qualifiedName"`
	ShortDescription string                    `json:"shortDescription,omitempty"`
	LongDescription  string                    `json:"longDescription,omitempty"`
	Alias            []telemetry.NamedObjectID `json:"alias,omitempty"`
	Type             *ParameterType            `json:"type,omitempty"`
	DataSource       string                    `json:"dataSource,omitempty"`
}

// Entry is either a Parameter or one of its nested Members.
type Entry interface {
	EntryName() string
	EntryType() *ParameterType
	Description() string
}

// EntryName returns the parameter's qualified name.
func (p *Parameter) EntryName() string { return p.QualifiedName }

// EntryType returns the parameter's type.
func (p *Parameter) EntryType() *ParameterType { return p.Type }

// Description returns the short description.
func (p *Parameter) Description() string { return p.ShortDescription }

// EntryName returns the member name.
func (m *Member) EntryName() string { return m.Name }

// EntryType returns the member type.
func (m *Member) EntryType() *ParameterType { return m.Type }

// Description returns the short description.
func (m *Member) Description() string { return m.ShortDescription }
