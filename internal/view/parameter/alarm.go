package parameter

import "github.com/oshokin/mission-console/internal/domain/mdb"

// AlarmLevel resolves the level of an enumeration state. The context alarm,
// when given, is searched first; otherwise or without a match the default
// alarm of ptype is searched.
func AlarmLevel(ptype *mdb.ParameterType, contextAlarm *mdb.ContextAlarmInfo, enumValue mdb.EnumValue) (mdb.AlarmLevel, bool) {
	if contextAlarm != nil {
		if level, ok := EnumerationAlarmLevel(contextAlarm, enumValue); ok {
			return level, true
		}
	}

	return DefaultAlarmLevel(ptype, enumValue)
}

// DefaultAlarmLevel returns the level the default alarm of ptype assigns to
// the label of enumValue.
func DefaultAlarmLevel(ptype *mdb.ParameterType, enumValue mdb.EnumValue) (mdb.AlarmLevel, bool) {
	if ptype == nil {
		return "", false
	}

	return levelFor(ptype.DefaultAlarm, enumValue.Label)
}

// EnumerationAlarmLevel returns the level a context alarm assigns to the
// label of enumValue.
func EnumerationAlarmLevel(contextAlarm *mdb.ContextAlarmInfo, enumValue mdb.EnumValue) (mdb.AlarmLevel, bool) {
	if contextAlarm == nil {
		return "", false
	}

	return levelFor(contextAlarm.Alarm, enumValue.Label)
}

// levelFor scans alarm for the first enumeration alarm matching label.
func levelFor(alarm *mdb.AlarmInfo, label string) (mdb.AlarmLevel, bool) {
	if alarm == nil {
		return "", false
	}

	for _, enumAlarm := range alarm.EnumerationAlarm {
		if enumAlarm.Label == label {
			return enumAlarm.Level, true
		}
	}

	return "", false
}
