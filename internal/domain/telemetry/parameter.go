package telemetry

import "time"

// NamedObjectID identifies a mission database object, optionally within a namespace.
type NamedObjectID struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// ParameterValue is one sample of a parameter.
type ParameterValue struct {
	ID                NamedObjectID `json:"id"`
	RawValue          *Value        `json:"rawValue,omitempty"`
	EngValue          *Value        `json:"engValue,omitempty"`
	AcquisitionTime   time.Time     `json:"acquisitionTime"`
	GenerationTime    time.Time     `json:"generationTime"`
	AcquisitionStatus string        `json:"acquisitionStatus,omitempty"`
	MonitoringResult  string        `json:"monitoringResult,omitempty"`
	RangeCondition    string        `json:"rangeCondition,omitempty"`
}

// DisplayValue renders the engineering value, or an empty string without one.
func (pv *ParameterValue) DisplayValue() string {
	if pv == nil || pv.EngValue == nil {
		return ""
	}

	return pv.EngValue.String()
}
