package telemetry

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ValueType is the discriminator of a Value.
type ValueType string

// Known value types.
const (
	ValueFloat      ValueType = "FLOAT"
	ValueDouble     ValueType = "DOUBLE"
	ValueUint32     ValueType = "UINT32"
	ValueSint32     ValueType = "SINT32"
	ValueUint64     ValueType = "UINT64"
	ValueSint64     ValueType = "SINT64"
	ValueBinary     ValueType = "BINARY"
	ValueString     ValueType = "STRING"
	ValueTimestamp  ValueType = "TIMESTAMP"
	ValueBoolean    ValueType = "BOOLEAN"
	ValueEnumerated ValueType = "ENUMERATED"
)

// Value is a tagged union of the scalar types carried by the server.
// 64-bit integers travel as JSON strings.
type Value struct {
	Type           ValueType `json:"type"`
	FloatValue     float32   `json:"floatValue,omitempty"`
	DoubleValue    float64   `json:"doubleValue,omitempty"`
	Uint32Value    uint32    `json:"uint32Value,omitempty"`
	Sint32Value    int32     `json:"sint32Value,omitempty"`
	Uint64Value    uint64    `json:"uint64Value,omitempty,string"`
	Sint64Value    int64     `json:"sint64Value,omitempty,string"`
	BinaryValue    []byte    `json:"binaryValue,omitempty"`
	StringValue    string    `json:"stringValue,omitempty"`
	TimestampValue int64     `json:"timestampValue,omitempty,string"`
	BooleanValue   bool      `json:"booleanValue,omitempty"`
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Type {
	case ValueFloat:
		return strconv.FormatFloat(float64(v.FloatValue), 'g', -1, 32)
	case ValueDouble:
		return strconv.FormatFloat(v.DoubleValue, 'g', -1, 64)
	case ValueUint32:
		return strconv.FormatUint(uint64(v.Uint32Value), 10)
	case ValueSint32:
		return strconv.FormatInt(int64(v.Sint32Value), 10)
	case ValueUint64:
		return strconv.FormatUint(v.Uint64Value, 10)
	case ValueSint64:
		return strconv.FormatInt(v.Sint64Value, 10)
	case ValueBinary:
		return strings.ToUpper(hex.EncodeToString(v.BinaryValue))
	case ValueTimestamp:
		return time.UnixMilli(v.TimestampValue).UTC().Format(time.RFC3339Nano)
	case ValueBoolean:
		return strconv.FormatBool(v.BooleanValue)
	default:
		// STRING and ENUMERATED both carry their text in StringValue.
		return v.StringValue
	}
}

// StringOf returns a STRING value.
func StringOf(s string) Value {
	return Value{Type: ValueString, StringValue: s}
}
