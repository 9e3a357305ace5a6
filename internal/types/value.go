package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the runtime shape of a condition value.
type ValueKind int

const (
	// ValueUnset marks the zero Value; always a validation failure.
	ValueUnset ValueKind = iota
	// ValueNumber holds a single float64.
	ValueNumber
	// ValueString holds a single string.
	ValueString
	// ValueStringList holds an ordered string set for in/not_in.
	ValueStringList
	// ValueInterval holds an inclusive [low, high] pair for between.
	ValueInterval
)

// Value is the tagged union behind Condition.Value. Rules arrive from the
// authoring surface as JSON where the value can be a number, a string, a
// string array or a 2-element numeric array; the tag is fixed at decode time
// so operators never re-inspect dynamic types.
type Value struct {
	Kind   ValueKind
	Number float64
	Str    string
	List   []string
	Low    float64
	High   float64
}

// NumberValue builds a numeric Value.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Number: n}
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// StringListValue builds an ordered string-set Value.
func StringListValue(items ...string) Value {
	return Value{Kind: ValueStringList, List: items}
}

// IntervalValue builds an inclusive [low, high] Value.
func IntervalValue(low, high float64) Value {
	return Value{Kind: ValueInterval, Low: low, High: high}
}

// String renders the value for traces and CLI output.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueString:
		return v.Str
	case ValueStringList:
		return "[" + strings.Join(v.List, ", ") + "]"
	case ValueInterval:
		return fmt.Sprintf("[%s, %s]",
			strconv.FormatFloat(v.Low, 'f', -1, 64),
			strconv.FormatFloat(v.High, 'f', -1, 64))
	default:
		return ""
	}
}

// MarshalJSON encodes the value in its wire shape (number, string, string
// array or 2-element numeric array).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueString:
		return json.Marshal(v.Str)
	case ValueStringList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	case ValueInterval:
		return json.Marshal([2]float64{v.Low, v.High})
	default:
		return nil, ErrConditionValueShape
	}
}

// UnmarshalJSON decodes the wire shape into the tagged union. A 2-element
// numeric array always decodes as an interval; a string array decodes as a
// string set. Mixed arrays and other JSON kinds are rejected here so
// malformed stored rules surface at load time rather than mid-evaluation.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
		return nil
	case string:
		*v = StringValue(t)
		return nil
	case []any:
		if len(t) == 2 {
			low, okLow := t[0].(float64)
			high, okHigh := t[1].(float64)
			if okLow && okHigh {
				*v = IntervalValue(low, high)
				return nil
			}
		}
		list := make([]string, 0, len(t))
		for _, elem := range t {
			s, ok := elem.(string)
			if !ok {
				return ErrConditionValueShape
			}
			list = append(list, s)
		}
		*v = StringListValue(list...)
		return nil
	default:
		return ErrConditionValueShape
	}
}
