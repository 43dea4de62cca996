package transform

import (
	"fmt"
	"strings"
)

// Record is a single semi-structured data record, mapping field names to values. Values may be
// nested records (as map[string]any), e.g. a "location" field containing "city" and "country".
//
// Records are treated as immutable by this package: the transform never writes to them, it only
// re-orders copies of the record lists it receives.
type Record map[string]any

// Field resolves a possibly dot-delimited field path against the given record, walking nested
// mappings segment by segment. Returns false if any path segment is missing, or if the resolved
// value is nil (a nil value carries no more information than a missing field).
//
// Absence is never an error: callers decide what default to substitute, so every
// "missing field -> default" decision is an explicit call site rather than implicit fallback.
func Field(record Record, fieldPath string) (value any, ok bool) {
	segments := strings.Split(fieldPath, ".")
	lastSegment := len(segments) - 1

	current := map[string]any(record)
	for i, segment := range segments {
		fieldValue, ok := current[segment]
		if !ok || fieldValue == nil {
			return nil, false
		}

		if i == lastSegment {
			return fieldValue, true
		}

		switch nested := fieldValue.(type) {
		case map[string]any:
			current = nested
		case Record:
			current = nested
		default:
			return nil, false
		}
	}

	return nil, false
}

// NumericField resolves a field path against the given record, substituting the default value 0
// when the field is missing or non-numeric. Callers that cannot accept zero-as-default must
// validate their records before transforming them.
func NumericField(record Record, fieldPath string) float64 {
	value, ok := Field(record, fieldPath)
	if !ok {
		return 0
	}

	switch value := value.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return 0
	}
}

// MissingFieldGroupKey is the group key given to records that lack the group-by field. It is a
// valid, distinct group bucket, not an error.
const MissingFieldGroupKey = "undefined"

// GroupKey resolves a field path against the given record and stringifies the result for use as a
// grouping key. Records missing the field all group under MissingFieldGroupKey.
func GroupKey(record Record, fieldPath string) string {
	value, ok := Field(record, fieldPath)
	if !ok {
		return MissingFieldGroupKey
	}

	switch value := value.(type) {
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
