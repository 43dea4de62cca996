package transform

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"hermannm.dev/wrap"
)

// GroupEntry is the result of grouping records by one value of a group-by field: the field path
// and key that formed the group, the aggregates computed over its records, and the group's
// records sorted by the configured sort field.
//
// The group-by field name is carried as data (GroupField), so that the entry can serialize with
// the field name as a dynamic JSON key, e.g.:
//
//	{"category": "Hotel", "aggregates": {"price": 400}, "items": [...], "count": 3}
type GroupEntry struct {
	GroupField string
	GroupKey   string
	Aggregates map[string]float64
	Items      []Record
	// Always equals len(Items).
	Count int
}

func (entry GroupEntry) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	groupField, err := json.Marshal(entry.GroupField)
	if err != nil {
		return nil, wrap.Error(err, "failed to serialize group field name")
	}
	buffer.Write(groupField)
	buffer.WriteByte(':')

	groupKey, err := json.Marshal(entry.GroupKey)
	if err != nil {
		return nil, wrap.Error(err, "failed to serialize group key")
	}
	buffer.Write(groupKey)

	buffer.WriteString(`,"aggregates":`)
	if err := writeAggregatesJSON(&buffer, entry.Aggregates); err != nil {
		return nil, err
	}

	buffer.WriteString(`,"items":`)
	items, err := json.Marshal(entry.Items)
	if err != nil {
		return nil, wrap.Error(err, "failed to serialize group items")
	}
	buffer.Write(items)

	buffer.WriteString(`,"count":`)
	buffer.WriteString(strconv.Itoa(entry.Count))

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// writeAggregatesJSON serializes aggregates in AggregableFields order. Infinite values (min/max
// over an empty reduction) serialize as null, since JSON has no representation for them.
func writeAggregatesJSON(buffer *bytes.Buffer, aggregates map[string]float64) error {
	buffer.WriteByte('{')

	first := true
	for _, fieldName := range AggregableFields {
		value, ok := aggregates[fieldName]
		if !ok {
			continue
		}

		if !first {
			buffer.WriteByte(',')
		}
		first = false

		buffer.WriteByte('"')
		buffer.WriteString(fieldName)
		buffer.WriteString(`":`)

		if math.IsInf(value, 0) {
			buffer.WriteString("null")
		} else {
			aggregate, err := json.Marshal(value)
			if err != nil {
				return wrap.Errorf(err, "failed to serialize aggregate for field '%s'", fieldName)
			}
			buffer.Write(aggregate)
		}
	}

	buffer.WriteByte('}')
	return nil
}
