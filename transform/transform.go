package transform

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
)

// Options configures a call to GroupAggregateSort.
type Options struct {
	// Field paths to group records by. Paths are processed independently: each path partitions
	// the full input on its own, and the resulting group entries are concatenated in path order.
	// Paths are NOT combined into a compound key.
	GroupBy FieldPaths `json:"groupBy"`
	// Maps aggregable field names (see AggregableFields) to the aggregation to compute for them
	// per group. Fields absent from this map are not aggregated.
	Aggregations map[string]AggregationKind `json:"aggregations"`
	// Orders the records within each group entry, not the entries themselves.
	SortBy Sort `json:"sortBy"`
}

// FieldPaths is a list of dot-delimited field paths. It decodes from JSON as either a single
// string or a list of strings.
type FieldPaths []string

func (paths *FieldPaths) UnmarshalJSON(bytes []byte) error {
	var single string
	if err := json.Unmarshal(bytes, &single); err == nil {
		*paths = FieldPaths{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(bytes, &list); err != nil {
		return errors.New("field paths must be a string or a list of strings")
	}

	*paths = list
	return nil
}

type Sort struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

// AggregableFields are the numeric field names that GroupAggregateSort computes aggregates for.
// Aggregates are always emitted in this order.
var AggregableFields = []string{"price", "nights", "passengers"}

// GroupAggregateSort partitions the given records by each of the group-by field paths in
// options, computes the configured aggregates per partition, and sorts each partition's records
// by the configured sort field and order.
//
// Group entries appear in the order their key was first encountered while scanning the records
// top to bottom, with entries for the first field path before entries for the second, and so on.
// For a single field path, the entries' item lists are an exact, non-overlapping cover of the
// input; across field paths, every record naturally reappears once per path.
//
// The input record list is never mutated: each entry holds a freshly allocated item list, sharing
// the input's record references in a new order.
func GroupAggregateSort(records []Record, options Options) []GroupEntry {
	entries := make([]GroupEntry, 0, len(options.GroupBy))

	for _, fieldPath := range options.GroupBy {
		entries = append(entries, groupByFieldPath(records, fieldPath, options)...)
	}

	return entries
}

func groupByFieldPath(records []Record, fieldPath string, options Options) []GroupEntry {
	buckets := make(map[string][]Record)
	// Tracks the order in which group keys are first encountered, since map iteration order is
	// not stable.
	bucketOrder := make([]string, 0)

	for _, record := range records {
		key := GroupKey(record, fieldPath)
		if _, seen := buckets[key]; !seen {
			bucketOrder = append(bucketOrder, key)
		}
		buckets[key] = append(buckets[key], record)
	}

	entries := make([]GroupEntry, 0, len(bucketOrder))
	for _, key := range bucketOrder {
		items := buckets[key]
		sortRecords(items, options.SortBy)

		entries = append(entries, GroupEntry{
			GroupField: fieldPath,
			GroupKey:   key,
			Aggregates: aggregateFields(items, options.Aggregations),
			Items:      items,
			Count:      len(items),
		})
	}

	return entries
}

// aggregateFields computes the configured aggregate for each aggregable field over the given
// records. Aggregates that come out falsy (zero or NaN) are omitted from the result, since a
// zero-valued aggregate is indistinguishable from an absent one. Infinite values (from min/max
// over an empty reduction) are kept.
func aggregateFields(
	records []Record,
	aggregations map[string]AggregationKind,
) map[string]float64 {
	aggregates := make(map[string]float64, len(aggregations))

	for _, fieldName := range AggregableFields {
		kind, ok := aggregations[fieldName]
		if !ok {
			continue
		}

		values := make([]float64, 0, len(records))
		for _, record := range records {
			values = append(values, NumericField(record, fieldName))
		}

		if aggregated := Aggregate(values, kind); aggregated != 0 && !math.IsNaN(aggregated) {
			aggregates[fieldName] = aggregated
		}
	}

	return aggregates
}

// sortRecords sorts in place, which is safe since it is only ever given the freshly allocated
// bucket slices from groupByFieldPath. The sort is stable: records with equal sort field values
// (including records missing the field entirely, which sort as 0) retain their input order.
func sortRecords(records []Record, sortBy Sort) {
	slices.SortStableFunc(records, func(record1 Record, record2 Record) int {
		value1 := NumericField(record1, sortBy.Field)
		value2 := NumericField(record2, sortBy.Field)
		if value1 == value2 {
			return 0
		}

		var result int
		if value1 < value2 {
			result = -1
		} else {
			result = 1
		}

		switch sortBy.Order {
		case SortOrderAscending:
			return result
		case SortOrderDescending:
			return -result
		default:
			return 0
		}
	})
}
