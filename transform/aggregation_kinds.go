package transform

import (
	"hermannm.dev/enumnames"
)

// AggregationKind is one of the recognized ways to reduce a group's numeric field values to a
// single number.
type AggregationKind int8

const (
	AggregationSum AggregationKind = iota + 1
	AggregationAverage
	AggregationMin
	AggregationMax
	AggregationCount
)

var aggregationKindMap = enumnames.NewMap(map[AggregationKind]string{
	AggregationSum:     "sum",
	AggregationAverage: "avg",
	AggregationMin:     "min",
	AggregationMax:     "max",
	AggregationCount:   "count",
})

func (kind AggregationKind) IsValid() bool {
	return aggregationKindMap.ContainsEnumValue(kind)
}

func (kind AggregationKind) String() string {
	return aggregationKindMap.GetNameOrFallback(kind, "INVALID_AGGREGATION_KIND")
}

func (kind AggregationKind) MarshalJSON() ([]byte, error) {
	return aggregationKindMap.MarshalToNameJSON(kind)
}

func (kind *AggregationKind) UnmarshalJSON(bytes []byte) error {
	return aggregationKindMap.UnmarshalFromNameJSON(bytes, kind)
}
