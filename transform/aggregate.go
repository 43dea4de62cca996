package transform

import "math"

// Aggregate reduces a list of numeric field values to a single number, according to the given
// aggregation kind.
//
// Values equal to 0 are filtered out before aggregating: since missing fields resolve to 0 (see
// NumericField), a legitimately zero-valued field is indistinguishable from an absent one, and
// both are excluded. A consequence that callers must be prepared for is the result of reducing an
// empty value list:
//   - sum over no values is 0
//   - avg over no values is NaN
//   - min/max over no values is +Inf/-Inf (the identity of an empty reduction)
//
// An unrecognized aggregation kind returns 0, without error.
func Aggregate(values []float64, kind AggregationKind) float64 {
	nonZero := make([]float64, 0, len(values))
	for _, value := range values {
		if value != 0 {
			nonZero = append(nonZero, value)
		}
	}

	switch kind {
	case AggregationSum:
		return sum(nonZero)
	case AggregationAverage:
		return sum(nonZero) / float64(len(nonZero))
	case AggregationMin:
		min := math.Inf(1)
		for _, value := range nonZero {
			if value < min {
				min = value
			}
		}
		return min
	case AggregationMax:
		max := math.Inf(-1)
		for _, value := range nonZero {
			if value > max {
				max = value
			}
		}
		return max
	case AggregationCount:
		return float64(len(nonZero))
	default:
		return 0
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, value := range values {
		total += value
	}
	return total
}
