package scoring

import (
	"fmt"
	"math"
)

// ComponentKeys are the per-phase strokes-gained columns, in display order.
var ComponentKeys = []string{"sg_offtee", "sg_approach", "sg_short", "sg_putting"}

const TotalKey = "strokes_gained_total"

// Reconcile takes the allow-listed fields of a partial round update and
// returns the fields to persist. When any strokes-gained component is present
// and the total is absent, the total is computed as the one-decimal rounded
// sum of the present components, absent ones counting as zero. An explicitly
// supplied total is never overridden. hole_count must be 9 or 18 when set.
// The input map is not modified.
func Reconcile(fields map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}

	if holeCount, ok := out["hole_count"]; ok && holeCount != nil {
		n, numeric := asNumber(holeCount)
		if !numeric || (n != 9 && n != 18) {
			return nil, fmt.Errorf("hole_count must be 9 or 18")
		}
	}

	anyComponents := false
	for _, key := range ComponentKeys {
		if _, ok := out[key]; ok {
			anyComponents = true
			break
		}
	}
	if _, totalProvided := out[TotalKey]; anyComponents && !totalProvided {
		sum := 0.0
		for _, key := range ComponentKeys {
			if n, ok := asNumber(out[key]); ok {
				sum += n
			}
		}
		out[TotalKey] = Round1(sum)
	}
	return out, nil
}

// ComponentSum is the read-only helper the edit view uses: the one-decimal
// sum of the four phase values, nil counting as zero.
func ComponentSum(offtee, approach, short, putting *float64) float64 {
	sum := 0.0
	for _, v := range []*float64{offtee, approach, short, putting} {
		if v != nil {
			sum += *v
		}
	}
	return Round1(sum)
}

// Delta surfaces the divergence between the component sum and a stored total.
// It never corrects anything; a nil total reads as zero delta.
func Delta(componentSum float64, total *float64) float64 {
	if total == nil {
		return 0
	}
	d := Round1(componentSum - *total)
	if d == 0 {
		// normalize -0
		return 0
	}
	return d
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
