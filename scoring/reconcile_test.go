package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileAutoTotal(t *testing.T) {
	fields := map[string]interface{}{
		"sg_offtee":   1.2,
		"sg_approach": -0.5,
		"sg_short":    0.3,
		"sg_putting":  0.1,
	}
	out, err := Reconcile(fields)
	assert.NoError(t, err)
	assert.Equal(t, 1.1, out[TotalKey])
}

func TestReconcilePartialComponents(t *testing.T) {
	// absent components count as zero
	out, err := Reconcile(map[string]interface{}{"sg_putting": 0.25})
	assert.NoError(t, err)
	assert.Equal(t, 0.3, out[TotalKey])
}

func TestReconcileExplicitTotalWins(t *testing.T) {
	fields := map[string]interface{}{
		"sg_offtee":            1.2,
		"sg_approach":          -0.5,
		"sg_short":             0.3,
		"sg_putting":           0.1,
		"strokes_gained_total": 5.0,
	}
	out, err := Reconcile(fields)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, out[TotalKey])
}

func TestReconcileNoComponentsNoTotal(t *testing.T) {
	out, err := Reconcile(map[string]interface{}{"course_name": "Pebble Beach"})
	assert.NoError(t, err)
	_, ok := out[TotalKey]
	assert.False(t, ok)
}

func TestReconcileHoleCount(t *testing.T) {
	for _, valid := range []float64{9, 18} {
		out, err := Reconcile(map[string]interface{}{"hole_count": valid})
		assert.NoError(t, err)
		assert.Equal(t, valid, out["hole_count"])
	}
	for _, invalid := range []float64{12, 0, -9} {
		_, err := Reconcile(map[string]interface{}{"hole_count": invalid})
		assert.Error(t, err)
	}
	// explicit null clears the stored count and passes validation
	out, err := Reconcile(map[string]interface{}{"hole_count": nil})
	assert.NoError(t, err)
	assert.Nil(t, out["hole_count"])
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	fields := map[string]interface{}{"sg_offtee": 1.0}
	_, err := Reconcile(fields)
	assert.NoError(t, err)
	_, ok := fields[TotalKey]
	assert.False(t, ok)
}

func TestComponentSumAndDelta(t *testing.T) {
	offtee, approach, short, putting := 1.2, -0.5, 0.3, 0.1
	sum := ComponentSum(&offtee, &approach, &short, &putting)
	assert.Equal(t, 1.1, sum)

	total := 1.1
	assert.Equal(t, 0.0, Delta(sum, &total))

	total = 2.0
	assert.Equal(t, -0.9, Delta(sum, &total))

	assert.Equal(t, 0.0, Delta(sum, nil))

	// nil components count as zero
	assert.Equal(t, 0.1, ComponentSum(nil, nil, nil, &putting))
}
