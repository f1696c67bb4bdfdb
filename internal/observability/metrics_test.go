package observability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/claude/fittracker/internal/workout"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordCalculation verifies the per-kind counter moves on each calculation.
func TestRecordCalculation(t *testing.T) {
	info, err := workout.Calculate("SWM", []float64{720, 1, 80, 25, 40})
	if err != nil {
		t.Fatal(err)
	}
	before := testutil.ToFloat64(calculationsTotal.WithLabelValues("Swimming"))
	RecordCalculation(info)
	after := testutil.ToFloat64(calculationsTotal.WithLabelValues("Swimming"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

// TestErrorReason verifies wrapped calculation errors map to stable labels.
func TestErrorReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", workout.ErrUnknownVariant), "unknown_variant"},
		{fmt.Errorf("x: %w", workout.ErrArityMismatch), "arity_mismatch"},
		{fmt.Errorf("x: %w", workout.ErrInvalidReading), "invalid_reading"},
		{errors.New("boom"), "other"},
	}
	for _, tc := range cases {
		if got := ErrorReason(tc.err); got != tc.want {
			t.Errorf("ErrorReason(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

// TestRecordCalculationError verifies rejected packages are counted by reason.
func TestRecordCalculationError(t *testing.T) {
	_, err := workout.ReadPackage("XYZ", nil)
	before := testutil.ToFloat64(calculationErrorsTotal.WithLabelValues("unknown_variant"))
	RecordCalculationError(err)
	after := testutil.ToFloat64(calculationErrorsTotal.WithLabelValues("unknown_variant"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}
