package observability

import (
	"errors"

	"github.com/claude/fittracker/internal/workout"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	calculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Name:      "calculations_total",
		Help:      "Workout packages calculated, by training type.",
	}, []string{"kind"})
	calculationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Name:      "calculation_errors_total",
		Help:      "Workout packages rejected, by reason.",
	}, []string{"reason"})
	caloriesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Name:      "calories_kcal",
		Help:      "Distribution of calories spent per calculated workout.",
		Buckets:   []float64{50, 100, 200, 300, 500, 750, 1000, 1500, 2500},
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(calculationsTotal, calculationErrorsTotal, caloriesHistogram)
}

// RecordCalculation counts a successful calculation.
func RecordCalculation(info workout.InfoMessage) {
	calculationsTotal.WithLabelValues(info.TrainingType).Inc()
	caloriesHistogram.WithLabelValues(info.TrainingType).Observe(info.Calories)
}

// RecordCalculationError counts a rejected package under its reason.
func RecordCalculationError(err error) {
	calculationErrorsTotal.WithLabelValues(ErrorReason(err)).Inc()
}

// ErrorReason maps calculation errors to a metric label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, workout.ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, workout.ErrArityMismatch):
		return "arity_mismatch"
	case errors.Is(err, workout.ErrInvalidReading):
		return "invalid_reading"
	}
	return "other"
}
