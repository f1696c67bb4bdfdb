package workout

import (
	"fmt"
	"math"
)

// Variant describes one entry of the sensor code table.
type Variant struct {
	Code   string   `json:"code"`
	Kind   Kind     `json:"-"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
	build  func(data []float64) Training
}

// Arity is the number of readings the variant expects.
func (v Variant) Arity() int { return len(v.Fields) }

var variants = []Variant{
	{
		Code:   "SWM",
		Kind:   KindSwimming,
		Name:   KindSwimming.String(),
		Fields: []string{"strokes", "duration_h", "weight_kg", "pool_length_m", "pool_laps"},
		build: func(d []float64) Training {
			return NewSwimming(d[0], d[1], d[2], d[3], d[4])
		},
	},
	{
		Code:   "RUN",
		Kind:   KindRunning,
		Name:   KindRunning.String(),
		Fields: []string{"steps", "duration_h", "weight_kg"},
		build: func(d []float64) Training {
			return NewRunning(d[0], d[1], d[2])
		},
	},
	{
		Code:   "WLK",
		Kind:   KindSportsWalking,
		Name:   KindSportsWalking.String(),
		Fields: []string{"steps", "duration_h", "weight_kg", "height_cm"},
		build: func(d []float64) Training {
			return NewSportsWalking(d[0], d[1], d[2], d[3])
		},
	},
}

// Variants returns the registered sensor codes in table order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant finds the table entry for a sensor code.
func LookupVariant(code string) (Variant, bool) {
	for _, v := range variants {
		if v.Code == code {
			return v, true
		}
	}
	return Variant{}, false
}

// ReadPackage binds a sensor package to its workout variant. Readings are
// positional, see Variant.Fields for the order.
func ReadPackage(code string, data []float64) (Training, error) {
	v, ok := LookupVariant(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, code)
	}
	if len(data) != v.Arity() {
		return nil, fmt.Errorf("%w: %s expects %d readings, got %d", ErrArityMismatch, code, v.Arity(), len(data))
	}
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %s %s is not a finite number", ErrInvalidReading, code, v.Fields[i])
		}
	}
	// Duration divides every speed formula; height divides the walking one.
	if data[1] <= 0 {
		return nil, fmt.Errorf("%w: %s duration must be positive, got %g", ErrInvalidReading, code, data[1])
	}
	if v.Kind == KindSportsWalking && data[3] <= 0 {
		return nil, fmt.Errorf("%w: %s height must be positive, got %g", ErrInvalidReading, code, data[3])
	}
	return v.build(data), nil
}

// Calculate reads a sensor package and summarizes it.
func Calculate(code string, data []float64) (InfoMessage, error) {
	t, err := ReadPackage(code, data)
	if err != nil {
		return InfoMessage{}, err
	}
	info := ShowTrainingInfo(t)
	// Finite readings can still overflow, e.g. a huge step count over a tiny duration.
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"distance", info.Distance},
		{"speed", info.Speed},
		{"calories", info.Calories},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return InfoMessage{}, fmt.Errorf("%w: %s %s overflows", ErrInvalidReading, code, f.name)
		}
	}
	return info, nil
}

// Package is a raw sensor package: a code and its positional readings.
type Package struct {
	Code string
	Data []float64
}

// DemoPackages returns the sample packages printed by the demo driver.
func DemoPackages() []Package {
	return []Package{
		{Code: "SWM", Data: []float64{720, 1, 80, 25, 40}},
		{Code: "RUN", Data: []float64{15000, 1, 75}},
		{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
	}
}
