// Package workout turns raw sensor packages into workout summaries.
package workout

import (
	"errors"
	"fmt"
	"math"
)

const (
	// LenStep is the length of one step, in meters.
	LenStep = 0.65
	// LenStroke is the distance covered by one swimming stroke, in meters.
	LenStroke = 1.38
	// MInKm is meters per kilometer.
	MInKm = 1000
	// MinInHour is minutes per hour.
	MinInHour = 60
)

var (
	ErrUnknownVariant = errors.New("unknown workout type")
	ErrArityMismatch  = errors.New("wrong number of readings")
	ErrInvalidReading = errors.New("invalid reading")
)

// Kind identifies one of the supported workout variants.
type Kind int

const (
	KindRunning Kind = iota + 1
	KindSportsWalking
	KindSwimming
)

// String returns the display name used in rendered messages.
func (k Kind) String() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindSportsWalking:
		return "SportsWalking"
	case KindSwimming:
		return "Swimming"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the three-letter sensor code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindRunning:
		return "RUN"
	case KindSportsWalking:
		return "WLK"
	case KindSwimming:
		return "SWM"
	}
	return ""
}

// Training is a workout session bound from a sensor package.
type Training interface {
	Kind() Kind
	// Duration is the session length in hours.
	Duration() float64
	// Distance is the covered distance in km.
	Distance() float64
	// MeanSpeed is the average speed in km/h.
	MeanSpeed() float64
	// SpentCalories is the energy spent in kcal.
	SpentCalories() float64
}

// base holds the readings shared by every variant.
type base struct {
	Action  float64
	Hours   float64
	Weight  float64
	stepLen float64
}

func (b base) Duration() float64 { return b.Hours }

func (b base) Distance() float64 {
	return b.Action * b.stepLen / MInKm
}

func (b base) MeanSpeed() float64 {
	return b.Distance() / b.Hours
}

// Running is a run measured in steps.
type Running struct {
	base
}

// NewRunning builds a run from step count, duration in hours and weight in kg.
func NewRunning(action, duration, weight float64) *Running {
	return &Running{base{Action: action, Hours: duration, Weight: weight, stepLen: LenStep}}
}

func (r *Running) Kind() Kind { return KindRunning }

func (r *Running) SpentCalories() float64 {
	const (
		speedMultiplier = 18
		speedShift      = 20
	)
	return (speedMultiplier*r.MeanSpeed() - speedShift) * r.Weight / MInKm * r.Hours * MinInHour
}

// SportsWalking is a walk measured in steps, with the walker's height in cm.
type SportsWalking struct {
	base
	Height float64
}

// NewSportsWalking builds a walk from step count, duration, weight and height.
func NewSportsWalking(action, duration, weight, height float64) *SportsWalking {
	return &SportsWalking{
		base:   base{Action: action, Hours: duration, Weight: weight, stepLen: LenStep},
		Height: height,
	}
}

func (w *SportsWalking) Kind() Kind { return KindSportsWalking }

// SpentCalories floors speed²/height before weighting it. The floor is part
// of the published formula and is kept as is.
func (w *SportsWalking) SpentCalories() float64 {
	const (
		weightMultiplier = 0.035
		speedHeightRatio = 0.029
	)
	speed := w.MeanSpeed()
	return (weightMultiplier*w.Weight +
		floorDiv(math.Pow(speed, 2), w.Height)*speedHeightRatio*w.Weight) *
		w.Hours * MinInHour
}

// Swimming is a pool session measured in strokes.
type Swimming struct {
	base
	LengthPool float64 // m
	CountPool  float64 // laps
}

// NewSwimming builds a swim from stroke count, duration, weight, pool length
// in meters and the number of laps.
func NewSwimming(action, duration, weight, lengthPool, countPool float64) *Swimming {
	return &Swimming{
		base:       base{Action: action, Hours: duration, Weight: weight, stepLen: LenStroke},
		LengthPool: lengthPool,
		CountPool:  countPool,
	}
}

func (s *Swimming) Kind() Kind { return KindSwimming }

// MeanSpeed is derived from pool geometry, not from the stroke count.
func (s *Swimming) MeanSpeed() float64 {
	return s.LengthPool * s.CountPool / MInKm / s.Hours
}

func (s *Swimming) SpentCalories() float64 {
	const (
		speedShift       = 1.1
		weightMultiplier = 2
	)
	return (s.MeanSpeed() + speedShift) * weightMultiplier * s.Weight
}

// floorDiv is floor division on floats: the quotient is taken from the
// remainder and then snapped to the nearest integer, so a == q*b + mod(a, b).
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q++
	}
	return q
}
