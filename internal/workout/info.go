package workout

import "fmt"

// InfoMessage is the computed summary of one training session.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Calories     float64 `json:"calories"`
}

// ShowTrainingInfo computes the summary of t.
func ShowTrainingInfo(t Training) InfoMessage {
	return InfoMessage{
		TrainingType: t.Kind().String(),
		Duration:     t.Duration(),
		Distance:     t.Distance(),
		Speed:        t.MeanSpeed(),
		Calories:     t.SpentCalories(),
	}
}

// Message renders the summary with three decimals on every figure.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(
		"Тип тренировки: %s; "+
			"Длительность: %.3f ч.; "+
			"Дистанция: %.3f км; "+
			"Ср. скорость: %.3f км/ч; "+
			"Потрачено ккал: %.3f.",
		m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories,
	)
}

// String implements fmt.Stringer.
func (m InfoMessage) String() string { return m.Message() }
