// SPDX-License-Identifier: MIT

package model

// Accumulator is the minimal sufficient statistic for rolling signal means:
// an event count plus one running sum per signal. Raw events are never
// retained, and no retraction operation exists.
type Accumulator struct {
	Count         int64
	SumFriction   float64
	SumHesitation float64
	SumPace       float64
}

// Snapshot is a point-in-time view of the rolling metrics.
type Snapshot struct {
	EventsCount       int64   `json:"events_count"`
	AverageFriction   float64 `json:"average_friction"`
	AverageHesitation float64 `json:"average_hesitation"`
	AveragePace       float64 `json:"average_pace"`
}

// Fold appends one observation. Callers must validate the inputs first;
// Fold itself never fails.
func (a *Accumulator) Fold(friction, hesitation, pace float64) {
	a.Count++
	a.SumFriction += friction
	a.SumHesitation += hesitation
	a.SumPace += pace
}

// Snapshot computes the current rolling means. With zero events every average
// reports 0.0 rather than NaN, so the result is always well-defined.
func (a *Accumulator) Snapshot() Snapshot {
	if a.Count == 0 {
		return Snapshot{}
	}
	n := float64(a.Count)
	return Snapshot{
		EventsCount:       a.Count,
		AverageFriction:   a.SumFriction / n,
		AverageHesitation: a.SumHesitation / n,
		AveragePace:       a.SumPace / n,
	}
}
