package telemetry

import (
	"fmt"
	"math"
)

// Column names written by the lander simulator.
const (
	ColAltitude  = "altitude"
	ColVelocity  = "velocity"
	ColReward    = "reward"
	ColAvgReward = "avg_reward"
	ColFuel      = "fuel mass remaining"
)

// Sample is one simulation step of lander telemetry.
type Sample struct {
	Index     int // data row in the source file
	Altitude  float64
	Velocity  float64
	Reward    float64
	AvgReward float64
	Fuel      float64
}

// SamplesFromTable extracts lander samples from t. avg_reward is optional;
// when absent it is the expanding mean of reward over the whole table.
func SamplesFromTable(t *Table) ([]Sample, error) {
	alt, err := t.Floats(ColAltitude)
	if err != nil {
		return nil, err
	}
	vel, err := t.Floats(ColVelocity)
	if err != nil {
		return nil, err
	}
	rew, err := t.Floats(ColReward)
	if err != nil {
		return nil, err
	}
	fuel, err := t.Floats(ColFuel)
	if err != nil {
		return nil, err
	}

	var avg []float64
	if t.Has(ColAvgReward) {
		if avg, err = t.Floats(ColAvgReward); err != nil {
			return nil, err
		}
	} else {
		avg = ExpandingMean(rew)
	}

	out := make([]Sample, t.Len())
	for i := range out {
		out[i] = Sample{
			Index:     i,
			Altitude:  alt[i],
			Velocity:  vel[i],
			Reward:    rew[i],
			AvgReward: avg[i],
			Fuel:      fuel[i],
		}
	}
	return out, nil
}

// LoadSamples reads a simulator result CSV from path.
func LoadSamples(path string) ([]Sample, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	s, err := SamplesFromTable(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Partition splits samples into surface hits (altitude <= 0) and fuel
// outages (altitude > 0). Rows without an altitude belong to neither.
// Order and Index are preserved in both halves.
func Partition(samples []Sample) (surfaceHits, fuelOutages []Sample) {
	for _, s := range samples {
		switch {
		case math.IsNaN(s.Altitude):
			continue
		case s.Altitude <= 0:
			surfaceHits = append(surfaceHits, s)
		default:
			fuelOutages = append(fuelOutages, s)
		}
	}
	return surfaceHits, fuelOutages
}

// Series is a column view over a sample slice.
type Series struct {
	X []float64
	Y []float64
}

// Extract projects one field of samples against their source index.
func Extract(samples []Sample, field func(Sample) float64) Series {
	s := Series{X: make([]float64, len(samples)), Y: make([]float64, len(samples))}
	for i, smp := range samples {
		s.X[i] = float64(smp.Index)
		s.Y[i] = field(smp)
	}
	return s
}

// Field accessors for Extract.
func Velocity(s Sample) float64 { return s.Velocity }
func Reward(s Sample) float64 { return s.Reward }
func AvgReward(s Sample) float64 { return s.AvgReward }
func Fuel(s Sample) float64 { return s.Fuel }
