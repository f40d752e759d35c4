package usecase

import (
	"math/rand/v2"
)

// MaxSampledGoals is the highest goal count a simulated match can produce.
// A goal limit below it would let the simulator write unreachable scores.
const MaxSampledGoals = 6

// goalWeights is the probability of a team scoring 0..MaxSampledGoals goals
// in a simulated match.
var goalWeights = []float64{0.30, 0.25, 0.20, 0.15, 0.05, 0.03, 0.02}

// goalThresholds holds the cumulative form of goalWeights.
var goalThresholds = cumulative(goalWeights)

// ScoreSampler draws one team's goal count for a simulated match.
type ScoreSampler interface {
	SampleGoals() int
}

// WeightedSampler draws goals from the fixed weight table. It is not safe
// for concurrent use; give every goroutine its own sampler.
type WeightedSampler struct {
	rng *rand.Rand
}

func NewWeightedSampler(seed uint64) *WeightedSampler {
	return &WeightedSampler{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *WeightedSampler) SampleGoals() int {
	return pickGoals(goalThresholds, s.rng.Float64())
}

// pickGoals returns the smallest goal count whose cumulative weight is at
// least u. Rounding can leave u above the last threshold, which maps to 0.
func pickGoals(thresholds []float64, u float64) int {
	for goals, threshold := range thresholds {
		if u <= threshold {
			return goals
		}
	}
	return 0
}

func cumulative(weights []float64) []float64 {
	out := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		sum += w
		out[i] = sum
	}
	return out
}

// SamplerFunc adapts a plain function to ScoreSampler.
type SamplerFunc func() int

func (f SamplerFunc) SampleGoals() int {
	return f()
}
