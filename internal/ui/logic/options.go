package logic

import (
	"math"

	"sportseek/internal/request"
	"sportseek/internal/ui/state"
)

// WeightStep is the increment used by the weight sliders
const WeightStep = 0.1

// AdjustOption changes one field of s by delta steps. Sort cycles, PageRank
// toggles on any non-zero delta, count stays >= 1 and weights stay >= 0.
func AdjustOption(s request.Settings, field state.OptionField, delta int) request.Settings {
	if delta == 0 {
		return s
	}

	switch field {
	case state.OptionSort:
		for i := 0; i < abs(delta); i++ {
			if delta > 0 {
				s.SortMethod = s.SortMethod.Next()
			} else {
				s.SortMethod = s.SortMethod.Prev()
			}
		}
	case state.OptionPageRank:
		s.UsePageRank = !s.UsePageRank
	case state.OptionCount:
		s.Count += delta
		if s.Count < 1 {
			s.Count = 1
		}
	case state.OptionWeightRelevance:
		s.WeightRelevance = stepWeight(s.WeightRelevance, delta)
	case state.OptionWeightScore:
		s.WeightScore = stepWeight(s.WeightScore, delta)
	case state.OptionWeightTime:
		s.WeightTime = stepWeight(s.WeightTime, delta)
	}
	return s
}

// stepWeight rounds to one decimal so repeated steps don't accumulate drift
func stepWeight(v float64, delta int) float64 {
	v = math.Round((v+float64(delta)*WeightStep)*10) / 10
	if v < 0 {
		return 0
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
