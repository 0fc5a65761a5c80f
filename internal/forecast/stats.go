package forecast

import "math"

// =============================================================================
// 통계 유틸리티
// =============================================================================

// mean 평균 계산
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev 표준편차 계산 (표본)
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// percentile 백분위수 계산 (오름차순 정렬된 입력, 선형 보간)
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// rSquared 결정계수 계산
// SStot이 0이면 (상수 시계열) 0 반환
func rSquared(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}

	m := mean(actual)
	var ssRes, ssTot float64
	for i := range actual {
		res := actual[i] - predicted[i]
		ssRes += res * res
		tot := actual[i] - m
		ssTot += tot * tot
	}

	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// clampFloat v를 [lo, hi]로 제한
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
