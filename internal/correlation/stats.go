package correlation

import (
	"math"
	"sort"
)

// Pearson computes the linear correlation coefficient of two equal
// length series. 분산이 0이면 0 반환.
func Pearson(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	meanA := mean(a)
	meanB := mean(b)

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		// 상수 시계열 특례: 둘 다 상수면 완전 동행으로 본다
		if varA == 0 && varB == 0 {
			return 1
		}
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

// Spearman computes the rank correlation: Pearson over rank vectors,
// with ties assigned their average rank.
func Spearman(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return Pearson(ranks(a), ranks(b))
}

// Beta = Cov(asset, benchmark) / Var(benchmark)
// 벤치마크 분산이 0이면 0 반환
func Beta(asset, benchmark []float64) float64 {
	if len(asset) != len(benchmark) || len(asset) == 0 {
		return 0
	}

	meanAsset := mean(asset)
	meanBench := mean(benchmark)

	var cov, varBench float64
	for i := range asset {
		da := asset[i] - meanAsset
		db := benchmark[i] - meanBench
		cov += da * db
		varBench += db * db
	}

	if varBench == 0 {
		return 0
	}
	return cov / varBench
}

// ranks returns average ranks (1-based), ties averaged
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranked := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// [i, j]는 동률 구간: 평균 순위 부여
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[idx[k]] = avgRank
		}
		i = j + 1
	}
	return ranked
}

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
