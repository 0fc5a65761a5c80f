package forecast

import "math"

// featureWindow 슬라이딩 윈도우 크기
const featureWindow = 10

// featureRow is one training example: a feature vector extracted from a
// sliding window of closes and the next close normalized by the window's
// last price.
type featureRow struct {
	features []float64
	label    float64
}

// extractFeatures builds the feature vector for one window.
// window의 마지막 가격 기준으로 정규화하여 스케일 독립성 확보
func extractFeatures(window []float64) []float64 {
	last := window[len(window)-1]
	if last == 0 {
		last = 1
	}

	features := make([]float64, 0, len(window)+4)

	// Normalized window
	for _, p := range window {
		features = append(features, p/last)
	}

	// Percent change over the window
	first := window[0]
	if first != 0 {
		features = append(features, (last-first)/first)
	} else {
		features = append(features, 0)
	}

	// Realized volatility of window returns
	returns := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		if window[i-1] != 0 {
			returns = append(returns, (window[i]-window[i-1])/window[i-1])
		}
	}
	features = append(features, stdDev(returns))

	// Momentum (단기 수익률)
	half := window[len(window)/2]
	if half != 0 {
		features = append(features, (last-half)/half)
	} else {
		features = append(features, 0)
	}

	// Price / window mean ratio
	m := mean(window)
	if m != 0 {
		features = append(features, last/m)
	} else {
		features = append(features, 1)
	}

	return features
}

// buildDataset slides a window over the close series and emits one row
// per position. Labels are next-close / window-last so the regressors
// learn relative moves.
func buildDataset(closes []float64, window int) []featureRow {
	if len(closes) <= window {
		return nil
	}

	rows := make([]featureRow, 0, len(closes)-window)
	for i := 0; i+window < len(closes); i++ {
		w := closes[i : i+window]
		last := w[len(w)-1]
		if last == 0 || math.IsNaN(last) {
			continue
		}
		rows = append(rows, featureRow{
			features: extractFeatures(w),
			label:    closes[i+window] / last,
		})
	}
	return rows
}
