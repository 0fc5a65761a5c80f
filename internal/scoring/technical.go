package scoring

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// TechnicalScorer maps pre-computed technical indicators to a 0-100
// sub-score with a fixed point table
// ⭐ SSOT: 기술적 점수 계산은 여기서만
type TechnicalScorer struct {
	logger *logger.Logger
}

// NewTechnicalScorer creates a new technical scorer
func NewTechnicalScorer(log *logger.Logger) *TechnicalScorer {
	return &TechnicalScorer{
		logger: log.WithField("scorer", "technical"),
	}
}

// Score computes the technical sub-score.
// Missing optional inputs earn a documented neutral point value and
// are recorded in Degraded; the pipeline never fails here.
func (s *TechnicalScorer) Score(set *contracts.SignalSet) contracts.SubScore {
	ind := set.Technical
	score := contracts.SubScore{Kind: contracts.ScoreTechnical}

	s.scoreRSI(ind, &score)
	s.scoreMACD(ind, &score)
	s.scoreBollinger(ind, &score)
	s.scoreMovingAverages(ind, &score)
	s.scoreVolume(ind, &score)

	var total float64
	for _, factor := range score.Factors {
		total += factor.Points
	}
	score.Value = clamp100(total)

	if score.IsDegraded() {
		s.logger.WithFields(map[string]interface{}{
			"symbol":   set.Symbol,
			"degraded": score.Degraded,
		}).Warn("Technical score computed with defaulted inputs")
	}

	return score
}

// scoreRSI: 과매수 >70 → 5, 과매도 <30 → 10, 균형권 45~55 → 20,
// 나머지 중립권 → 15
func (s *TechnicalScorer) scoreRSI(ind contracts.TechnicalIndicators, score *contracts.SubScore) {
	if ind.RSI == nil {
		score.Degraded = append(score.Degraded, "rsi")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "rsi", Points: 15, Detail: "missing, neutral default",
		})
		return
	}

	rsi := *ind.RSI
	var points float64
	var detail string
	switch {
	case rsi > 70:
		points, detail = 5, "overbought"
	case rsi < 30:
		points, detail = 10, "oversold"
	case rsi >= 45 && rsi <= 55:
		points, detail = 20, "balanced"
	default:
		points, detail = 15, "neutral"
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: "rsi", Points: points, Detail: fmt.Sprintf("%.1f %s", rsi, detail),
	})
}

// scoreMACD: 라인/시그널 정렬 기준 최대 25점
func (s *TechnicalScorer) scoreMACD(ind contracts.TechnicalIndicators, score *contracts.SubScore) {
	if ind.MACDLine == nil || ind.MACDSignal == nil {
		score.Degraded = append(score.Degraded, "macd")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "macd", Points: 12, Detail: "missing, neutral default",
		})
		return
	}

	line, signal := *ind.MACDLine, *ind.MACDSignal
	var points float64
	var detail string
	switch {
	case line > signal && line > 0:
		points, detail = 25, "bullish above zero"
	case line > signal:
		points, detail = 15, "bullish below zero"
	case line > 0:
		points, detail = 8, "bearish above zero"
	default:
		points, detail = 0, "bearish below zero"
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: "macd", Points: points, Detail: detail,
	})
}

// scoreBollinger: 밴드 내 위치 기준 최대 20점, 하단 근처가 유리
func (s *TechnicalScorer) scoreBollinger(ind contracts.TechnicalIndicators, score *contracts.SubScore) {
	if ind.BollingerUpper == nil || ind.BollingerLower == nil || *ind.BollingerUpper <= *ind.BollingerLower {
		score.Degraded = append(score.Degraded, "bollinger")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "bollinger", Points: 10, Detail: "missing, neutral default",
		})
		return
	}

	position := (ind.Price - *ind.BollingerLower) / (*ind.BollingerUpper - *ind.BollingerLower)
	var points float64
	var detail string
	switch {
	case position < 0:
		points, detail = 15, "below lower band"
	case position < 0.3:
		points, detail = 20, "near lower band"
	case position < 0.7:
		points, detail = 12, "mid band"
	case position <= 1.0:
		points, detail = 6, "near upper band"
	default:
		points, detail = 2, "above upper band"
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: "bollinger", Points: points, Detail: fmt.Sprintf("position %.2f, %s", position, detail),
	})
}

// scoreMovingAverages: 이동평균 정렬 기준 최대 15점
func (s *TechnicalScorer) scoreMovingAverages(ind contracts.TechnicalIndicators, score *contracts.SubScore) {
	if ind.MA20 == nil || ind.MA50 == nil {
		score.Degraded = append(score.Degraded, "moving_averages")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "moving_averages", Points: 7, Detail: "missing, neutral default",
		})
		return
	}

	price, ma20, ma50 := ind.Price, *ind.MA20, *ind.MA50
	var points float64
	var detail string
	switch {
	case ind.MA200 != nil && price > ma20 && ma20 > ma50 && ma50 > *ind.MA200:
		points, detail = 15, "full bullish alignment"
	case price > ma20 && ma20 > ma50:
		points, detail = 11, "short-term bullish alignment"
	case price > ma20:
		points, detail = 7, "above MA20"
	default:
		points, detail = 2, "below MA20"
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: "moving_averages", Points: points, Detail: detail,
	})
}

// scoreVolume: 거래량 확인 기준 최대 10점
func (s *TechnicalScorer) scoreVolume(ind contracts.TechnicalIndicators, score *contracts.SubScore) {
	if ind.Volume == nil || ind.VolumeSMA == nil || *ind.VolumeSMA <= 0 {
		score.Degraded = append(score.Degraded, "volume")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "volume", Points: 5, Detail: "missing, neutral default",
		})
		return
	}

	ratio := *ind.Volume / *ind.VolumeSMA
	var points float64
	var detail string
	switch {
	case ratio > 1.5:
		points, detail = 10, "strong confirmation"
	case ratio > 1.0:
		points, detail = 7, "above average"
	case ratio > 0.5:
		points, detail = 4, "below average"
	default:
		points, detail = 1, "thin volume"
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: "volume", Points: points, Detail: fmt.Sprintf("%.2fx average, %s", ratio, detail),
	})
}
