package scoring

// Band is one row of an ordered threshold table: a value below Max
// (exclusive) that did not match an earlier row earns Points.
type Band struct {
	Name   string
	Max    float64
	Points float64
}

// BandTable is an ordered threshold table with a fallback row.
// 규칙 테이블은 중첩 조건문 대신 여기로
type BandTable struct {
	Bands []Band
	Else  Band
}

// Lookup returns the first band whose Max exceeds v, or the fallback
func (t BandTable) Lookup(v float64) Band {
	for _, b := range t.Bands {
		if v < b.Max {
			return b
		}
	}
	return t.Else
}

// CategoryTable maps a categorical input to points
type CategoryTable struct {
	Points  map[string]float64
	Default float64 // neutral mid-value for missing/unknown
	Name    string
}

// Lookup returns the points for a category. The second return reports
// whether the category was present in the table.
func (t CategoryTable) Lookup(category string) (float64, bool) {
	if points, ok := t.Points[category]; ok {
		return points, true
	}
	return t.Default, false
}

// Fixed rule tables (policy constants, reviewed by hand — 머신러닝 아님)

// perTable: P/E 밸류에이션 밴드, unknown은 12점 중립
var perTable = BandTable{
	Bands: []Band{
		{Name: "deep_value", Max: 10, Points: 25},
		{Name: "value", Max: 15, Points: 20},
		{Name: "fair", Max: 25, Points: 15},
		{Name: "expensive", Max: 40, Points: 8},
	},
	Else: Band{Name: "speculative", Points: 2},
}

const perUnknownPoints = 12

// roeTable: 수익성 밴드 (%)
var roeTable = BandTable{
	Bands: []Band{
		{Name: "loss_making", Max: 0, Points: 0},
		{Name: "thin", Max: 5, Points: 5},
		{Name: "modest", Max: 10, Points: 10},
		{Name: "solid", Max: 15, Points: 15},
		{Name: "strong", Max: 20, Points: 20},
	},
	Else: Band{Name: "exceptional", Points: 25},
}

const roeUnknownPoints = 12

// debtEquityTable: 레버리지 밴드, 낮을수록 좋음
var debtEquityTable = BandTable{
	Bands: []Band{
		{Name: "minimal_leverage", Max: 0.3, Points: 20},
		{Name: "conservative", Max: 0.7, Points: 16},
		{Name: "moderate", Max: 1.2, Points: 12},
		{Name: "elevated", Max: 2.0, Points: 6},
	},
	Else: Band{Name: "high_leverage", Points: 2},
}

const debtEquityUnknownPoints = 10

// growthTable: 이익 성장률 밴드 (% YoY)
var growthTable = BandTable{
	Bands: []Band{
		{Name: "contracting", Max: -10, Points: 0},
		{Name: "declining", Max: 0, Points: 4},
		{Name: "slow", Max: 10, Points: 8},
		{Name: "growing", Max: 20, Points: 12},
	},
	Else: Band{Name: "fast_growth", Points: 15},
}

const growthUnknownPoints = 8

// marketCapTable: 규모 밴드 (USD)
var marketCapTable = BandTable{
	Bands: []Band{
		{Name: "micro_cap", Max: 300e6, Points: 2},
		{Name: "small_cap", Max: 2e9, Points: 5},
		{Name: "mid_cap", Max: 10e9, Points: 8},
		{Name: "large_cap", Max: 200e9, Points: 12},
	},
	Else: Band{Name: "mega_cap", Points: 15},
}

const marketCapUnknownPoints = 8

// analystTable: 애널리스트 등급 맵
var analystTable = CategoryTable{
	Name:    "analyst_rating",
	Default: 12,
	Points: map[string]float64{
		"strong_buy":  25,
		"buy":         20,
		"hold":        12,
		"sell":        5,
		"strong_sell": 0,
	},
}

// insiderTable: 내부자 거래 센티먼트 맵
var insiderTable = CategoryTable{
	Name:    "insider_sentiment",
	Default: 10,
	Points: map[string]float64{
		"positive": 20,
		"neutral":  10,
		"negative": 2,
	},
}

// newsTable: 뉴스 센티먼트 맵
var newsTable = CategoryTable{
	Name:    "news_sentiment",
	Default: 10,
	Points: map[string]float64{
		"positive": 20,
		"neutral":  10,
		"negative": 2,
	},
}

// technicalSentimentTable: 기술적 센티먼트 맵
var technicalSentimentTable = CategoryTable{
	Name:    "technical_sentiment",
	Default: 8,
	Points: map[string]float64{
		"bullish": 15,
		"neutral": 8,
		"bearish": 2,
	},
}

// relativeStrengthTable: 벤치마크 대비 상대강도 밴드 (%)
var relativeStrengthTable = BandTable{
	Bands: []Band{
		{Name: "deep_laggard", Max: -10, Points: 1},
		{Name: "laggard", Max: -5, Points: 4},
		{Name: "slight_laggard", Max: 0, Points: 8},
		{Name: "inline", Max: 5, Points: 12},
		{Name: "outperformer", Max: 10, Points: 15},
	},
	Else: Band{Name: "strong_outperformer", Points: 20},
}

const relativeStrengthUnknownPoints = 10

// clamp100 bounds a score to [0, 100]
func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
