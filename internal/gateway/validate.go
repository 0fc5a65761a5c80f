package gateway

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
)

// Plausibility bounds for upstream payloads. Anything outside fails
// fast as ErrInvalidData and is never cached.
const (
	maxPlausiblePrice     = 1_000_000.0 // 단일 주가 상한
	maxPlausibleChangePct = 60.0        // 일일 변동률 상한 (%)
	maxPlausibleVIX       = 200.0
)

// validatePayload checks kind-specific bounds on a fetched payload
func validatePayload(kind contracts.DataKind, payload any) error {
	switch kind {
	case contracts.KindQuote:
		quote, ok := payload.(*contracts.Quote)
		if !ok {
			return fmt.Errorf("%w: quote payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateQuote(quote)

	case contracts.KindHistory:
		history, ok := payload.(*contracts.PriceHistory)
		if !ok {
			return fmt.Errorf("%w: history payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateHistory(history)

	case contracts.KindIndicators:
		ind, ok := payload.(*contracts.TechnicalIndicators)
		if !ok {
			return fmt.Errorf("%w: indicators payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateIndicators(ind)

	case contracts.KindFundamentals:
		fund, ok := payload.(*contracts.FundamentalRatios)
		if !ok {
			return fmt.Errorf("%w: fundamentals payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateFundamentals(fund)

	case contracts.KindMacro:
		macro, ok := payload.(*contracts.MacroSnapshot)
		if !ok {
			return fmt.Errorf("%w: macro payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateMacro(macro)

	case contracts.KindSentiment:
		sent, ok := payload.(*contracts.SentimentSnapshot)
		if !ok {
			return fmt.Errorf("%w: sentiment payload has type %T", contracts.ErrInvalidData, payload)
		}
		return validateSentiment(sent)
	}

	return fmt.Errorf("%w: unknown data kind %q", contracts.ErrInvalidInput, kind)
}

func validateQuote(q *contracts.Quote) error {
	if q.Price <= 0 || q.Price > maxPlausiblePrice {
		return fmt.Errorf("%w: price %.4f out of bounds", contracts.ErrInvalidData, q.Price)
	}
	if q.Volume < 0 {
		return fmt.Errorf("%w: negative volume %.0f", contracts.ErrInvalidData, q.Volume)
	}
	if q.ChangePct < -maxPlausibleChangePct || q.ChangePct > maxPlausibleChangePct {
		return fmt.Errorf("%w: change %.2f%% implausible", contracts.ErrInvalidData, q.ChangePct)
	}
	// OHLC ordering
	if q.High > 0 || q.Low > 0 {
		if q.High < q.Low {
			return fmt.Errorf("%w: high %.4f < low %.4f", contracts.ErrInvalidData, q.High, q.Low)
		}
		if q.High < q.Price {
			return fmt.Errorf("%w: high %.4f < close %.4f", contracts.ErrInvalidData, q.High, q.Price)
		}
	}
	return nil
}

func validateHistory(h *contracts.PriceHistory) error {
	if len(h.Points) == 0 {
		return fmt.Errorf("%w: empty price history", contracts.ErrInvalidData)
	}

	for i, p := range h.Points {
		if p.Close <= 0 || p.Close > maxPlausiblePrice {
			return fmt.Errorf("%w: point %d close %.4f out of bounds", contracts.ErrInvalidData, i, p.Close)
		}
		if p.Volume < 0 {
			return fmt.Errorf("%w: point %d negative volume", contracts.ErrInvalidData, i)
		}
		if p.High < p.Low {
			return fmt.Errorf("%w: point %d high < low", contracts.ErrInvalidData, i)
		}
		if p.High < p.Close || p.Low > p.Close {
			return fmt.Errorf("%w: point %d close outside high/low", contracts.ErrInvalidData, i)
		}
	}
	return nil
}

func validateIndicators(ind *contracts.TechnicalIndicators) error {
	if ind.Price <= 0 || ind.Price > maxPlausiblePrice {
		return fmt.Errorf("%w: price %.4f out of bounds", contracts.ErrInvalidData, ind.Price)
	}
	if ind.RSI != nil && (*ind.RSI < 0 || *ind.RSI > 100) {
		return fmt.Errorf("%w: rsi %.2f outside [0,100]", contracts.ErrInvalidData, *ind.RSI)
	}
	if ind.StochK != nil && (*ind.StochK < 0 || *ind.StochK > 100) {
		return fmt.Errorf("%w: stoch %%K %.2f outside [0,100]", contracts.ErrInvalidData, *ind.StochK)
	}
	if ind.Volume != nil && *ind.Volume < 0 {
		return fmt.Errorf("%w: negative volume", contracts.ErrInvalidData)
	}
	if ind.ATR != nil && *ind.ATR < 0 {
		return fmt.Errorf("%w: negative ATR", contracts.ErrInvalidData)
	}
	if ind.BollingerUpper != nil && ind.BollingerLower != nil && *ind.BollingerUpper < *ind.BollingerLower {
		return fmt.Errorf("%w: bollinger upper < lower", contracts.ErrInvalidData)
	}
	return nil
}

func validateFundamentals(f *contracts.FundamentalRatios) error {
	if f.MarketCap != nil && *f.MarketCap < 0 {
		return fmt.Errorf("%w: negative market cap", contracts.ErrInvalidData)
	}
	if f.DebtEquity != nil && *f.DebtEquity < 0 {
		return fmt.Errorf("%w: negative debt/equity", contracts.ErrInvalidData)
	}
	return nil
}

func validateMacro(m *contracts.MacroSnapshot) error {
	if m.VolatilityIndex != nil && (*m.VolatilityIndex <= 0 || *m.VolatilityIndex > maxPlausibleVIX) {
		return fmt.Errorf("%w: volatility index %.2f out of bounds", contracts.ErrInvalidData, *m.VolatilityIndex)
	}
	if m.BenchmarkChangePct != nil &&
		(*m.BenchmarkChangePct < -maxPlausibleChangePct || *m.BenchmarkChangePct > maxPlausibleChangePct) {
		return fmt.Errorf("%w: benchmark change %.2f%% implausible", contracts.ErrInvalidData, *m.BenchmarkChangePct)
	}
	return nil
}

var validCategories = map[string]bool{
	"": true, // missing is allowed, scorers default it
	"strong_buy": true, "buy": true, "hold": true, "sell": true, "strong_sell": true,
	"positive": true, "neutral": true, "negative": true,
	"bullish": true, "bearish": true,
}

func validateSentiment(s *contracts.SentimentSnapshot) error {
	for name, v := range map[string]string{
		"analyst_rating":      s.AnalystRating,
		"insider_sentiment":   s.InsiderSentiment,
		"news_sentiment":      s.NewsSentiment,
		"technical_sentiment": s.TechnicalSentiment,
	} {
		if !validCategories[v] {
			return fmt.Errorf("%w: %s has unknown category %q", contracts.ErrInvalidData, name, v)
		}
	}
	return nil
}
