package sentiment

import "testing"

const samplePage = `
<html><body>
<table class="sentiment-summary">
<tr><td>Analyst Rating</td><td>Strong Buy</td></tr>
<tr><td>Insider Sentiment</td><td>Neutral</td></tr>
<tr><td>News Sentiment</td><td>Positive</td></tr>
<tr><td>Technical Sentiment</td><td>Bullish</td></tr>
<tr><td>Relative Strength (3M)</td><td>+4.2%</td></tr>
</table>
</body></html>`

func TestParseSentimentHTML(t *testing.T) {
	snapshot, err := parseSentimentHTML(samplePage)
	if err != nil {
		t.Fatalf("parseSentimentHTML() error = %v", err)
	}

	if snapshot.AnalystRating != "strong_buy" {
		t.Errorf("AnalystRating = %q, want %q", snapshot.AnalystRating, "strong_buy")
	}
	if snapshot.InsiderSentiment != "neutral" {
		t.Errorf("InsiderSentiment = %q, want %q", snapshot.InsiderSentiment, "neutral")
	}
	if snapshot.NewsSentiment != "positive" {
		t.Errorf("NewsSentiment = %q, want %q", snapshot.NewsSentiment, "positive")
	}
	if snapshot.TechnicalSentiment != "bullish" {
		t.Errorf("TechnicalSentiment = %q, want %q", snapshot.TechnicalSentiment, "bullish")
	}
	if snapshot.RelativeStrength == nil || *snapshot.RelativeStrength != 4.2 {
		t.Errorf("RelativeStrength = %v, want 4.2", snapshot.RelativeStrength)
	}
}

func TestParseSentimentHTMLMissingRows(t *testing.T) {
	page := `<html><body><table class="sentiment-summary">
	<tr><td>News Sentiment</td><td>Negative</td></tr>
	</table></body></html>`

	snapshot, err := parseSentimentHTML(page)
	if err != nil {
		t.Fatalf("parseSentimentHTML() error = %v", err)
	}

	if snapshot.NewsSentiment != "negative" {
		t.Errorf("NewsSentiment = %q, want %q", snapshot.NewsSentiment, "negative")
	}
	if snapshot.AnalystRating != "" {
		t.Errorf("AnalystRating = %q, want empty", snapshot.AnalystRating)
	}
	if snapshot.RelativeStrength != nil {
		t.Errorf("RelativeStrength = %v, want nil", snapshot.RelativeStrength)
	}
}

func TestParseSentimentHTMLNoTable(t *testing.T) {
	if _, err := parseSentimentHTML("<html><body></body></html>"); err == nil {
		t.Error("parseSentimentHTML() expected error for missing table")
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"+4.2%", 4.2, true},
		{"-1.8 %", -1.8, true},
		{"0%", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePercent(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePercent(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
