package domain

// ArticleAnalysis is the structured AI explanation of one record.
// It is cached by record title and never expires.
type ArticleAnalysis struct {
	ModernText        string `json:"modernText"`
	Example           string `json:"example"`
	HistoricalContext string `json:"historicalContext"`
	ProponentView     string `json:"proponentView"`
	OpponentView      string `json:"opponentView"`
	PrevailingView    string `json:"prevailingView"`
	LegalTruth        string `json:"legalTruth"`
}

// FallbackAnalysis is returned when analysis generation fails.
// It is shown to the user but never cached.
func FallbackAnalysis() ArticleAnalysis {
	return ArticleAnalysis{
		ModernText:        "خطا در دریافت تحلیل.",
		Example:           "-",
		HistoricalContext: "...",
		ProponentView:     "-",
		OpponentView:      "-",
		PrevailingView:    "-",
		LegalTruth:        "-",
	}
}

// IsEmpty returns true if no field carries text.
func (a ArticleAnalysis) IsEmpty() bool {
	return a == ArticleAnalysis{}
}
