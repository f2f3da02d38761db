package graph

// Per-occurrence score contributions. Sanctions weigh heaviest, then
// disqualification records, then flagged transactions.
const (
	sanctionWeight           = 30
	disqualificationWeight   = 20
	flaggedTransactionWeight = 10

	maxRiskScore = 100
)

// Risk score thresholds for the display color step function.
const (
	highRiskThreshold   = 50
	mediumRiskThreshold = 20
)

const (
	colorHighRisk   = "#e63946"
	colorMediumRisk = "#f4a261"
	colorBaseline   = "#457b9d"
)

// RiskSignals are the adverse signal counts known for a politician.
type RiskSignals struct {
	Sanctions           int64
	FlaggedTransactions int64
	Disqualifications   int64
}

// RiskScore computes the bounded [0,100] risk indicator. It is pure and
// monotonically non-decreasing in every signal count.
func RiskScore(sig RiskSignals) int {
	score := sig.Sanctions*sanctionWeight +
		sig.Disqualifications*disqualificationWeight +
		sig.FlaggedTransactions*flaggedTransactionWeight
	if score > maxRiskScore {
		return maxRiskScore
	}
	if score < 0 {
		return 0
	}
	return int(score)
}

// RiskColor maps a risk score to its display color. Used only for
// rendering, never for ranking.
func RiskColor(score int) string {
	switch {
	case score > highRiskThreshold:
		return colorHighRisk
	case score > mediumRiskThreshold:
		return colorMediumRisk
	default:
		return colorBaseline
	}
}
