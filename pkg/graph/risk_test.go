package graph

import "testing"

func TestRiskScore_ZeroSignals(t *testing.T) {
	if got := RiskScore(RiskSignals{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestRiskScore_CappedAt100(t *testing.T) {
	score := RiskScore(RiskSignals{Sanctions: 10, FlaggedTransactions: 10, Disqualifications: 10})
	if score != 100 {
		t.Fatalf("expected cap at 100, got %d", score)
	}
}

func TestRiskScore_Bounds(t *testing.T) {
	for sanctions := int64(0); sanctions <= 20; sanctions++ {
		score := RiskScore(RiskSignals{Sanctions: sanctions})
		if score < 0 || score > 100 {
			t.Fatalf("score out of bounds for %d sanctions: %d", sanctions, score)
		}
	}
}

func TestRiskScore_MonotonicInSanctions(t *testing.T) {
	prev := -1
	for sanctions := int64(0); sanctions <= 10; sanctions++ {
		score := RiskScore(RiskSignals{Sanctions: sanctions, FlaggedTransactions: 2})
		if score < prev {
			t.Fatalf("score decreased from %d to %d at %d sanctions", prev, score, sanctions)
		}
		prev = score
	}
}

func TestRiskScore_DoublingSanctionsNeverDecreases(t *testing.T) {
	for sanctions := int64(0); sanctions <= 8; sanctions++ {
		base := RiskScore(RiskSignals{Sanctions: sanctions})
		doubled := RiskScore(RiskSignals{Sanctions: sanctions * 2})
		if doubled < base {
			t.Fatalf("doubling %d sanctions decreased score from %d to %d", sanctions, base, doubled)
		}
	}
}

func TestRiskScore_SanctionsWeighHeaviest(t *testing.T) {
	bySanction := RiskScore(RiskSignals{Sanctions: 1})
	byDisqualification := RiskScore(RiskSignals{Disqualifications: 1})
	byFlagged := RiskScore(RiskSignals{FlaggedTransactions: 1})
	if bySanction <= byDisqualification || byDisqualification <= byFlagged {
		t.Fatalf("expected sanction > disqualification > flagged, got %d, %d, %d",
			bySanction, byDisqualification, byFlagged)
	}
}

func TestRiskColor_StepFunction(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, colorBaseline},
		{20, colorBaseline},
		{21, colorMediumRisk},
		{50, colorMediumRisk},
		{51, colorHighRisk},
		{100, colorHighRisk},
	}
	for _, c := range cases {
		if got := RiskColor(c.score); got != c.want {
			t.Fatalf("RiskColor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}
