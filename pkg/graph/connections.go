package graph

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/transparencia-lab/politigraph/backend/pkg/common"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/metrics"
	"github.com/transparencia-lab/politigraph/backend/pkg/store"

	"golang.org/x/sync/errgroup"
)

const (
	// Financial edges are suppressed below both of these, so one-off small
	// payments produce no edge.
	financialMinTransactions = 2
	financialAmountThreshold = 50_000.0

	maxFinancialEdges = 5000
	maxSanctionEdges  = 2000
)

// ConnectionSet is the best-effort union of the derived edge categories.
// A category that failed contributes no edges and one warning; the set as a
// whole is still usable.
type ConnectionSet struct {
	Edges    []common.Edge `json:"edges"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Engine derives the weighted relationship categories (affiliation,
// financial, sanction) from store records via independent join strategies.
type Engine struct {
	store store.Accessor
}

func NewEngine(accessor store.Accessor) *Engine {
	return &Engine{store: accessor}
}

// BuildConnections computes the three edge categories concurrently. Edges
// are best-effort: a failing category is logged, counted, and degraded to an
// empty result, never a hard dependency of the others.
func (e *Engine) BuildConnections(ctx context.Context) *ConnectionSet {
	var (
		affiliation []common.Edge
		financial   []common.Edge
		sanction    []common.Edge

		mu       sync.Mutex
		warnings []string
	)

	degrade := func(category string, err error) {
		logger.Error("[Connections] Edge category failed, continuing without it", "category", category, "err", err)
		metrics.ConnectionWarnings.WithLabelValues(category).Inc()
		mu.Lock()
		warnings = append(warnings, fmt.Sprintf("%s edges unavailable: %v", category, err))
		mu.Unlock()
	}

	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		edges, err := e.buildAffiliationEdges(gCtx)
		if err != nil {
			degrade("affiliation", err)
			return nil
		}
		affiliation = edges
		return nil
	})
	eg.Go(func() error {
		edges, err := e.buildFinancialEdges(gCtx)
		if err != nil {
			degrade("financial", err)
			return nil
		}
		financial = edges
		return nil
	})
	eg.Go(func() error {
		edges, err := e.buildSanctionEdges(gCtx)
		if err != nil {
			degrade("sanction", err)
			return nil
		}
		sanction = edges
		return nil
	})
	_ = eg.Wait()

	edges := make([]common.Edge, 0, len(affiliation)+len(financial)+len(sanction))
	edges = append(edges, affiliation...)
	edges = append(edges, financial...)
	edges = append(edges, sanction...)

	logger.Debug("[Connections] Built edge set",
		"affiliation", len(affiliation),
		"financial", len(financial),
		"sanction", len(sanction),
		"warnings", len(warnings),
	)

	return &ConnectionSet{Edges: edges, Warnings: warnings}
}

// buildAffiliationEdges emits one politician→party edge per active
// membership record. Multiplicity is not aggregated.
func (e *Engine) buildAffiliationEdges(ctx context.Context) ([]common.Edge, error) {
	memberships, err := e.store.ListActiveMemberships(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]common.Edge, 0, len(memberships))
	for _, m := range memberships {
		edges = append(edges, common.Edge{
			Source:   common.PoliticianNodeID(m.PoliticianID),
			Target:   common.PartyNodeID(m.PartyID),
			Kind:     common.EdgeKindAffiliation,
			Value:    1,
			Strength: 1,
		})
	}
	return edges, nil
}

type transactionGroup struct {
	politicianID  int64
	counterpartID string
	count         int64
	total         float64
}

// buildFinancialEdges groups raw transactions by (politician, counterpart)
// and emits an edge when the group has at least two transactions or its sum
// exceeds the amount threshold. Capped to the top edges by total value.
func (e *Engine) buildFinancialEdges(ctx context.Context) ([]common.Edge, error) {
	transactions, err := e.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		politicianID  int64
		counterpartID string
	}
	groups := make(map[groupKey]*transactionGroup)
	for _, t := range transactions {
		key := groupKey{t.PoliticianID, t.CounterpartID}
		g, ok := groups[key]
		if !ok {
			g = &transactionGroup{politicianID: t.PoliticianID, counterpartID: t.CounterpartID}
			groups[key] = g
		}
		g.count++
		g.total += t.Amount
	}

	edges := make([]common.Edge, 0, len(groups))
	for _, g := range groups {
		if g.count < financialMinTransactions && g.total <= financialAmountThreshold {
			continue
		}
		// Refund-heavy groups can sum negative; edge values stay >= 0.
		value := g.total
		if value < 0 {
			value = 0
		}
		edges = append(edges, common.Edge{
			Source:   common.PoliticianNodeID(g.politicianID),
			Target:   common.CompanyNodeID(NormalizeIdentifier(g.counterpartID)),
			Kind:     common.EdgeKindFinancial,
			Value:    value,
			Strength: financialStrength(g.count),
		})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Value != edges[j].Value {
			return edges[i].Value > edges[j].Value
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	if len(edges) > maxFinancialEdges {
		edges = edges[:maxFinancialEdges]
	}
	return edges, nil
}

// financialStrength saturates towards 1.0 as transaction count grows, so
// visual emphasis scales sub-linearly with volume. A single qualifying
// relationship still gets a low-but-nonzero weight.
func financialStrength(count int64) float64 {
	return math.Min(1.0, 0.1+(float64(count)/50.0)*0.9)
}

// buildSanctionEdges links active sanctions to the sanctioned entity. The
// source query is active-only, so inactive rows never occupy the window and
// every active sanction up to the cap is considered. The identifier is
// classified by ClassifyIdentifier: company identifiers always produce an
// edge; personal identifiers only when a politician with that CPF exists.
// A sanction match is unconditionally significant, so strength is 1.
func (e *Engine) buildSanctionEdges(ctx context.Context) ([]common.Edge, error) {
	sanctions, err := e.store.ListActiveSanctions(ctx, store.MaxSanctionLimit)
	if err != nil {
		return nil, err
	}

	byCPF, err := e.store.PoliticianIDsByCPF(ctx)
	if err != nil {
		return nil, err
	}
	politicianByDigits := make(map[string]int64, len(byCPF))
	for cpf, id := range byCPF {
		politicianByDigits[NormalizeIdentifier(cpf)] = id
	}

	edges := make([]common.Edge, 0, len(sanctions))
	for _, s := range sanctions {
		if len(edges) >= maxSanctionEdges {
			break
		}
		if s.Identifier == "" {
			continue
		}

		digits := NormalizeIdentifier(s.Identifier)
		switch ClassifyIdentifier(s.Identifier) {
		case IdentifierCompany:
			edges = append(edges, common.Edge{
				Source:   common.CompanyNodeID(digits),
				Target:   common.SanctionNodeID(s.ID),
				Kind:     common.EdgeKindSanction,
				Value:    s.PenaltyAmount,
				Strength: 1.0,
			})
		case IdentifierPerson:
			politicianID, ok := politicianByDigits[digits]
			if !ok {
				continue
			}
			edges = append(edges, common.Edge{
				Source:   common.PoliticianNodeID(politicianID),
				Target:   common.SanctionNodeID(s.ID),
				Kind:     common.EdgeKindSanction,
				Value:    s.PenaltyAmount,
				Strength: 1.0,
			})
		}
	}
	return edges, nil
}
