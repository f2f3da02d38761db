package graph

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/transparencia-lab/politigraph/backend/pkg/common"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/metrics"
	"github.com/transparencia-lab/politigraph/backend/pkg/store"

	"golang.org/x/sync/errgroup"
)

// Per-kind sampling limits for a snapshot. The snapshot is a bounded sample
// of the store; stats carry the unbounded per-kind totals separately.
const (
	snapshotPoliticianLimit int32 = 500
	snapshotPartyLimit      int32 = 50
	snapshotCompanyLimit    int32 = 200
	snapshotSanctionLimit   int32 = 300
)

// Base display sizes per kind, so no node renders at zero.
const (
	basePoliticianSize = 10.0
	basePartySize      = 15.0
	baseCompanySize    = 8.0
	baseSanctionSize   = 6.0
)

// Builder composes entity queries and the connection engine's output into
// one node/edge snapshot plus summary statistics.
type Builder struct {
	store  store.Accessor
	engine *Engine
}

func NewBuilder(accessor store.Accessor, engine *Engine) *Builder {
	return &Builder{store: accessor, engine: engine}
}

// BuildSnapshot assembles the complete graph. Store errors fail the build;
// edge categories are best-effort and surface as warnings instead.
func (b *Builder) BuildSnapshot(ctx context.Context) (*common.Snapshot, error) {
	start := time.Now()

	var (
		politicians []common.Politician
		parties     []common.Party
		companies   []common.Company
		sanctions   []common.Sanction
		totals      store.Totals
		connections *ConnectionSet
	)

	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		politicians, err = b.store.ListPoliticians(gCtx, snapshotPoliticianLimit, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		parties, err = b.store.ListParties(gCtx, snapshotPartyLimit, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		companies, err = b.store.ListCompanies(gCtx, snapshotCompanyLimit, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		sanctions, err = b.store.ListSanctions(gCtx, snapshotSanctionLimit, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		totals, err = b.store.Totals(gCtx)
		return err
	})
	eg.Go(func() error {
		connections = b.engine.BuildConnections(gCtx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	nodes := make([]common.Node, 0, len(politicians)+len(parties)+len(companies)+len(sanctions))
	for i := range politicians {
		nodes = append(nodes, politicianNode(&politicians[i]))
	}
	for i := range parties {
		nodes = append(nodes, partyNode(&parties[i]))
	}
	for i := range companies {
		nodes = append(nodes, companyNode(&companies[i]))
	}
	for i := range sanctions {
		nodes = append(nodes, sanctionNode(&sanctions[i]))
	}

	snapshot := &common.Snapshot{
		Nodes:    nodes,
		Edges:    connections.Edges,
		Warnings: connections.Warnings,
		Stats: common.SnapshotStats{
			// Overwritten with the sampled counts so the snapshot stays
			// internally consistent; store-wide totals live alongside.
			TotalNodes:  len(nodes),
			TotalLinks:  len(connections.Edges),
			Politicians: totals.Politicians,
			Parties:     totals.Parties,
			Companies:   totals.Companies,
			Sanctions:   totals.Sanctions,
			BuiltAt:     time.Now().UTC(),
		},
	}

	elapsed := time.Since(start)
	metrics.SnapshotBuildSeconds.Observe(elapsed.Seconds())
	logger.Info("[Builder] Snapshot built",
		"nodes", len(snapshot.Nodes),
		"edges", len(snapshot.Edges),
		"took", elapsed,
	)

	return snapshot, nil
}

func politicianNode(p *common.Politician) common.Node {
	score := RiskScore(RiskSignals{
		Sanctions:           p.SanctionCount,
		FlaggedTransactions: p.FlaggedTransactionCount,
		Disqualifications:   p.DisqualificationCount,
	})
	record := *p
	record.RiskScore = score

	return common.Node{
		ID:         common.PoliticianNodeID(p.ID),
		Name:       p.Name,
		Kind:       common.NodeKindPolitician,
		Size:       basePoliticianSize + math.Min(30, float64(p.TransactionCount)/10.0),
		Color:      RiskColor(score),
		Politician: &record,
	}
}

func partyNode(p *common.Party) common.Node {
	return common.Node{
		ID:    common.PartyNodeID(p.ID),
		Name:  p.Name,
		Kind:  common.NodeKindParty,
		Size:  basePartySize + math.Min(25, float64(p.MemberCount)/2.0),
		Color: "#2a9d8f",
		Party: p,
	}
}

func companyNode(c *common.Company) common.Node {
	return common.Node{
		ID:      common.CompanyNodeID(NormalizeIdentifier(c.Identifier)),
		Name:    c.Name,
		Kind:    common.NodeKindCompany,
		Size:    baseCompanySize + math.Min(22, math.Log1p(c.TotalAmount)),
		Color:   "#264653",
		Company: c,
	}
}

func sanctionNode(s *common.Sanction) common.Node {
	return common.Node{
		ID:       common.SanctionNodeID(s.ID),
		Name:     s.Type,
		Kind:     common.NodeKindSanction,
		Size:     baseSanctionSize + math.Min(14, math.Log1p(s.PenaltyAmount)/2.0),
		Color:    "#9d0208",
		Sanction: s,
	}
}
