package store

import (
	"context"

	"github.com/transparencia-lab/politigraph/backend/pkg/common"
)

// Hard per-kind ceilings on list sizes. Limits above the ceiling are
// silently truncated, never rejected.
const (
	MaxPoliticianLimit int32 = 1000
	MaxPartyLimit      int32 = 1000
	MaxCompanyLimit    int32 = 1000
	MaxSanctionLimit   int32 = 2000
)

// ClampLimit truncates limit to [0, ceiling].
func ClampLimit(limit, ceiling int32) int32 {
	if limit < 0 {
		return 0
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}

// ClampOffset truncates a negative offset to zero.
func ClampOffset(offset int32) int32 {
	if offset < 0 {
		return 0
	}
	return offset
}

// Totals carries store-wide per-kind record counts.
type Totals struct {
	Politicians int64 `json:"politicians"`
	Parties     int64 `json:"parties"`
	Companies   int64 `json:"companies"`
	Sanctions   int64 `json:"sanctions"`
}

// Accessor defines the read interface over the relational store populated by
// the ingestion pipeline. All list queries are bounded and ordered by a
// kind-specific relevance key. Implementations wrap store errors and skip
// individual rows that fail to decode; partial results are acceptable, total
// query failure is not.
type Accessor interface {
	ListPoliticians(ctx context.Context, limit, offset int32) ([]common.Politician, error)
	ListParties(ctx context.Context, limit, offset int32) ([]common.Party, error)
	ListCompanies(ctx context.Context, limit, offset int32) ([]common.Company, error)
	ListSanctions(ctx context.Context, limit, offset int32) ([]common.Sanction, error)

	// ListActiveSanctions returns only sanctions that are currently active,
	// up to limit. Feeds the sanction edge derivation, where inactive rows
	// must not occupy the window.
	ListActiveSanctions(ctx context.Context, limit int32) ([]common.Sanction, error)

	// ListActiveMemberships returns every party membership with active status.
	ListActiveMemberships(ctx context.Context) ([]common.Membership, error)

	// ListTransactions returns the raw financial transactions feeding the
	// financial edge derivation.
	ListTransactions(ctx context.Context) ([]common.Transaction, error)

	// PoliticianIDsByCPF returns a lookup from normalized CPF digits to
	// politician id, used to match personal sanction identifiers.
	PoliticianIDsByCPF(ctx context.Context) (map[string]int64, error)

	Totals(ctx context.Context) (Totals, error)

	Ping(ctx context.Context) error
}
