package graph

import (
	"context"

	"github.com/transparencia-lab/politigraph/backend/pkg/common"
	"github.com/transparencia-lab/politigraph/backend/pkg/store"
)

// fakeStore implements store.Accessor from in-memory fixtures.
type fakeStore struct {
	politicians  []common.Politician
	parties      []common.Party
	companies    []common.Company
	sanctions    []common.Sanction
	memberships  []common.Membership
	transactions []common.Transaction
	cpfIndex     map[string]int64
	totals       store.Totals

	politiciansErr  error
	membershipsErr  error
	transactionsErr error
	sanctionsErr    error
	totalsErr       error
	pingErr         error
}

func paginate[T any](items []T, limit, offset int32) []T {
	if offset >= int32(len(items)) {
		return nil
	}
	items = items[offset:]
	if limit < int32(len(items)) {
		items = items[:limit]
	}
	return items
}

func (f *fakeStore) ListPoliticians(_ context.Context, limit, offset int32) ([]common.Politician, error) {
	if f.politiciansErr != nil {
		return nil, f.politiciansErr
	}
	limit = store.ClampLimit(limit, store.MaxPoliticianLimit)
	return paginate(f.politicians, limit, offset), nil
}

func (f *fakeStore) ListParties(_ context.Context, limit, offset int32) ([]common.Party, error) {
	limit = store.ClampLimit(limit, store.MaxPartyLimit)
	return paginate(f.parties, limit, offset), nil
}

func (f *fakeStore) ListCompanies(_ context.Context, limit, offset int32) ([]common.Company, error) {
	limit = store.ClampLimit(limit, store.MaxCompanyLimit)
	return paginate(f.companies, limit, offset), nil
}

func (f *fakeStore) ListSanctions(_ context.Context, limit, offset int32) ([]common.Sanction, error) {
	if f.sanctionsErr != nil {
		return nil, f.sanctionsErr
	}
	limit = store.ClampLimit(limit, store.MaxSanctionLimit)
	return paginate(f.sanctions, limit, offset), nil
}

func (f *fakeStore) ListActiveSanctions(_ context.Context, limit int32) ([]common.Sanction, error) {
	if f.sanctionsErr != nil {
		return nil, f.sanctionsErr
	}
	limit = store.ClampLimit(limit, store.MaxSanctionLimit)
	active := make([]common.Sanction, 0, len(f.sanctions))
	for _, s := range f.sanctions {
		if s.Active {
			active = append(active, s)
		}
	}
	return paginate(active, limit, 0), nil
}

func (f *fakeStore) ListActiveMemberships(_ context.Context) ([]common.Membership, error) {
	if f.membershipsErr != nil {
		return nil, f.membershipsErr
	}
	active := make([]common.Membership, 0, len(f.memberships))
	for _, m := range f.memberships {
		if m.Status == "active" {
			active = append(active, m)
		}
	}
	return active, nil
}

func (f *fakeStore) ListTransactions(_ context.Context) ([]common.Transaction, error) {
	if f.transactionsErr != nil {
		return nil, f.transactionsErr
	}
	return f.transactions, nil
}

func (f *fakeStore) PoliticianIDsByCPF(_ context.Context) (map[string]int64, error) {
	if f.cpfIndex == nil {
		return map[string]int64{}, nil
	}
	return f.cpfIndex, nil
}

func (f *fakeStore) Totals(_ context.Context) (store.Totals, error) {
	if f.totalsErr != nil {
		return store.Totals{}, f.totalsErr
	}
	return f.totals, nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.pingErr
}
