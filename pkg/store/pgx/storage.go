package pgx

import (
	"context"
	"fmt"

	"github.com/transparencia-lab/politigraph/backend/pkg/common"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/metrics"
	"github.com/transparencia-lab/politigraph/backend/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
)

// DBPool abstracts the pgxpool.Pool query surface so the storage can be
// exercised against a mock in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgxv5.Row
}

// Storage implements store.Accessor against Postgres. All access is
// read-only; the tables are owned by the ingestion pipeline.
type Storage struct {
	conn DBPool
}

func NewStorage(conn DBPool) *Storage {
	return &Storage{conn: conn}
}

var _ store.Accessor = (*Storage)(nil)

const listPoliticiansSQL = `
	SELECT id, name, cpf, state,
	       transaction_count, transaction_total,
	       sanction_count, flagged_transaction_count, disqualification_count
	FROM politicians
	ORDER BY id
	LIMIT $1 OFFSET $2`

func (s *Storage) ListPoliticians(ctx context.Context, limit, offset int32) ([]common.Politician, error) {
	limit = store.ClampLimit(limit, store.MaxPoliticianLimit)
	offset = store.ClampOffset(offset)

	rows, err := s.conn.Query(ctx, listPoliticiansSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list politicians: %w", err)
	}
	defer rows.Close()

	politicians := make([]common.Politician, 0, limit)
	for rows.Next() {
		var p common.Politician
		err := rows.Scan(
			&p.ID, &p.Name, &p.CPF, &p.State,
			&p.TransactionCount, &p.TransactionTotal,
			&p.SanctionCount, &p.FlaggedTransactionCount, &p.DisqualificationCount,
		)
		if err != nil {
			logger.Warn("[Store] Skipping politician row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("politician").Inc()
			continue
		}
		politicians = append(politicians, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list politicians: %w", err)
	}

	return politicians, nil
}

const listPartiesSQL = `
	SELECT id, name, abbreviation, member_count
	FROM parties
	ORDER BY member_count DESC, id
	LIMIT $1 OFFSET $2`

func (s *Storage) ListParties(ctx context.Context, limit, offset int32) ([]common.Party, error) {
	limit = store.ClampLimit(limit, store.MaxPartyLimit)
	offset = store.ClampOffset(offset)

	rows, err := s.conn.Query(ctx, listPartiesSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	parties := make([]common.Party, 0, limit)
	for rows.Next() {
		var p common.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Abbreviation, &p.MemberCount); err != nil {
			logger.Warn("[Store] Skipping party row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("party").Inc()
			continue
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}

	return parties, nil
}

const listCompaniesSQL = `
	SELECT identifier, name, entity_type, transaction_count, total_amount
	FROM counterparties
	ORDER BY total_amount DESC, identifier
	LIMIT $1 OFFSET $2`

func (s *Storage) ListCompanies(ctx context.Context, limit, offset int32) ([]common.Company, error) {
	limit = store.ClampLimit(limit, store.MaxCompanyLimit)
	offset = store.ClampOffset(offset)

	rows, err := s.conn.Query(ctx, listCompaniesSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]common.Company, 0, limit)
	for rows.Next() {
		var c common.Company
		if err := rows.Scan(&c.Identifier, &c.Name, &c.EntityType, &c.TransactionCount, &c.TotalAmount); err != nil {
			logger.Warn("[Store] Skipping company row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("company").Inc()
			continue
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

const listSanctionsSQL = `
	SELECT id, identifier, type, COALESCE(penalty_amount, 0), is_active
	FROM sanctions
	ORDER BY penalty_amount DESC NULLS LAST, id
	LIMIT $1 OFFSET $2`

func (s *Storage) ListSanctions(ctx context.Context, limit, offset int32) ([]common.Sanction, error) {
	limit = store.ClampLimit(limit, store.MaxSanctionLimit)
	offset = store.ClampOffset(offset)

	rows, err := s.conn.Query(ctx, listSanctionsSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sanctions: %w", err)
	}
	defer rows.Close()

	sanctions := make([]common.Sanction, 0, limit)
	for rows.Next() {
		var sa common.Sanction
		if err := rows.Scan(&sa.ID, &sa.Identifier, &sa.Type, &sa.PenaltyAmount, &sa.Active); err != nil {
			logger.Warn("[Store] Skipping sanction row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("sanction").Inc()
			continue
		}
		sanctions = append(sanctions, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sanctions: %w", err)
	}

	return sanctions, nil
}

const listActiveSanctionsSQL = `
	SELECT id, identifier, type, COALESCE(penalty_amount, 0), is_active
	FROM sanctions
	WHERE is_active = true
	ORDER BY penalty_amount DESC NULLS LAST, id
	LIMIT $1`

func (s *Storage) ListActiveSanctions(ctx context.Context, limit int32) ([]common.Sanction, error) {
	limit = store.ClampLimit(limit, store.MaxSanctionLimit)

	rows, err := s.conn.Query(ctx, listActiveSanctionsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list active sanctions: %w", err)
	}
	defer rows.Close()

	sanctions := make([]common.Sanction, 0, limit)
	for rows.Next() {
		var sa common.Sanction
		if err := rows.Scan(&sa.ID, &sa.Identifier, &sa.Type, &sa.PenaltyAmount, &sa.Active); err != nil {
			logger.Warn("[Store] Skipping sanction row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("sanction").Inc()
			continue
		}
		sanctions = append(sanctions, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active sanctions: %w", err)
	}

	return sanctions, nil
}

const listActiveMembershipsSQL = `
	SELECT politician_id, party_id, status
	FROM party_memberships
	WHERE status = 'active'`

func (s *Storage) ListActiveMemberships(ctx context.Context) ([]common.Membership, error) {
	rows, err := s.conn.Query(ctx, listActiveMembershipsSQL)
	if err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}
	defer rows.Close()

	var memberships []common.Membership
	for rows.Next() {
		var m common.Membership
		if err := rows.Scan(&m.PoliticianID, &m.PartyID, &m.Status); err != nil {
			logger.Warn("[Store] Skipping membership row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("membership").Inc()
			continue
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}

	return memberships, nil
}

const listTransactionsSQL = `
	SELECT politician_id, counterpart_id, amount
	FROM financial_transactions`

func (s *Storage) ListTransactions(ctx context.Context) ([]common.Transaction, error) {
	rows, err := s.conn.Query(ctx, listTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []common.Transaction
	for rows.Next() {
		var t common.Transaction
		if err := rows.Scan(&t.PoliticianID, &t.CounterpartID, &t.Amount); err != nil {
			logger.Warn("[Store] Skipping transaction row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("transaction").Inc()
			continue
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return transactions, nil
}

const politicianIDsByCPFSQL = `
	SELECT id, cpf
	FROM politicians
	WHERE cpf IS NOT NULL AND cpf <> ''`

func (s *Storage) PoliticianIDsByCPF(ctx context.Context) (map[string]int64, error) {
	rows, err := s.conn.Query(ctx, politicianIDsByCPFSQL)
	if err != nil {
		return nil, fmt.Errorf("politician ids by cpf: %w", err)
	}
	defer rows.Close()

	byCPF := make(map[string]int64)
	for rows.Next() {
		var id int64
		var cpf string
		if err := rows.Scan(&id, &cpf); err != nil {
			logger.Warn("[Store] Skipping politician cpf row that failed to decode", "err", err)
			metrics.StoreRowsSkipped.WithLabelValues("politician").Inc()
			continue
		}
		byCPF[cpf] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("politician ids by cpf: %w", err)
	}

	return byCPF, nil
}

const totalsSQL = `
	SELECT
		(SELECT COUNT(*) FROM politicians),
		(SELECT COUNT(*) FROM parties),
		(SELECT COUNT(*) FROM counterparties),
		(SELECT COUNT(*) FROM sanctions)`

func (s *Storage) Totals(ctx context.Context) (store.Totals, error) {
	var t store.Totals
	err := s.conn.QueryRow(ctx, totalsSQL).Scan(&t.Politicians, &t.Parties, &t.Companies, &t.Sanctions)
	if err != nil {
		return store.Totals{}, fmt.Errorf("store totals: %w", err)
	}
	return t, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}
