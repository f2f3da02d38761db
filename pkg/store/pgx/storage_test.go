package pgx

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/transparencia-lab/politigraph/backend/pkg/store"

	"github.com/pashagolub/pgxmock/v4"
)

// flexibleSQLMatcher builds a whitespace-insensitive regex for a SQL literal.
func flexibleSQLMatcher(sql string) string {
	trimmed := strings.TrimSpace(sql)
	return regexp.MustCompile(`\s+`).ReplaceAllString(regexp.QuoteMeta(trimmed), `\s+`)
}

func newMockStorage(t *testing.T) (*Storage, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mockPool.Close)
	return NewStorage(mockPool), mockPool
}

func expectationsMet(t *testing.T, mockPool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mockPool.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListPoliticians_ClampsOversizedLimit(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{
		"id", "name", "cpf", "state",
		"transaction_count", "transaction_total",
		"sanction_count", "flagged_transaction_count", "disqualification_count",
	}).AddRow(int64(1), "Alice", "12345678901", "SP",
		int64(12), 34_000.0, int64(0), int64(0), int64(0))

	mockPool.ExpectQuery(flexibleSQLMatcher(listPoliticiansSQL)).
		WithArgs(store.MaxPoliticianLimit, int32(0)).
		WillReturnRows(rows)

	politicians, err := storage.ListPoliticians(context.Background(), 5000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(politicians) != 1 || politicians[0].Name != "Alice" {
		t.Fatalf("unexpected result: %+v", politicians)
	}
	expectationsMet(t, mockPool)
}

func TestListPoliticians_NegativeOffsetClampedToZero(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	mockPool.ExpectQuery(flexibleSQLMatcher(listPoliticiansSQL)).
		WithArgs(int32(100), int32(0)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "cpf", "state",
			"transaction_count", "transaction_total",
			"sanction_count", "flagged_transaction_count", "disqualification_count",
		}))

	if _, err := storage.ListPoliticians(context.Background(), 100, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectationsMet(t, mockPool)
}

func TestListPoliticians_QueryErrorPropagates(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	queryErr := errors.New("relation does not exist")
	mockPool.ExpectQuery(flexibleSQLMatcher(listPoliticiansSQL)).
		WithArgs(int32(100), int32(0)).
		WillReturnError(queryErr)

	_, err := storage.ListPoliticians(context.Background(), 100, 0)
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	expectationsMet(t, mockPool)
}

func TestListPoliticians_SkipsUndecodableRow(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{
		"id", "name", "cpf", "state",
		"transaction_count", "transaction_total",
		"sanction_count", "flagged_transaction_count", "disqualification_count",
	}).
		AddRow("not-an-int", "Broken", "000", "RJ",
			int64(0), 0.0, int64(0), int64(0), int64(0)).
		AddRow(int64(2), "Bob", "98765432100", "MG",
			int64(3), 1_200.0, int64(1), int64(0), int64(0))

	mockPool.ExpectQuery(flexibleSQLMatcher(listPoliticiansSQL)).
		WithArgs(int32(100), int32(0)).
		WillReturnRows(rows)

	politicians, err := storage.ListPoliticians(context.Background(), 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(politicians) != 1 {
		t.Fatalf("expected the bad row to be skipped, got %d rows", len(politicians))
	}
	if politicians[0].Name != "Bob" {
		t.Fatalf("unexpected surviving row: %+v", politicians[0])
	}
	expectationsMet(t, mockPool)
}

func TestListSanctions_ClampsToSanctionCeiling(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{"id", "identifier", "type", "penalty_amount", "is_active"}).
		AddRow(int64(7), "12345678000199", "CEIS", 90_000.0, true)

	mockPool.ExpectQuery(flexibleSQLMatcher(listSanctionsSQL)).
		WithArgs(store.MaxSanctionLimit, int32(0)).
		WillReturnRows(rows)

	sanctions, err := storage.ListSanctions(context.Background(), 1_000_000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sanctions) != 1 || !sanctions[0].Active {
		t.Fatalf("unexpected result: %+v", sanctions)
	}
	expectationsMet(t, mockPool)
}

func TestListActiveSanctions_FiltersInStoreAndClamps(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{"id", "identifier", "type", "penalty_amount", "is_active"}).
		AddRow(int64(1), "12345678000199", "CEIS", 500_000.0, true).
		AddRow(int64(2), "98765432000188", "CNEP", 10_000.0, true)

	mockPool.ExpectQuery(flexibleSQLMatcher(listActiveSanctionsSQL)).
		WithArgs(store.MaxSanctionLimit).
		WillReturnRows(rows)

	sanctions, err := storage.ListActiveSanctions(context.Background(), 1_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sanctions) != 2 {
		t.Fatalf("expected 2 sanctions, got %d", len(sanctions))
	}
	for _, s := range sanctions {
		if !s.Active {
			t.Fatalf("expected only active sanctions, got %+v", s)
		}
	}
	expectationsMet(t, mockPool)
}

func TestListActiveMemberships_ReturnsRows(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{"politician_id", "party_id", "status"}).
		AddRow(int64(1), int64(10), "active").
		AddRow(int64(2), int64(10), "active")

	mockPool.ExpectQuery(flexibleSQLMatcher(listActiveMembershipsSQL)).
		WillReturnRows(rows)

	memberships, err := storage.ListActiveMemberships(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(memberships))
	}
	expectationsMet(t, mockPool)
}

func TestPoliticianIDsByCPF_BuildsIndex(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{"id", "cpf"}).
		AddRow(int64(1), "12345678901").
		AddRow(int64(2), "98765432100")

	mockPool.ExpectQuery(flexibleSQLMatcher(politicianIDsByCPFSQL)).
		WillReturnRows(rows)

	byCPF, err := storage.PoliticianIDsByCPF(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byCPF["12345678901"] != 1 || byCPF["98765432100"] != 2 {
		t.Fatalf("unexpected index: %v", byCPF)
	}
	expectationsMet(t, mockPool)
}

func TestTotals_ScansAllCounts(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	rows := pgxmock.NewRows([]string{"politicians", "parties", "counterparties", "sanctions"}).
		AddRow(int64(9000), int64(30), int64(70000), int64(4000))

	mockPool.ExpectQuery(flexibleSQLMatcher(totalsSQL)).
		WillReturnRows(rows)

	totals, err := storage.Totals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := store.Totals{Politicians: 9000, Parties: 30, Companies: 70000, Sanctions: 4000}
	if totals != want {
		t.Fatalf("expected %+v, got %+v", want, totals)
	}
	expectationsMet(t, mockPool)
}

func TestPing_WrapsError(t *testing.T) {
	storage, mockPool := newMockStorage(t)

	pingErr := errors.New("database unavailable")
	mockPool.ExpectPing().WillReturnError(pingErr)

	if err := storage.Ping(context.Background()); !errors.Is(err, pingErr) {
		t.Fatalf("expected wrapped ping error, got %v", err)
	}
	expectationsMet(t, mockPool)
}
