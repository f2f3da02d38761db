package common

import (
	"fmt"
	"time"
)

// NodeKind discriminates the entity variants rendered in the graph.
type NodeKind string

const (
	NodeKindPolitician NodeKind = "politician"
	NodeKindParty      NodeKind = "party"
	NodeKindCompany    NodeKind = "company"
	NodeKindSanction   NodeKind = "sanction"
)

// EdgeKind discriminates the derived relationship categories.
type EdgeKind string

const (
	EdgeKindAffiliation EdgeKind = "affiliation"
	EdgeKindFinancial   EdgeKind = "financial"
	EdgeKindSanction    EdgeKind = "sanction"
)

// Politician is a politician record as read from the store, including the
// aggregate signal columns maintained by the ingestion pipeline.
type Politician struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	State string `json:"state"`

	TransactionCount int64   `json:"transaction_count"`
	TransactionTotal float64 `json:"transaction_total"`

	SanctionCount           int64 `json:"sanction_count"`
	FlaggedTransactionCount int64 `json:"flagged_transaction_count"`
	DisqualificationCount   int64 `json:"disqualification_count"`

	RiskScore int `json:"risk_score"`
}

// Party is a political party record.
type Party struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	MemberCount  int64  `json:"member_count"`
}

// Company is a counterparty record keyed by its tax identifier (CNPJ).
type Company struct {
	Identifier       string  `json:"identifier"`
	Name             string  `json:"name"`
	EntityType       string  `json:"entity_type"`
	TransactionCount int64   `json:"transaction_count"`
	TotalAmount      float64 `json:"total_amount"`
}

// Sanction is a sanction record from the sanctions registry.
type Sanction struct {
	ID            int64   `json:"id"`
	Identifier    string  `json:"identifier"`
	Type          string  `json:"type"`
	PenaltyAmount float64 `json:"penalty_amount"`
	Active        bool    `json:"is_active"`
}

// Membership links a politician to a party.
type Membership struct {
	PoliticianID int64  `json:"politician_id"`
	PartyID      int64  `json:"party_id"`
	Status       string `json:"status"`
}

// Transaction is a single raw financial transaction between a politician
// and a counterparty.
type Transaction struct {
	PoliticianID  int64   `json:"politician_id"`
	CounterpartID string  `json:"counterpart_id"`
	Amount        float64 `json:"amount"`
}

// Node is a rendered graph entity. Kind selects exactly one of the record
// pointers; the rest are nil, so consumers can switch on Kind and handle
// each variant exhaustively.
type Node struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Kind  NodeKind `json:"kind"`
	Size  float64  `json:"size"`
	Color string   `json:"color"`

	Politician *Politician `json:"politician,omitempty"`
	Party      *Party      `json:"party,omitempty"`
	Company    *Company    `json:"company,omitempty"`
	Sanction   *Sanction   `json:"sanction,omitempty"`
}

// Edge is a derived, directed relationship between two nodes. Value carries
// the monetary or count magnitude; Strength is a [0,1] rendering weight.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Kind     EdgeKind `json:"kind"`
	Value    float64  `json:"value"`
	Strength float64  `json:"strength"`
}

// SnapshotStats summarizes a snapshot. TotalNodes and TotalLinks always
// reflect the sampled snapshot itself; the per-kind totals are store-wide.
type SnapshotStats struct {
	TotalNodes int `json:"total_nodes"`
	TotalLinks int `json:"total_links"`

	Politicians int64 `json:"politicians"`
	Parties     int64 `json:"parties"`
	Companies   int64 `json:"companies"`
	Sanctions   int64 `json:"sanctions"`

	BuiltAt time.Time `json:"built_at"`
}

// Snapshot is the complete derived graph produced by one build cycle.
// It is a value: always recomputable from the store plus the sampling
// limits in force at build time.
type Snapshot struct {
	Nodes    []Node        `json:"nodes"`
	Edges    []Edge        `json:"edges"`
	Stats    SnapshotStats `json:"stats"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Node identifiers are "<kind>_<naturalKey>". They stay stable across
// rebuilds as long as the natural key is unchanged upstream.

func PoliticianNodeID(id int64) string {
	return fmt.Sprintf("%s_%d", NodeKindPolitician, id)
}

func PartyNodeID(id int64) string {
	return fmt.Sprintf("%s_%d", NodeKindParty, id)
}

func CompanyNodeID(identifier string) string {
	return fmt.Sprintf("%s_%s", NodeKindCompany, identifier)
}

func SanctionNodeID(id int64) string {
	return fmt.Sprintf("%s_%d", NodeKindSanction, id)
}
