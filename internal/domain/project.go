package domain

import "encoding/json"

// DefaultProjectName is shown when a project carries no name, label or id.
const DefaultProjectName = "Unnamed Project"

// Project represents a vendor contract funded from the treasury.
// Amounts are lovelace; times are Unix seconds.
type Project struct {
	ID               string  // stable identifier (numeric wire ids rendered in decimal)
	Name             string  // resolved display name, never empty
	Description      *string // nullable
	VendorName       *string // nullable
	VendorAddress    *string // vendor payment address (nullable)
	ContractAddress  *string // script address holding project funds (nullable)
	FundTxHash       *string // funding transaction (nullable)
	FundSlot         *int64  // slot of the funding transaction (nullable)
	FundBlockTime    *int64  // block time of the funding transaction (nullable)
	InitialAmount    *int64  // amount locked at funding (nullable)
	Status           *string // indexer-reported contract status, verbatim (nullable)
	TreasuryInstance *string // owning treasury instance (nullable)

	TotalMilestones     int64
	CompletedMilestones int64
	DisbursedMilestones int64

	CurrentBalance int64 // lovelace at contract + vendor addresses
	UTXOCount      int64
}

// ProgressPercent returns the share of completed milestones, 0..100.
func (p Project) ProgressPercent() float64 {
	return ProgressPercent(p.CompletedMilestones, p.TotalMilestones)
}

// IsCompleted reports whether every milestone is completed.
func (p Project) IsCompleted() bool {
	return p.ProgressPercent() == 100
}

// ProgressPercent computes completed/total*100 clamped to [0, 100].
// Returns 0 when total is not positive.
func ProgressPercent(completed, total int64) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return float64(completed) / float64(total) * 100
}

// Milestone is one deliverable of a project.
type Milestone struct {
	ProjectID          string
	ID                 string // milestone identifier within the project
	Order              int64  // 1-based position in the funding metadata
	Label              string // resolved, defaults to "Milestone {order}"
	Description        *string
	AcceptanceCriteria *string
	Amount             *int64 // lovelace (nullable)

	Status    MilestoneStatus // effective lifecycle stage
	RawStatus string          // wire value, shown verbatim when Status is unknown

	CompleteTxHash      *string
	CompleteTime        *int64
	CompleteDescription *string
	Evidence            json.RawMessage // opaque JSON (nullable)

	DisburseTxHash *string
	DisburseTime   *int64
	DisburseAmount *int64
}

// DisplayStatus returns the text to show for the status.
func (m Milestone) DisplayStatus() string {
	if m.Status.IsValid() || m.RawStatus == "" {
		return m.Status.String()
	}
	return m.RawStatus
}

// ProjectDetail is a project together with its sub-collections.
type ProjectDetail struct {
	Project    Project
	Milestones []Milestone
	Events     []Event
	Utxos      []Utxo
}
