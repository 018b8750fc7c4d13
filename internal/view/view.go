// Package view holds presentation-ready models: every display string is
// computed here so renderers only lay values out.
package view

// Truncation widths for opaque identifiers.
const (
	TxHashWidth          = 8
	VendorAddressWidth   = 12
	TreasuryAddressWidth = 16
)

// Empty-list messages are sentences; not-found messages are titles.
const (
	NoProjects          = "No projects found."
	NoTransactions      = "No transactions found."
	NoEvents            = "No events found."
	NoAddresses         = "No addresses found."
	NoUtxos             = "No UTXOs found."
	NoMilestones        = "No milestones defined for this project."
	ProjectNotFound     = "Project not found"
	TransactionNotFound = "Transaction not found"
)

// List is a rendered collection. EmptyMessage is set only when Items is
// empty.
type List[T any] struct {
	Items        []T    `json:"items"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

func newList[T any](items []T, empty string) List[T] {
	if items == nil {
		items = []T{}
	}
	l := List[T]{Items: items}
	if len(items) == 0 {
		l.EmptyMessage = empty
	}
	return l
}

// StatsPanel is the landing-page counter block.
type StatsPanel struct {
	Transactions         string `json:"transactions"`
	TreasuryAddresses    string `json:"treasury_addresses"`
	LatestBlock          string `json:"latest_block"`
	Projects             string `json:"projects"`
	Milestones           string `json:"milestones"`
	TotalBalance         string `json:"total_balance_ada"`
	TotalBalanceLovelace int64  `json:"total_balance_lovelace"`
}

// TreasuryPanel describes the treasury instance.
type TreasuryPanel struct {
	ID                  string `json:"id"`
	Label               string `json:"label"`
	Description         string `json:"description,omitempty"`
	ScriptHash          string `json:"script_hash"`
	ScriptHashShort     string `json:"script_hash_short"`
	PaymentAddress      string `json:"payment_address"`
	PaymentAddressShort string `json:"payment_address_short"`
	StakeAddress        string `json:"stake_address"`
	Status              string `json:"status"`
	PublishedAt         string `json:"published_at"`
	Balance             string `json:"balance_ada"`
	VendorContracts     string `json:"vendor_contracts"`
	ActiveContracts     string `json:"active_contracts"`
	TotalEvents         string `json:"total_events"`
}

// ProjectCard is one project in a list, and the header of a project page.
type ProjectCard struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	VendorName         string `json:"vendor_name"`
	VendorAddress      string `json:"vendor_address,omitempty"`
	VendorAddressShort string `json:"vendor_address_short"`
	ContractAddress    string `json:"contract_address,omitempty"`
	FundTxHash         string `json:"fund_tx_hash,omitempty"`
	FundTxShort        string `json:"fund_tx_short"`
	FundedAt           string `json:"funded_at"`
	InitialAmount      string `json:"initial_amount_ada"`
	Status             string `json:"status"`

	TotalMilestones     int64   `json:"total_milestones"`
	CompletedMilestones int64   `json:"completed_milestones"`
	DisbursedMilestones int64   `json:"disbursed_milestones"`
	ProgressPercent     float64 `json:"progress_percent"`
	ProgressLabel       string  `json:"progress_label"`
	MilestonesLabel     string  `json:"milestones_label"`
	IsCompleted         bool    `json:"is_completed"`

	Balance         string `json:"balance_ada"`
	BalanceLovelace int64  `json:"current_balance"`
	UTXOCount       int64  `json:"utxo_count"`

	// Canonical values kept for the compatibility adapter.
	TreasuryInstance *string `json:"treasury_instance,omitempty"`
	FundSlot         *int64  `json:"fund_slot,omitempty"`
	FundBlockTime    *int64  `json:"fund_block_time,omitempty"`
}

// MilestoneRow is one milestone in a project timeline.
type MilestoneRow struct {
	ProjectID          string `json:"project_id"`
	ID                 string `json:"id"`
	Order              int64  `json:"order"`
	Label              string `json:"label"`
	Description        string `json:"description,omitempty"`
	AcceptanceCriteria string `json:"acceptance_criteria,omitempty"`
	Amount             string `json:"amount_ada"`
	Status             string `json:"status"`
	StatusKey          string `json:"status_key"`

	CompleteTxHash      string `json:"complete_tx_hash,omitempty"`
	CompleteTxShort     string `json:"complete_tx_short"`
	CompletedAt         string `json:"completed_at"`
	CompleteDescription string `json:"complete_description,omitempty"`
	Evidence            string `json:"evidence"`

	DisburseTxHash  string `json:"disburse_tx_hash,omitempty"`
	DisburseTxShort string `json:"disburse_tx_short"`
	DisbursedAt     string `json:"disbursed_at"`
	DisburseAmount  string `json:"disburse_amount_ada"`
}

// EventRow is one event in an activity feed.
type EventRow struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	KnownType      bool   `json:"known_type"`
	TxRef          string `json:"tx_ref"`
	TxShort        string `json:"tx_short"`
	ProjectID      string `json:"project_id,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	MilestoneLabel string `json:"milestone_label,omitempty"`
	Amount         string `json:"amount_ada"`
	Reason         string `json:"reason,omitempty"`
	Destination    string `json:"destination_short"`
	Time           string `json:"time"`
	Ago            string `json:"ago"`
	Slot           string `json:"slot"`
}

// UtxoRow is one unspent output.
type UtxoRow struct {
	TxHash      string `json:"tx_hash"`
	TxShort     string `json:"tx_short"`
	OutputIndex int64  `json:"output_index"`
	Owner       string `json:"owner_short"`
	Amount      string `json:"amount_ada"`
	Block       string `json:"block"`
}

// ProjectPage is the project detail view.
type ProjectPage struct {
	Project    ProjectCard       `json:"project"`
	Milestones List[MilestoneRow] `json:"milestones"`
	Events     List[EventRow]     `json:"events"`
	Utxos      List[UtxoRow]      `json:"utxos"`
}

// TransactionRow is one transaction in a list.
type TransactionRow struct {
	Hash             string `json:"hash"`
	HashShort        string `json:"hash_short"`
	Action           string `json:"action"`
	KnownAction      bool   `json:"known_action"`
	Slot             string `json:"slot"`
	Block            string `json:"block"`
	Time             string `json:"time"`
	Ago              string `json:"ago"`
	Confirmed        bool   `json:"confirmed"`
	Destination      string `json:"destination,omitempty"`
	DestinationShort string `json:"destination_short"`
	ProjectID        string `json:"project_id,omitempty"`
	Amount           string `json:"amount_ada"`
}

// TransactionPage is the transaction detail view.
type TransactionPage struct {
	TransactionRow
	Source   string `json:"source,omitempty"`
	Metadata string `json:"metadata"`
}

// AddressRow is one treasury or vendor-contract address.
type AddressRow struct {
	Address         string `json:"address"`
	AddressShort    string `json:"address_short"`
	StakeCredential string `json:"stake_credential"`
	Balance         string `json:"balance_ada"`
	BalanceLovelace int64  `json:"balance_lovelace"`
	UTXOCount       int64  `json:"utxo_count"`
	LatestSlot      string `json:"latest_slot"`
	ScriptHash      string `json:"script_hash,omitempty"`
	ProjectID       string `json:"project_id,omitempty"`
}

// AddressTable is a list of addresses with their summed balance.
type AddressTable struct {
	List[AddressRow]
	TotalBalance string `json:"total_balance_ada"`
	TotalUtxos   int64  `json:"total_utxos"`
}

// Landing is the dashboard home view.
type Landing struct {
	Stats              StatsPanel           `json:"stats"`
	Treasury           *TreasuryPanel       `json:"treasury"`
	RecentTransactions List[TransactionRow] `json:"recent_transactions"`
	FeaturedProjects   List[ProjectCard]    `json:"featured_projects"`
}
