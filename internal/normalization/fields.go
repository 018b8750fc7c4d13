package normalization

// Alias tables: the only place wire field names appear. Each list is in
// priority order; the first present, non-empty value wins.
//
// Three schema generations exist. The current one (flat vendor-contract
// summary rows with string project ids and milestone aggregates) comes
// first. Deprecated aliases follow it:
//   - gen 1: integer project_id with identifier/label, lists wrapped in
//     {"projects": [...]}-style envelopes, events keyed by event_id/tx_id,
//     vendor_contracts rows with payment_address/script_hash.
//   - gen 2: TOM-metadata rows with milestone_count, contract_instance,
//     created_slot/created_time and a nested milestones array.

var projectFields = struct {
	ID, Name, Description, VendorName, VendorAddress, ContractAddress []string
	FundTxHash, FundSlot, FundBlockTime, InitialAmount, Status        []string
	TreasuryInstance, Total, Completed, Disbursed, Balance, UTXOCount []string
	Nested                                                            []string
}{
	ID:               []string{"project_id", "identifier", "id"},
	Name:             []string{"project_name", "name", "label"},
	Description:      []string{"description"},
	VendorName:       []string{"vendor_name", "vendor_label"},
	VendorAddress:    []string{"vendor_address"},
	ContractAddress:  []string{"contract_address"},
	FundTxHash:       []string{"fund_tx_hash", "tx_hash"},
	FundSlot:         []string{"fund_slot", "created_slot"},
	FundBlockTime:    []string{"fund_block_time", "created_time"},
	InitialAmount:    []string{"initial_amount_lovelace", "initial_amount"},
	Status:           []string{"status"},
	TreasuryInstance: []string{"treasury_instance", "contract_instance"},
	Total:            []string{"total_milestones", "milestone_count", "milestones_count"},
	Completed:        []string{"completed_milestones"},
	Disbursed:        []string{"disbursed_milestones"},
	Balance:          []string{"current_balance", "balance_lovelace"},
	UTXOCount:        []string{"utxo_count"},
	Nested:           []string{"milestones"},
}

// nameFallback is consulted after projectFields.Name: the raw identifier
// is preferred over numeric row ids.
var nameFallback = []string{"identifier", "project_id", "id"}

// Keys inside a nested {"milestones": {...}} aggregate object.
var nestedCountFields = struct {
	Total, Completed, Disbursed []string
}{
	Total:     []string{"total", "count"},
	Completed: []string{"completed"},
	Disbursed: []string{"disbursed"},
}

var milestoneFields = struct {
	ID, ProjectID, Order, Label, Description, AcceptanceCriteria, Amount []string
	Status, CompleteTxHash, CompleteTime, CompleteDescription, Evidence  []string
	DisburseTxHash, DisburseTime, DisburseAmount                         []string
}{
	ID:                  []string{"milestone_id", "identifier", "id"},
	ProjectID:           []string{"project_id"},
	Order:               []string{"milestone_order", "order", "ordinal"},
	Label:               []string{"label", "milestone_label", "name"},
	Description:         []string{"description"},
	AcceptanceCriteria:  []string{"acceptance_criteria", "acceptanceCriteria"},
	Amount:              []string{"amount_lovelace", "amount"},
	Status:              []string{"status"},
	CompleteTxHash:      []string{"complete_tx_hash"},
	CompleteTime:        []string{"complete_time"},
	CompleteDescription: []string{"complete_description"},
	Evidence:            []string{"evidence"},
	DisburseTxHash:      []string{"disburse_tx_hash"},
	DisburseTime:        []string{"disburse_time"},
	DisburseAmount:      []string{"disburse_amount"},
}

var transactionFields = struct {
	Hash, Slot, BlockNumber, BlockTime, Action, Metadata []string
	Destination, Source, ProjectID, Amount               []string
}{
	Hash:        []string{"tx_hash", "hash"},
	Slot:        []string{"slot"},
	BlockNumber: []string{"block_number", "block_height", "block"},
	BlockTime:   []string{"block_time"},
	Action:      []string{"action_type", "event_type", "flow_type"},
	Metadata:    []string{"metadata"},
	Destination: []string{"destination", "destination_address"},
	Source:      []string{"source_address"},
	ProjectID:   []string{"project_id"},
	Amount:      []string{"amount_lovelace"},
}

var eventFields = struct {
	ID, Type, TxHash, TxID, ProjectID, ProjectName, MilestoneID  []string
	MilestoneLabel, MilestoneOrder, Slot, BlockNumber, BlockTime []string
	Amount, Reason, Destination, Metadata                        []string
}{
	ID:             []string{"id", "event_id"},
	Type:           []string{"event_type", "type", "action_type"},
	TxHash:         []string{"tx_hash"},
	TxID:           []string{"tx_id"},
	ProjectID:      []string{"project_id"},
	ProjectName:    []string{"project_name"},
	MilestoneID:    []string{"milestone_id", "milestone"},
	MilestoneLabel: []string{"milestone_label"},
	MilestoneOrder: []string{"milestone_order"},
	Slot:           []string{"slot"},
	BlockNumber:    []string{"block_number"},
	BlockTime:      []string{"block_time"},
	Amount:         []string{"amount_lovelace"},
	Reason:         []string{"reason"},
	Destination:    []string{"destination"},
	Metadata:       []string{"metadata"},
}

var addressFields = struct {
	Address, StakeCredential, Balance, UTXOCount, LatestSlot []string
	ScriptHash, ProjectID                                    []string
}{
	Address:         []string{"address", "payment_address", "owner_addr"},
	StakeCredential: []string{"stake_credential", "stake_address"},
	Balance:         []string{"balance_lovelace", "lovelace_amount"},
	UTXOCount:       []string{"utxo_count"},
	LatestSlot:      []string{"latest_slot", "slot"},
	ScriptHash:      []string{"script_hash"},
	ProjectID:       []string{"project_id"},
}

var treasuryFields = struct {
	ID, ScriptHash, PaymentAddress, StakeAddress, Label, Description []string
	Status, PublishTime, InitializedAt, VendorContracts, Active      []string
	Balance, Events                                                  []string
}{
	ID:              []string{"instance_id", "treasury_id", "id"},
	ScriptHash:      []string{"script_hash", "contract_instance"},
	PaymentAddress:  []string{"payment_address", "contract_address", "address"},
	StakeAddress:    []string{"stake_address", "stake_credential"},
	Label:           []string{"label", "name"},
	Description:     []string{"description"},
	Status:          []string{"status"},
	PublishTime:     []string{"publish_time"},
	InitializedAt:   []string{"initialized_at"},
	VendorContracts: []string{"vendor_contract_count"},
	Active:          []string{"active_contracts"},
	Balance:         []string{"treasury_balance", "balance_lovelace"},
	Events:          []string{"total_events"},
}

var utxoFields = struct {
	TxHash, OutputIndex, Owner, Amount, Slot, BlockNumber []string
}{
	TxHash:      []string{"tx_hash"},
	OutputIndex: []string{"output_index"},
	Owner:       []string{"owner_addr", "address"},
	Amount:      []string{"lovelace_amount", "amount_lovelace"},
	Slot:        []string{"slot"},
	BlockNumber: []string{"block_number", "block"},
}

var statsFields = struct {
	Transactions, Addresses, LatestBlock, Projects, Milestones, Balance []string
}{
	Transactions: []string{"tom_transactions", "transaction_count", "total_transactions"},
	Addresses:    []string{"treasury_addresses", "address_count"},
	LatestBlock:  []string{"latest_block"},
	Projects:     []string{"project_count", "vendor_contract_count"},
	Milestones:   []string{"milestone_count"},
	Balance:      []string{"total_balance_lovelace"},
}

var balanceFields = struct {
	Lovelace, Display []string
}{
	Lovelace: []string{"lovelace", "total_balance_lovelace", "balance_lovelace"},
	Display:  []string{"balance", "total_balance"},
}

// Composite project-detail keys.
var detailFields = struct {
	Project, Milestones, Events, Utxos, Balance, UTXOCount []string
}{
	Project:    []string{"project"},
	Milestones: []string{"milestones"},
	Events:     []string{"events"},
	Utxos:      []string{"utxos"},
	Balance:    []string{"balance_lovelace"},
	UTXOCount:  []string{"utxo_count"},
}
