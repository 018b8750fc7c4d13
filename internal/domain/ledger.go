package domain

import "encoding/json"

// Transaction is an on-chain treasury event record.
type Transaction struct {
	Hash        string          // PRIMARY KEY, opaque hex
	Slot        *int64          // nullable
	BlockNumber *int64          // nullable
	BlockTime   *int64          // Unix seconds; nil until confirmed/indexed
	Action      ActionType      // vocabulary value or verbatim wire text
	Metadata    json.RawMessage // opaque JSON shown verbatim (nullable)
	Destination *string         // nullable
	Source      *string         // nullable, fund-flow rows only
	ProjectID   *string         // nullable
	Amount      *int64          // lovelace, nullable
}

// Event is a lightweight transaction-linked record for list views.
type Event struct {
	ID             *string // nullable, indexer row id
	Type           string  // action vocabulary or verbatim
	TxHash         *string // linked transaction hash (nullable on the oldest schema)
	TxID           *string // linked transaction row id (oldest schema only)
	ProjectID      *string
	ProjectName    *string
	MilestoneID    *string
	MilestoneLabel *string
	MilestoneOrder *int64
	Slot           *int64
	BlockNumber    *int64
	BlockTime      *int64
	Amount         *int64
	Reason         *string
	Destination    *string
	Metadata       json.RawMessage
}

// TxRef returns the best available transaction reference.
func (e Event) TxRef() string {
	if e.TxHash != nil {
		return *e.TxHash
	}
	if e.TxID != nil {
		return *e.TxID
	}
	return ""
}

// TreasuryAddress is a script address holding treasury or vendor funds.
type TreasuryAddress struct {
	Address         string  // PRIMARY KEY
	StakeCredential *string // nullable
	Balance         int64   // lovelace
	UTXOCount       int64
	LatestSlot      *int64
	ScriptHash      *string // vendor-contract rows only
	ProjectID       *string // vendor-contract rows only
}

// TreasuryInstance identifies the deployed treasury contract.
type TreasuryInstance struct {
	ID             string
	ScriptHash     string
	PaymentAddress string
	StakeAddress   *string
	Label          *string
	Description    *string
}

// TreasuryContract is a treasury instance with aggregate counters.
type TreasuryContract struct {
	TreasuryInstance
	Status              *string
	PublishTime         *int64
	InitializedAt       *int64
	VendorContractCount int64
	ActiveContracts     int64
	Balance             int64
	TotalEvents         int64
}

// Utxo is an unspent output tracked by the indexer.
type Utxo struct {
	TxHash      string
	OutputIndex int64
	Owner       *string
	Amount      int64 // lovelace
	Slot        *int64
	BlockNumber *int64
}

// Stats are the landing-page counters.
type Stats struct {
	Transactions      int64
	TreasuryAddresses int64
	LatestBlock       *int64
	ProjectCount      int64
	MilestoneCount    int64
	TotalBalance      int64 // lovelace
}

// Balance is the aggregate treasury balance.
type Balance struct {
	Lovelace int64
	Display  string // indexer-formatted ADA string, verbatim
}
