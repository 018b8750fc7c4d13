package normalization

import (
	"treasury-dashboard/internal/domain"
	"treasury-dashboard/internal/wire"
)

// Transaction builds a Transaction. ok is false when the record has no hash.
func (n *Normalizer) Transaction(rec wire.Record) (domain.Transaction, bool) {
	f := transactionFields
	hash, ok := rec.String(f.Hash...)
	if !ok {
		n.report("transaction", AnomalyMissingKey)
		return domain.Transaction{}, false
	}
	tx := domain.Transaction{
		Hash:        hash,
		Slot:        rec.IntPtr(f.Slot...),
		BlockNumber: rec.IntPtr(f.BlockNumber...),
		BlockTime:   rec.TimePtr(f.BlockTime...),
		Action:      n.action("transaction", rec, f.Action...),
		Destination: str(rec, f.Destination...),
		Source:      str(rec, f.Source...),
		ProjectID:   str(rec, f.ProjectID...),
		Amount:      rec.IntPtr(f.Amount...),
	}
	if raw, ok := rec.Raw(f.Metadata...); ok {
		tx.Metadata = raw
	}
	return tx, true
}

// Transactions builds every transaction with a hash, preserving order.
func (n *Normalizer) Transactions(recs []wire.Record) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(recs))
	for _, rec := range recs {
		if tx, ok := n.Transaction(rec); ok {
			out = append(out, tx)
		}
	}
	return out
}

func (n *Normalizer) action(entity string, rec wire.Record, aliases ...string) domain.ActionType {
	raw, ok := rec.String(aliases...)
	if !ok {
		return ""
	}
	a := domain.ParseActionType(raw)
	if !a.IsValid() {
		n.report(entity, AnomalyUnknownAction)
	}
	return a
}

const unknownEventType = "unknown"

// Event builds an Event. Events are kept even without a transaction link.
func (n *Normalizer) Event(rec wire.Record) domain.Event {
	f := eventFields
	ev := domain.Event{
		ID:             str(rec, f.ID...),
		Type:           n.action("event", rec, f.Type...).String(),
		TxHash:         str(rec, f.TxHash...),
		TxID:           str(rec, f.TxID...),
		ProjectID:      str(rec, f.ProjectID...),
		ProjectName:    str(rec, f.ProjectName...),
		MilestoneID:    str(rec, f.MilestoneID...),
		MilestoneLabel: str(rec, f.MilestoneLabel...),
		MilestoneOrder: rec.IntPtr(f.MilestoneOrder...),
		Slot:           rec.IntPtr(f.Slot...),
		BlockNumber:    rec.IntPtr(f.BlockNumber...),
		BlockTime:      rec.TimePtr(f.BlockTime...),
		Amount:         rec.IntPtr(f.Amount...),
		Reason:         str(rec, f.Reason...),
		Destination:    str(rec, f.Destination...),
	}
	if ev.Type == "" {
		ev.Type = unknownEventType
	}
	if raw, ok := rec.Raw(f.Metadata...); ok {
		ev.Metadata = raw
	}
	return ev
}

// Events builds every event, preserving order.
func (n *Normalizer) Events(recs []wire.Record) []domain.Event {
	out := make([]domain.Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, n.Event(rec))
	}
	return out
}

// TreasuryAddress builds a TreasuryAddress. ok is false without an address.
func (n *Normalizer) TreasuryAddress(rec wire.Record) (domain.TreasuryAddress, bool) {
	f := addressFields
	addr, ok := rec.String(f.Address...)
	if !ok {
		n.report("treasury_address", AnomalyMissingKey)
		return domain.TreasuryAddress{}, false
	}
	return domain.TreasuryAddress{
		Address:         addr,
		StakeCredential: str(rec, f.StakeCredential...),
		Balance:         rec.IntOr(0, f.Balance...),
		UTXOCount:       rec.IntOr(0, f.UTXOCount...),
		LatestSlot:      rec.IntPtr(f.LatestSlot...),
		ScriptHash:      str(rec, f.ScriptHash...),
		ProjectID:       str(rec, f.ProjectID...),
	}, true
}

// TreasuryAddresses builds every address row, preserving order.
func (n *Normalizer) TreasuryAddresses(recs []wire.Record) []domain.TreasuryAddress {
	out := make([]domain.TreasuryAddress, 0, len(recs))
	for _, rec := range recs {
		if a, ok := n.TreasuryAddress(rec); ok {
			out = append(out, a)
		}
	}
	return out
}

// TreasuryInstance builds a TreasuryInstance.
func (n *Normalizer) TreasuryInstance(rec wire.Record) domain.TreasuryInstance {
	f := treasuryFields
	ti := domain.TreasuryInstance{
		ID:             rec.StringOr("", f.ID...),
		ScriptHash:     rec.StringOr("", f.ScriptHash...),
		PaymentAddress: rec.StringOr("", f.PaymentAddress...),
		StakeAddress:   str(rec, f.StakeAddress...),
		Label:          str(rec, f.Label...),
		Description:    str(rec, f.Description...),
	}
	if ti.ID == "" && ti.ScriptHash == "" {
		n.report("treasury_instance", AnomalyMissingKey)
	}
	return ti
}

// TreasuryInstances builds every instance, preserving order.
func (n *Normalizer) TreasuryInstances(recs []wire.Record) []domain.TreasuryInstance {
	out := make([]domain.TreasuryInstance, 0, len(recs))
	for _, rec := range recs {
		out = append(out, n.TreasuryInstance(rec))
	}
	return out
}

// TreasuryContract builds a TreasuryContract with its counters.
func (n *Normalizer) TreasuryContract(rec wire.Record) domain.TreasuryContract {
	f := treasuryFields
	return domain.TreasuryContract{
		TreasuryInstance:    n.TreasuryInstance(rec),
		Status:              str(rec, f.Status...),
		PublishTime:         rec.TimePtr(f.PublishTime...),
		InitializedAt:       rec.TimePtr(f.InitializedAt...),
		VendorContractCount: rec.IntOr(0, f.VendorContracts...),
		ActiveContracts:     rec.IntOr(0, f.Active...),
		Balance:             rec.IntOr(0, f.Balance...),
		TotalEvents:         rec.IntOr(0, f.Events...),
	}
}

// TreasuryContracts builds every contract, preserving order.
func (n *Normalizer) TreasuryContracts(recs []wire.Record) []domain.TreasuryContract {
	out := make([]domain.TreasuryContract, 0, len(recs))
	for _, rec := range recs {
		out = append(out, n.TreasuryContract(rec))
	}
	return out
}

// Utxo builds a Utxo. ok is false without a transaction hash.
func (n *Normalizer) Utxo(rec wire.Record) (domain.Utxo, bool) {
	f := utxoFields
	hash, ok := rec.String(f.TxHash...)
	if !ok {
		n.report("utxo", AnomalyMissingKey)
		return domain.Utxo{}, false
	}
	return domain.Utxo{
		TxHash:      hash,
		OutputIndex: rec.IntOr(0, f.OutputIndex...),
		Owner:       str(rec, f.Owner...),
		Amount:      rec.IntOr(0, f.Amount...),
		Slot:        rec.IntPtr(f.Slot...),
		BlockNumber: rec.IntPtr(f.BlockNumber...),
	}, true
}

// Utxos builds every output with a hash, preserving order.
func (n *Normalizer) Utxos(recs []wire.Record) []domain.Utxo {
	out := make([]domain.Utxo, 0, len(recs))
	for _, rec := range recs {
		if u, ok := n.Utxo(rec); ok {
			out = append(out, u)
		}
	}
	return out
}

// Stats builds the landing-page counters. Missing counters are 0.
func (n *Normalizer) Stats(rec wire.Record) domain.Stats {
	f := statsFields
	return domain.Stats{
		Transactions:      rec.IntOr(0, f.Transactions...),
		TreasuryAddresses: rec.IntOr(0, f.Addresses...),
		LatestBlock:       rec.IntPtr(f.LatestBlock...),
		ProjectCount:      rec.IntOr(0, f.Projects...),
		MilestoneCount:    rec.IntOr(0, f.Milestones...),
		TotalBalance:      rec.IntOr(0, f.Balance...),
	}
}

// Balance builds the aggregate balance.
func (n *Normalizer) Balance(rec wire.Record) domain.Balance {
	f := balanceFields
	return domain.Balance{
		Lovelace: rec.IntOr(0, f.Lovelace...),
		Display:  rec.StringOr("", f.Display...),
	}
}
