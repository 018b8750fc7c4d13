package view

import (
	"strconv"

	"treasury-dashboard/internal/domain"
	"treasury-dashboard/internal/format"
)

// Builder turns domain entities into view models using one Formatter.
type Builder struct {
	f *format.Formatter
}

// NewBuilder creates a Builder. A nil formatter selects en-US in local time.
func NewBuilder(f *format.Formatter) *Builder {
	if f == nil {
		f = format.New(format.Options{})
	}
	return &Builder{f: f}
}

// Formatter returns the formatter in use.
func (b *Builder) Formatter() *format.Formatter {
	return b.f
}

// Stats builds the counter panel. The indexer's own balance string is used
// only when it reports no lovelace figure.
func (b *Builder) Stats(s domain.Stats, bal domain.Balance) StatsPanel {
	lovelace := s.TotalBalance
	if bal.Lovelace > 0 {
		lovelace = bal.Lovelace
	}
	total := b.f.Lovelace(lovelace)
	if lovelace == 0 && bal.Display != "" {
		total = bal.Display
	}
	return StatsPanel{
		Transactions:         b.f.Count(s.Transactions),
		TreasuryAddresses:    b.f.Count(s.TreasuryAddresses),
		LatestBlock:          b.f.CountPtr(s.LatestBlock),
		Projects:             b.f.Count(s.ProjectCount),
		Milestones:           b.f.Count(s.MilestoneCount),
		TotalBalance:         total,
		TotalBalanceLovelace: lovelace,
	}
}

// Treasury builds the treasury panel.
func (b *Builder) Treasury(tc domain.TreasuryContract) TreasuryPanel {
	label := format.Text(tc.Label)
	if tc.Label == nil {
		label = tc.ID
	}
	return TreasuryPanel{
		ID:                  tc.ID,
		Label:               label,
		Description:         deref(tc.Description),
		ScriptHash:          tc.ScriptHash,
		ScriptHashShort:     format.Truncate(tc.ScriptHash, TreasuryAddressWidth),
		PaymentAddress:      tc.PaymentAddress,
		PaymentAddressShort: format.Truncate(tc.PaymentAddress, TreasuryAddressWidth),
		StakeAddress:        format.TruncatePtr(tc.StakeAddress, TreasuryAddressWidth),
		Status:              format.Text(tc.Status),
		PublishedAt:         b.f.Timestamp(tc.PublishTime),
		Balance:             b.f.Lovelace(tc.Balance),
		VendorContracts:     b.f.Count(tc.VendorContractCount),
		ActiveContracts:     b.f.Count(tc.ActiveContracts),
		TotalEvents:         b.f.Count(tc.TotalEvents),
	}
}

// ProjectCard builds one project card.
func (b *Builder) ProjectCard(p domain.Project) ProjectCard {
	progress := p.ProgressPercent()
	return ProjectCard{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         deref(p.Description),
		VendorName:          format.Text(p.VendorName),
		VendorAddress:       deref(p.VendorAddress),
		VendorAddressShort:  format.TruncatePtr(p.VendorAddress, VendorAddressWidth),
		ContractAddress:     deref(p.ContractAddress),
		FundTxHash:          deref(p.FundTxHash),
		FundTxShort:         format.TruncatePtr(p.FundTxHash, TxHashWidth),
		FundedAt:            b.f.Timestamp(p.FundBlockTime),
		InitialAmount:       b.f.Ada(p.InitialAmount),
		Status:              format.Text(p.Status),
		TotalMilestones:     p.TotalMilestones,
		CompletedMilestones: p.CompletedMilestones,
		DisbursedMilestones: p.DisbursedMilestones,
		ProgressPercent:     progress,
		ProgressLabel:       b.f.Percent(progress) + "%",
		MilestonesLabel:     strconv.FormatInt(p.CompletedMilestones, 10) + "/" + strconv.FormatInt(p.TotalMilestones, 10) + " milestones",
		IsCompleted:         p.IsCompleted(),
		Balance:             b.f.Lovelace(p.CurrentBalance),
		BalanceLovelace:     p.CurrentBalance,
		UTXOCount:           p.UTXOCount,
		TreasuryInstance:    p.TreasuryInstance,
		FundSlot:            p.FundSlot,
		FundBlockTime:       p.FundBlockTime,
	}
}

// ProjectCards builds the project list.
func (b *Builder) ProjectCards(ps []domain.Project) List[ProjectCard] {
	out := make([]ProjectCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, b.ProjectCard(p))
	}
	return newList(out, NoProjects)
}

// MilestoneRow builds one timeline row.
func (b *Builder) MilestoneRow(m domain.Milestone) MilestoneRow {
	return MilestoneRow{
		ProjectID:           m.ProjectID,
		ID:                  m.ID,
		Order:               m.Order,
		Label:               m.Label,
		Description:         deref(m.Description),
		AcceptanceCriteria:  deref(m.AcceptanceCriteria),
		Amount:              b.f.Ada(m.Amount),
		Status:              m.DisplayStatus(),
		StatusKey:           m.Status.String(),
		CompleteTxHash:      deref(m.CompleteTxHash),
		CompleteTxShort:     format.TruncatePtr(m.CompleteTxHash, TxHashWidth),
		CompletedAt:         b.f.Timestamp(m.CompleteTime),
		CompleteDescription: deref(m.CompleteDescription),
		Evidence:            format.JSON(m.Evidence),
		DisburseTxHash:      deref(m.DisburseTxHash),
		DisburseTxShort:     format.TruncatePtr(m.DisburseTxHash, TxHashWidth),
		DisbursedAt:         b.f.Timestamp(m.DisburseTime),
		DisburseAmount:      b.f.Ada(m.DisburseAmount),
	}
}

// MilestoneRows builds a project timeline.
func (b *Builder) MilestoneRows(ms []domain.Milestone) List[MilestoneRow] {
	out := make([]MilestoneRow, 0, len(ms))
	for _, m := range ms {
		out = append(out, b.MilestoneRow(m))
	}
	return newList(out, NoMilestones)
}

// EventRow builds one feed row.
func (b *Builder) EventRow(e domain.Event) EventRow {
	ref := e.TxRef()
	return EventRow{
		ID:             deref(e.ID),
		Type:           e.Type,
		KnownType:      domain.ActionType(e.Type).IsValid(),
		TxRef:          ref,
		TxShort:        format.Truncate(ref, TxHashWidth),
		ProjectID:      deref(e.ProjectID),
		ProjectName:    deref(e.ProjectName),
		MilestoneLabel: deref(e.MilestoneLabel),
		Amount:         b.f.Ada(e.Amount),
		Reason:         deref(e.Reason),
		Destination:    format.TruncatePtr(e.Destination, VendorAddressWidth),
		Time:           b.f.Timestamp(e.BlockTime),
		Ago:            b.f.Ago(e.BlockTime),
		Slot:           b.f.CountPtr(e.Slot),
	}
}

// EventRows builds an activity feed.
func (b *Builder) EventRows(es []domain.Event) List[EventRow] {
	out := make([]EventRow, 0, len(es))
	for _, e := range es {
		out = append(out, b.EventRow(e))
	}
	return newList(out, NoEvents)
}

// UtxoRows builds the output list.
func (b *Builder) UtxoRows(us []domain.Utxo) List[UtxoRow] {
	out := make([]UtxoRow, 0, len(us))
	for _, u := range us {
		out = append(out, UtxoRow{
			TxHash:      u.TxHash,
			TxShort:     format.Truncate(u.TxHash, TxHashWidth),
			OutputIndex: u.OutputIndex,
			Owner:       format.TruncatePtr(u.Owner, TreasuryAddressWidth),
			Amount:      b.f.Lovelace(u.Amount),
			Block:       b.f.CountPtr(u.BlockNumber),
		})
	}
	return newList(out, NoUtxos)
}

// ProjectPage builds the project detail view.
func (b *Builder) ProjectPage(d domain.ProjectDetail) ProjectPage {
	return ProjectPage{
		Project:    b.ProjectCard(d.Project),
		Milestones: b.MilestoneRows(d.Milestones),
		Events:     b.EventRows(d.Events),
		Utxos:      b.UtxoRows(d.Utxos),
	}
}

// TransactionRow builds one list row. A transaction without a block time
// is shown as unconfirmed.
func (b *Builder) TransactionRow(tx domain.Transaction) TransactionRow {
	return TransactionRow{
		Hash:             tx.Hash,
		HashShort:        format.Truncate(tx.Hash, TxHashWidth),
		Action:           tx.Action.String(),
		KnownAction:      tx.Action.IsValid(),
		Slot:             b.f.CountPtr(tx.Slot),
		Block:            b.f.CountPtr(tx.BlockNumber),
		Time:             b.f.Timestamp(tx.BlockTime),
		Ago:              b.f.Ago(tx.BlockTime),
		Confirmed:        tx.BlockTime != nil,
		Destination:      deref(tx.Destination),
		DestinationShort: format.TruncatePtr(tx.Destination, VendorAddressWidth),
		ProjectID:        deref(tx.ProjectID),
		Amount:           b.f.Ada(tx.Amount),
	}
}

// TransactionRows builds a transaction list.
func (b *Builder) TransactionRows(txs []domain.Transaction) List[TransactionRow] {
	out := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		out = append(out, b.TransactionRow(tx))
	}
	return newList(out, NoTransactions)
}

// TransactionPage builds the transaction detail view. Metadata is shown
// verbatim.
func (b *Builder) TransactionPage(tx domain.Transaction) TransactionPage {
	return TransactionPage{
		TransactionRow: b.TransactionRow(tx),
		Source:         deref(tx.Source),
		Metadata:       format.JSON(tx.Metadata),
	}
}

// AddressRow builds one address row.
func (b *Builder) AddressRow(a domain.TreasuryAddress) AddressRow {
	return AddressRow{
		Address:         a.Address,
		AddressShort:    format.Truncate(a.Address, TreasuryAddressWidth),
		StakeCredential: format.TruncatePtr(a.StakeCredential, TreasuryAddressWidth),
		Balance:         b.f.Lovelace(a.Balance),
		BalanceLovelace: a.Balance,
		UTXOCount:       a.UTXOCount,
		LatestSlot:      b.f.CountPtr(a.LatestSlot),
		ScriptHash:      deref(a.ScriptHash),
		ProjectID:       deref(a.ProjectID),
	}
}

// AddressTable builds an address table with totals.
func (b *Builder) AddressTable(as []domain.TreasuryAddress) AddressTable {
	out := make([]AddressRow, 0, len(as))
	var balance, utxos int64
	for _, a := range as {
		out = append(out, b.AddressRow(a))
		balance += a.Balance
		utxos += a.UTXOCount
	}
	return AddressTable{
		List:         newList(out, NoAddresses),
		TotalBalance: b.f.Lovelace(balance),
		TotalUtxos:   utxos,
	}
}

// LandingInput is everything the landing view is built from. A nil
// Treasury leaves the panel out.
type LandingInput struct {
	Stats        domain.Stats
	Balance      domain.Balance
	Treasury     *domain.TreasuryContract
	Transactions []domain.Transaction
	Projects     []domain.Project
}

// Landing builds the home view.
func (b *Builder) Landing(in LandingInput) Landing {
	l := Landing{
		Stats:              b.Stats(in.Stats, in.Balance),
		RecentTransactions: b.TransactionRows(in.Transactions),
		FeaturedProjects:   b.ProjectCards(in.Projects),
	}
	if in.Treasury != nil {
		panel := b.Treasury(*in.Treasury)
		l.Treasury = &panel
	}
	return l
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
