package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"treasury-dashboard/internal/domain"
	"treasury-dashboard/internal/format"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestBuilder() *Builder {
	return NewBuilder(format.New(format.Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Unix(1700003600, 0) },
	}))
}

func TestProjectCard_Progress(t *testing.T) {
	b := newTestBuilder()
	card := b.ProjectCard(domain.Project{
		ID:                  "EC-1",
		Name:                "Explorer",
		VendorAddress:       ptr("addr1qxyzvendoraddress0000000000000000000000end"),
		TotalMilestones:     4,
		CompletedMilestones: 2,
		CurrentBalance:      1_234_567_890_000,
	})

	if card.ProgressPercent != 50 || card.ProgressLabel != "50%" {
		t.Errorf("progress = %v %q", card.ProgressPercent, card.ProgressLabel)
	}
	if card.MilestonesLabel != "2/4 milestones" {
		t.Errorf("milestones label = %q", card.MilestonesLabel)
	}
	if card.IsCompleted {
		t.Error("2/4 should not be completed")
	}
	if card.Balance != "1,234,567.89" {
		t.Errorf("balance = %q", card.Balance)
	}
	if card.VendorAddressShort != "addr1qxyzven...000000000end" {
		t.Errorf("vendor short = %q", card.VendorAddressShort)
	}
	if card.VendorName != "-" || card.FundedAt != "-" || card.InitialAmount != "0.00" {
		t.Errorf("missing values = %q %q %q", card.VendorName, card.FundedAt, card.InitialAmount)
	}
}

func TestMilestoneRow_DisbursedHash(t *testing.T) {
	b := newTestBuilder()
	hash := "abcd1234" + strings.Repeat("0", 24) + "9876ef01"
	row := b.MilestoneRow(domain.Milestone{
		Order:          1,
		Label:          "Design",
		Status:         domain.MilestoneDisbursed,
		RawStatus:      "disbursed",
		DisburseTxHash: ptr(hash),
		DisburseTime:   ptr(int64(1700000000)),
		DisburseAmount: ptr(int64(5_000_000)),
	})

	if row.DisburseTxShort != "abcd1234...9876ef01" {
		t.Errorf("disburse short = %q", row.DisburseTxShort)
	}
	if row.DisburseTxHash != hash {
		t.Errorf("full hash should be kept, got %q", row.DisburseTxHash)
	}
	if row.DisbursedAt != "11/14/2023, 10:13:20 PM" || row.DisburseAmount != "5.00" {
		t.Errorf("disbursement = %q %q", row.DisbursedAt, row.DisburseAmount)
	}
	if row.CompleteTxShort != "-" || row.CompletedAt != "-" || row.Evidence != "-" {
		t.Errorf("missing completion = %q %q %q", row.CompleteTxShort, row.CompletedAt, row.Evidence)
	}
	if row.Status != "disbursed" || row.StatusKey != "disbursed" {
		t.Errorf("status = %q/%q", row.Status, row.StatusKey)
	}
}

func TestMilestoneRow_UnknownStatus(t *testing.T) {
	row := newTestBuilder().MilestoneRow(domain.Milestone{Status: domain.MilestoneUnknown, RawStatus: "On Hold"})
	if row.Status != "On Hold" || row.StatusKey != "unknown" {
		t.Errorf("status = %q/%q", row.Status, row.StatusKey)
	}
}

func TestEmptyLists(t *testing.T) {
	b := newTestBuilder()

	if l := b.ProjectCards(nil); l.Items == nil || l.EmptyMessage != NoProjects {
		t.Errorf("projects = %+v", l)
	}
	if l := b.TransactionRows(nil); l.EmptyMessage != NoTransactions {
		t.Errorf("transactions = %+v", l)
	}
	page := b.ProjectPage(domain.ProjectDetail{Project: domain.Project{Name: "X"}})
	if page.Milestones.EmptyMessage != NoMilestones {
		t.Errorf("milestones message = %q", page.Milestones.EmptyMessage)
	}
	if l := b.EventRows([]domain.Event{{Type: "fund"}}); l.EmptyMessage != "" {
		t.Errorf("non-empty list should carry no message, got %q", l.EmptyMessage)
	}

	raw, err := json.Marshal(b.ProjectCards(nil))
	require.NoError(t, err)
	if string(raw) != `{"items":[],"empty_message":"No projects found."}` {
		t.Errorf("json = %s", raw)
	}
}

func TestTransactionRowAndPage(t *testing.T) {
	b := newTestBuilder()
	tx := domain.Transaction{
		Hash:        "ffeeddccbbaa99887766554433221100ffeeddccbbaa99887766554433221100",
		Slot:        ptr(int64(123456789)),
		Action:      domain.ActionFund,
		Metadata:    json.RawMessage(`{"body":{"label":"x"}}`),
		Destination: ptr("addr1short"),
	}

	row := b.TransactionRow(tx)
	want := TransactionRow{
		Hash:             tx.Hash,
		HashShort:        "ffeeddcc...33221100",
		Action:           "fund",
		KnownAction:      true,
		Slot:             "123,456,789",
		Block:            "-",
		Time:             "-",
		Ago:              "-",
		Confirmed:        false,
		Destination:      "addr1short",
		DestinationShort: "addr1short",
		Amount:           "0.00",
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}

	page := b.TransactionPage(tx)
	if page.Metadata != "{\n  \"body\": {\n    \"label\": \"x\"\n  }\n}" {
		t.Errorf("metadata = %q", page.Metadata)
	}
}

func TestAddressTable_Totals(t *testing.T) {
	b := newTestBuilder()
	table := b.AddressTable([]domain.TreasuryAddress{
		{Address: "addr1", Balance: 1_000_000, UTXOCount: 2},
		{Address: "addr2", Balance: 500_000, UTXOCount: 1},
	})
	if table.TotalBalance != "1.50" || table.TotalUtxos != 3 {
		t.Errorf("totals = %q %d", table.TotalBalance, table.TotalUtxos)
	}
	require.Len(t, table.Items, 2)

	empty := b.AddressTable(nil)
	if empty.EmptyMessage != NoAddresses || empty.TotalBalance != "0.00" {
		t.Errorf("empty table = %+v", empty)
	}
}

func TestStatsPanel(t *testing.T) {
	b := newTestBuilder()
	panel := b.Stats(domain.Stats{Transactions: 1200, LatestBlock: ptr(int64(10_500_000))}, domain.Balance{Lovelace: 2_500_000})
	if panel.Transactions != "1,200" || panel.LatestBlock != "10,500,000" || panel.TotalBalance != "2.50" {
		t.Errorf("panel = %+v", panel)
	}

	fallback := b.Stats(domain.Stats{}, domain.Balance{Display: "12.345678"})
	if fallback.TotalBalance != "12.345678" {
		t.Errorf("display fallback = %q", fallback.TotalBalance)
	}
}

func TestLanding(t *testing.T) {
	b := newTestBuilder()
	l := b.Landing(LandingInput{
		Treasury: &domain.TreasuryContract{TreasuryInstance: domain.TreasuryInstance{ID: "T1", ScriptHash: "sh"}},
	})
	if l.Treasury == nil || l.Treasury.Label != "T1" {
		t.Errorf("treasury panel = %+v", l.Treasury)
	}
	if l.FeaturedProjects.EmptyMessage != NoProjects || l.RecentTransactions.EmptyMessage != NoTransactions {
		t.Errorf("landing lists = %+v", l)
	}

	if b.Landing(LandingInput{}).Treasury != nil {
		t.Error("nil treasury should leave the panel out")
	}
}
