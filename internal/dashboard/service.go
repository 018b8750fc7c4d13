// Package dashboard composes the indexer client, normalizer and view
// builder into one method per dashboard view.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"treasury-dashboard/internal/indexer"
	"treasury-dashboard/internal/normalization"
	"treasury-dashboard/internal/observability"
	"treasury-dashboard/internal/view"
	"treasury-dashboard/internal/wire"
)

// Landing list sizes.
const (
	RecentTransactionsLimit = 10
	FeaturedProjectsLimit   = 6
)

// Indexer is the read surface of the indexing API.
type Indexer interface {
	Stats(ctx context.Context) wire.Record
	Balance(ctx context.Context) wire.Record
	Transactions(ctx context.Context, q indexer.TransactionQuery) []wire.Record
	Transaction(ctx context.Context, hash string) wire.Record
	Projects(ctx context.Context, q indexer.ProjectQuery) []wire.Record
	Project(ctx context.Context, id string) wire.Record
	ProjectMilestones(ctx context.Context, id string) []wire.Record
	Milestones(ctx context.Context) []wire.Record
	ProjectEvents(ctx context.Context, id string) []wire.Record
	TreasuryAddresses(ctx context.Context) []wire.Record
	VendorContracts(ctx context.Context) []wire.Record
	FundFlows(ctx context.Context, q indexer.PageQuery) []wire.Record
	ActionTransactions(ctx context.Context, action string, q indexer.PageQuery) []wire.Record
	Events(ctx context.Context, q indexer.EventQuery) []wire.Record
	Utxos(ctx context.Context) []wire.Record
	Treasury(ctx context.Context) []wire.Record
}

// Service builds dashboard views. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	source     Indexer
	normalizer *normalization.Normalizer
	builder    *view.Builder
	logger     *zap.Logger
}

// NewService creates a Service.
func NewService(source Indexer, normalizer *normalization.Normalizer, builder *view.Builder, logger *zap.Logger) *Service {
	if normalizer == nil {
		normalizer = normalization.NewNormalizer(nil)
	}
	if builder == nil {
		builder = view.NewBuilder(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:     source,
		normalizer: normalizer,
		builder:    builder,
		logger:     logger,
	}
}

// Landing fetches the home view's five sources concurrently. Each source
// degrades on its own: a failed fetch leaves its panel empty.
func (s *Service) Landing(ctx context.Context) view.Landing {
	start := time.Now()

	var (
		stats, balance wire.Record
		txs, projects  []wire.Record
		treasury       []wire.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats = s.source.Stats(gctx)
		return nil
	})
	g.Go(func() error {
		balance = s.source.Balance(gctx)
		return nil
	})
	g.Go(func() error {
		txs = s.source.Transactions(gctx, indexer.TransactionQuery{Limit: RecentTransactionsLimit})
		return nil
	})
	g.Go(func() error {
		projects = s.source.Projects(gctx, indexer.ProjectQuery{Limit: FeaturedProjectsLimit})
		return nil
	})
	g.Go(func() error {
		treasury = s.source.Treasury(gctx)
		return nil
	})
	_ = g.Wait()

	in := view.LandingInput{
		Stats:        s.normalizer.Stats(stats),
		Balance:      s.normalizer.Balance(balance),
		Transactions: s.normalizer.Transactions(txs),
		Projects:     s.normalizer.Projects(projects),
	}
	if len(treasury) > 0 {
		tc := s.normalizer.TreasuryContract(treasury[0])
		in.Treasury = &tc
	}

	observability.RecordLanding(time.Since(start).Seconds())
	s.record("landing", stats == nil && len(txs) == 0 && len(projects) == 0)
	return s.builder.Landing(in)
}

// Projects lists project cards.
func (s *Service) Projects(ctx context.Context, q indexer.ProjectQuery) view.List[view.ProjectCard] {
	out := s.builder.ProjectCards(s.normalizer.Projects(s.source.Projects(ctx, q)))
	s.record("projects", len(out.Items) == 0)
	return out
}

// Project builds the project page, or returns ErrNotFound.
func (s *Service) Project(ctx context.Context, id string) (view.ProjectPage, error) {
	rec := s.source.Project(ctx, id)
	if rec == nil {
		s.recordNotFound("project")
		return view.ProjectPage{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	detail, ok := s.normalizer.ProjectDetail(rec)
	if !ok {
		s.recordNotFound("project")
		return view.ProjectPage{}, fmt.Errorf("project %q is empty: %w", id, ErrNotFound)
	}
	s.record("project", false)
	return s.builder.ProjectPage(detail), nil
}

// Milestones lists one project's milestones in order. An empty projectID
// lists milestones across all projects.
func (s *Service) Milestones(ctx context.Context, projectID string) view.List[view.MilestoneRow] {
	var recs []wire.Record
	if projectID == "" {
		recs = s.source.Milestones(ctx)
	} else {
		recs = s.source.ProjectMilestones(ctx, projectID)
	}
	out := s.builder.MilestoneRows(s.normalizer.Milestones(recs))
	s.record("milestones", len(out.Items) == 0)
	return out
}

// ProjectEvents lists one project's events.
func (s *Service) ProjectEvents(ctx context.Context, projectID string) view.List[view.EventRow] {
	out := s.builder.EventRows(s.normalizer.Events(s.source.ProjectEvents(ctx, projectID)))
	s.record("project_events", len(out.Items) == 0)
	return out
}

// Transactions lists transactions.
func (s *Service) Transactions(ctx context.Context, q indexer.TransactionQuery) view.List[view.TransactionRow] {
	out := s.builder.TransactionRows(s.normalizer.Transactions(s.source.Transactions(ctx, q)))
	s.record("transactions", len(out.Items) == 0)
	return out
}

// Transaction builds the transaction page, or returns ErrNotFound.
func (s *Service) Transaction(ctx context.Context, hash string) (view.TransactionPage, error) {
	rec := s.source.Transaction(ctx, hash)
	if rec == nil {
		s.recordNotFound("transaction")
		return view.TransactionPage{}, fmt.Errorf("transaction %q: %w", hash, ErrNotFound)
	}
	tx, ok := s.normalizer.Transaction(rec)
	if !ok {
		s.recordNotFound("transaction")
		return view.TransactionPage{}, fmt.Errorf("transaction %q has no hash: %w", hash, ErrNotFound)
	}
	s.record("transaction", false)
	return s.builder.TransactionPage(tx), nil
}

// TreasuryAddresses lists treasury script addresses with totals.
func (s *Service) TreasuryAddresses(ctx context.Context) view.AddressTable {
	out := s.builder.AddressTable(s.normalizer.TreasuryAddresses(s.source.TreasuryAddresses(ctx)))
	s.record("treasury_addresses", len(out.Items) == 0)
	return out
}

// VendorContracts lists vendor contract addresses with totals.
func (s *Service) VendorContracts(ctx context.Context) view.AddressTable {
	out := s.builder.AddressTable(s.normalizer.TreasuryAddresses(s.source.VendorContracts(ctx)))
	s.record("vendor_contracts", len(out.Items) == 0)
	return out
}

// FundFlows lists fund movements.
func (s *Service) FundFlows(ctx context.Context, q indexer.PageQuery) view.List[view.TransactionRow] {
	out := s.builder.TransactionRows(s.normalizer.Transactions(s.source.FundFlows(ctx, q)))
	s.record("fund_flows", len(out.Items) == 0)
	return out
}

// ActionTransactions lists transactions of one action from its dedicated
// endpoint. Actions without one return ErrInvalidInput.
func (s *Service) ActionTransactions(ctx context.Context, action string, q indexer.PageQuery) (view.List[view.TransactionRow], error) {
	if _, err := indexer.ActionPath(action); err != nil {
		return view.List[view.TransactionRow]{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out := s.builder.TransactionRows(s.normalizer.Transactions(s.source.ActionTransactions(ctx, action, q)))
	s.record("action_transactions", len(out.Items) == 0)
	return out, nil
}

// Events lists TOM events.
func (s *Service) Events(ctx context.Context, q indexer.EventQuery) view.List[view.EventRow] {
	out := s.builder.EventRows(s.normalizer.Events(s.source.Events(ctx, q)))
	s.record("events", len(out.Items) == 0)
	return out
}

// Utxos lists unspent outputs.
func (s *Service) Utxos(ctx context.Context) view.List[view.UtxoRow] {
	out := s.builder.UtxoRows(s.normalizer.Utxos(s.source.Utxos(ctx)))
	s.record("utxos", len(out.Items) == 0)
	return out
}

func (s *Service) record(name string, empty bool) {
	result := "ok"
	if empty {
		result = "empty"
	}
	observability.RecordViewLoad(name, result)
	s.logger.Debug("view built", zap.String("view", name), zap.String("result", result))
}

func (s *Service) recordNotFound(name string) {
	observability.RecordViewLoad(name, "not_found")
	s.logger.Debug("view not found", zap.String("view", name))
}
