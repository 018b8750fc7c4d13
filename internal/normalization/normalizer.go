// Package normalization maps raw indexing-API records onto the canonical
// domain entities. It never fails: missing fields become nil or their
// documented default, and irregular values are reported to an Observer.
package normalization

import (
	"strconv"

	"treasury-dashboard/internal/domain"
	"treasury-dashboard/internal/wire"
)

// Anomaly kinds reported to an Observer.
const (
	AnomalyUnknownStatus = "unknown_status"
	AnomalyUnknownAction = "unknown_action"
	AnomalyMissingKey    = "missing_key"
	AnomalyStatusRaised  = "status_raised"
)

// Observer receives one call per irregular record. entity names the
// canonical type ("project", "milestone", ...).
type Observer func(entity, kind string)

// Normalizer builds canonical entities from wire records.
// The zero value is ready to use and reports nothing.
type Normalizer struct {
	observe Observer
}

// NewNormalizer creates a normalizer reporting anomalies to observe.
// A nil observer is allowed.
func NewNormalizer(observe Observer) *Normalizer {
	return &Normalizer{observe: observe}
}

func (n *Normalizer) report(entity, kind string) {
	if n == nil || n.observe == nil {
		return
	}
	n.observe(entity, kind)
}

// Project builds a Project from a list or detail record.
func (n *Normalizer) Project(rec wire.Record) domain.Project {
	f := projectFields
	p := domain.Project{
		ID:               rec.StringOr("", f.ID...),
		Name:             projectName(rec),
		Description:      str(rec, f.Description...),
		VendorName:       str(rec, f.VendorName...),
		VendorAddress:    str(rec, f.VendorAddress...),
		ContractAddress:  str(rec, f.ContractAddress...),
		FundTxHash:       str(rec, f.FundTxHash...),
		FundSlot:         rec.IntPtr(f.FundSlot...),
		FundBlockTime:    rec.TimePtr(f.FundBlockTime...),
		InitialAmount:    rec.IntPtr(f.InitialAmount...),
		Status:           str(rec, f.Status...),
		TreasuryInstance: str(rec, f.TreasuryInstance...),
		CurrentBalance:   rec.IntOr(0, f.Balance...),
		UTXOCount:        rec.IntOr(0, f.UTXOCount...),
	}
	if p.ID == "" {
		n.report("project", AnomalyMissingKey)
	}

	counts := n.nestedCounts(rec)
	p.TotalMilestones = rec.IntOr(counts.total, f.Total...)
	p.CompletedMilestones = rec.IntOr(counts.completed, f.Completed...)
	p.DisbursedMilestones = rec.IntOr(counts.disbursed, f.Disbursed...)
	return p
}

// Projects builds every project in recs, preserving order.
func (n *Normalizer) Projects(recs []wire.Record) []domain.Project {
	out := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, n.Project(rec))
	}
	return out
}

// projectName resolves the display name: explicit name, then label, then
// the raw identifier, then DefaultProjectName.
func projectName(rec wire.Record) string {
	if name, ok := rec.String(projectFields.Name...); ok {
		return name
	}
	return rec.StringOr(domain.DefaultProjectName, nameFallback...)
}

type milestoneCounts struct {
	total, completed, disbursed int64
}

// nestedCounts reads milestone aggregates from a nested "milestones" value,
// which is either an aggregate object or the milestone rows themselves.
func (n *Normalizer) nestedCounts(rec wire.Record) milestoneCounts {
	if obj, ok := rec.Object(projectFields.Nested...); ok {
		f := nestedCountFields
		return milestoneCounts{
			total:     obj.IntOr(0, f.Total...),
			completed: obj.IntOr(0, f.Completed...),
			disbursed: obj.IntOr(0, f.Disbursed...),
		}
	}
	if rows, ok := rec.Array(projectFields.Nested...); ok {
		return countMilestones(n.milestones(rows, ""))
	}
	return milestoneCounts{}
}

// countMilestones derives aggregates from effective statuses. Disbursed
// milestones count as completed.
func countMilestones(ms []domain.Milestone) milestoneCounts {
	c := milestoneCounts{total: int64(len(ms))}
	for _, m := range ms {
		if m.Status.AtLeast(domain.MilestoneCompleted) {
			c.completed++
		}
		if m.Status.AtLeast(domain.MilestoneDisbursed) {
			c.disbursed++
		}
	}
	return c
}

// Milestone builds a Milestone. A missing order stays 0.
func (n *Normalizer) Milestone(rec wire.Record) domain.Milestone {
	return n.milestone(rec, 0, "")
}

// Milestones builds milestones in list order. Rows without an order take
// their 1-based list position.
func (n *Normalizer) Milestones(recs []wire.Record) []domain.Milestone {
	return n.milestones(recs, "")
}

func (n *Normalizer) milestones(recs []wire.Record, projectID string) []domain.Milestone {
	out := make([]domain.Milestone, 0, len(recs))
	for i, rec := range recs {
		out = append(out, n.milestone(rec, int64(i+1), projectID))
	}
	return out
}

func (n *Normalizer) milestone(rec wire.Record, position int64, projectID string) domain.Milestone {
	f := milestoneFields
	m := domain.Milestone{
		ProjectID:           rec.StringOr(projectID, f.ProjectID...),
		Order:               rec.IntOr(position, f.Order...),
		Description:         str(rec, f.Description...),
		AcceptanceCriteria:  str(rec, f.AcceptanceCriteria...),
		Amount:              rec.IntPtr(f.Amount...),
		RawStatus:           rec.StringOr("", f.Status...),
		CompleteTxHash:      str(rec, f.CompleteTxHash...),
		CompleteTime:        rec.TimePtr(f.CompleteTime...),
		CompleteDescription: str(rec, f.CompleteDescription...),
		DisburseTxHash:      str(rec, f.DisburseTxHash...),
		DisburseTime:        rec.TimePtr(f.DisburseTime...),
		DisburseAmount:      rec.IntPtr(f.DisburseAmount...),
	}
	if raw, ok := rec.Raw(f.Evidence...); ok {
		m.Evidence = raw
	}
	m.ID = rec.StringOr("", f.ID...)
	if m.ID == "" && m.Order > 0 {
		m.ID = strconv.FormatInt(m.Order, 10)
	}
	m.Label = rec.StringOr(defaultMilestoneLabel(m.Order), f.Label...)
	m.Status = n.effectiveStatus(m)
	return m
}

func defaultMilestoneLabel(order int64) string {
	return "Milestone " + strconv.FormatInt(order, 10)
}

// effectiveStatus combines the reported status with on-chain evidence.
// Evidence only ever raises a status. A reported value outside the
// vocabulary is kept as unknown; a missing one is derived from evidence.
func (n *Normalizer) effectiveStatus(m domain.Milestone) domain.MilestoneStatus {
	evidence := domain.MilestonePending
	switch {
	case m.DisburseTxHash != nil:
		evidence = domain.MilestoneDisbursed
	case m.CompleteTxHash != nil:
		evidence = domain.MilestoneCompleted
	}

	if m.RawStatus == "" {
		return evidence
	}
	reported := domain.ParseMilestoneStatus(m.RawStatus)
	if !reported.IsValid() {
		n.report("milestone", AnomalyUnknownStatus)
		return reported
	}
	if reported != evidence && domain.CanAdvance(reported, evidence) {
		n.report("milestone", AnomalyStatusRaised)
		return evidence
	}
	return reported
}

// str resolves a nullable text field.
func str(rec wire.Record, aliases ...string) *string {
	if s, ok := rec.String(aliases...); ok {
		return &s
	}
	return nil
}
