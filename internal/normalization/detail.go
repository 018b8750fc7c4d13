package normalization

import (
	"treasury-dashboard/internal/domain"
	"treasury-dashboard/internal/wire"
)

// ProjectDetail builds a project with its sub-collections. Two shapes are
// accepted: {"project": {...}, "milestones": [...], "events": [...],
// "utxos": [...]} and a bare project record, optionally carrying its
// milestone rows under "milestones".
//
// Aggregates missing from the project record are derived from the
// sub-collections: milestone counts from effective statuses, balance and
// UTXO count from the outputs.
//
// ok is false when the record describes no project: a composite whose
// "project" is null or not an object, or a project without any id field.
func (n *Normalizer) ProjectDetail(rec wire.Record) (domain.ProjectDetail, bool) {
	projectRec, composite := rec.Object(detailFields.Project...)
	if !composite {
		if _, present := rec[detailFields.Project[0]]; present {
			n.report("project", AnomalyMissingKey)
			return domain.ProjectDetail{}, false
		}
		projectRec = rec
	}
	if !hasAny(projectRec, projectFields.ID...) {
		n.report("project", AnomalyMissingKey)
		return domain.ProjectDetail{}, false
	}

	d := domain.ProjectDetail{Project: n.Project(projectRec)}
	id := d.Project.ID

	if rows, ok := rec.Array(detailFields.Milestones...); ok {
		d.Milestones = n.milestones(rows, id)
	} else {
		d.Milestones = []domain.Milestone{}
	}
	if rows, ok := rec.Array(detailFields.Events...); ok {
		d.Events = n.Events(rows)
	} else {
		d.Events = []domain.Event{}
	}
	if rows, ok := rec.Array(detailFields.Utxos...); ok {
		d.Utxos = n.Utxos(rows)
	} else {
		d.Utxos = []domain.Utxo{}
	}

	f := projectFields
	if composite && !hasAny(projectRec, f.Total...) && !hasAny(projectRec, f.Nested...) && len(d.Milestones) > 0 {
		c := countMilestones(d.Milestones)
		d.Project.TotalMilestones = c.total
		if !hasAny(projectRec, f.Completed...) {
			d.Project.CompletedMilestones = c.completed
		}
		if !hasAny(projectRec, f.Disbursed...) {
			d.Project.DisbursedMilestones = c.disbursed
		}
	}

	if !hasAny(projectRec, f.Balance...) {
		if v, ok := rec.Int(detailFields.Balance...); ok {
			d.Project.CurrentBalance = v
		} else {
			d.Project.CurrentBalance = sumUtxos(d.Utxos)
		}
	}
	if !hasAny(projectRec, f.UTXOCount...) {
		d.Project.UTXOCount = rec.IntOr(int64(len(d.Utxos)), detailFields.UTXOCount...)
	}
	return d, true
}

func hasAny(rec wire.Record, keys ...string) bool {
	for _, k := range keys {
		if rec.Has(k) {
			return true
		}
	}
	return false
}

func sumUtxos(us []domain.Utxo) int64 {
	var total int64
	for _, u := range us {
		total += u.Amount
	}
	return total
}
