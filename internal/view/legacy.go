package view

// Compatibility aliases for presentation code written against the gen-2
// project schema. They are added in one place, at the HTTP boundary, and
// only when enabled; canonical view models never carry these names.

// LegacyProject is a ProjectCard with the gen-2 field names added.
type LegacyProject struct {
	ProjectCard
	MilestoneCount   int64   `json:"milestone_count"`
	ContractInstance *string `json:"contract_instance"`
	CreatedSlot      *int64  `json:"created_slot"`
	CreatedTime      *int64  `json:"created_time"`
}

// LegacyMilestone is a MilestoneRow with milestone_label added.
type LegacyMilestone struct {
	MilestoneRow
	MilestoneLabel string `json:"milestone_label"`
}

// LegacyProjectDetail is a ProjectPage with aliased project and milestones
// and the detail-level balance fields.
type LegacyProjectDetail struct {
	Project         LegacyProject         `json:"project"`
	Milestones      List[LegacyMilestone] `json:"milestones"`
	Events          List[EventRow]        `json:"events"`
	Utxos           List[UtxoRow]         `json:"utxos"`
	BalanceLovelace int64                 `json:"balance_lovelace"`
	UTXOCount       int64                 `json:"utxo_count"`
}

// LegacyLanding is a Landing with aliased featured projects.
type LegacyLanding struct {
	Stats              StatsPanel           `json:"stats"`
	Treasury           *TreasuryPanel       `json:"treasury"`
	RecentTransactions List[TransactionRow] `json:"recent_transactions"`
	FeaturedProjects   List[LegacyProject]  `json:"featured_projects"`
}

// AliasProject adds gen-2 names to a project card.
func AliasProject(p ProjectCard) LegacyProject {
	return LegacyProject{
		ProjectCard:      p,
		MilestoneCount:   p.TotalMilestones,
		ContractInstance: p.TreasuryInstance,
		CreatedSlot:      p.FundSlot,
		CreatedTime:      p.FundBlockTime,
	}
}

// AliasMilestone adds milestone_label to a row.
func AliasMilestone(m MilestoneRow) LegacyMilestone {
	return LegacyMilestone{MilestoneRow: m, MilestoneLabel: m.Label}
}

// AliasProjectPage aliases a project page.
func AliasProjectPage(p ProjectPage) LegacyProjectDetail {
	return LegacyProjectDetail{
		Project:         AliasProject(p.Project),
		Milestones:      mapList(p.Milestones, AliasMilestone),
		Events:          p.Events,
		Utxos:           p.Utxos,
		BalanceLovelace: p.Project.BalanceLovelace,
		UTXOCount:       p.Project.UTXOCount,
	}
}

// AliasLanding aliases the featured projects of a landing view.
func AliasLanding(l Landing) LegacyLanding {
	return LegacyLanding{
		Stats:              l.Stats,
		Treasury:           l.Treasury,
		RecentTransactions: l.RecentTransactions,
		FeaturedProjects:   mapList(l.FeaturedProjects, AliasProject),
	}
}

// Alias applies the compatibility adapter to any view model that has a
// legacy form. Other values are returned unchanged.
func Alias(v any) any {
	switch v := v.(type) {
	case ProjectCard:
		return AliasProject(v)
	case List[ProjectCard]:
		return mapList(v, AliasProject)
	case MilestoneRow:
		return AliasMilestone(v)
	case List[MilestoneRow]:
		return mapList(v, AliasMilestone)
	case ProjectPage:
		return AliasProjectPage(v)
	case Landing:
		return AliasLanding(v)
	default:
		return v
	}
}

func mapList[T, U any](l List[T], fn func(T) U) List[U] {
	out := make([]U, 0, len(l.Items))
	for _, item := range l.Items {
		out = append(out, fn(item))
	}
	return List[U]{Items: out, EmptyMessage: l.EmptyMessage}
}
