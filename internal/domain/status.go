package domain

import "strings"

// MilestoneStatus is the lifecycle stage of a milestone.
// Stages are ordered: pending -> completed -> disbursed.
type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "pending"
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneDisbursed MilestoneStatus = "disbursed"
	MilestoneUnknown   MilestoneStatus = "unknown"
)

// ParseMilestoneStatus maps a wire value onto the vocabulary.
// Matching ignores case and surrounding whitespace; anything else is unknown.
func ParseMilestoneStatus(raw string) MilestoneStatus {
	switch MilestoneStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case MilestonePending:
		return MilestonePending
	case MilestoneCompleted:
		return MilestoneCompleted
	case MilestoneDisbursed:
		return MilestoneDisbursed
	default:
		return MilestoneUnknown
	}
}

// String returns the string representation of MilestoneStatus.
func (s MilestoneStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the three lifecycle stages.
func (s MilestoneStatus) IsValid() bool {
	return s.rank() > 0
}

// rank orders lifecycle stages; unknown is 0.
func (s MilestoneStatus) rank() int {
	switch s {
	case MilestonePending:
		return 1
	case MilestoneCompleted:
		return 2
	case MilestoneDisbursed:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether s has reached stage other.
func (s MilestoneStatus) AtLeast(other MilestoneStatus) bool {
	return s.IsValid() && other.IsValid() && s.rank() >= other.rank()
}

// CanAdvance reports whether a milestone may move from one stage to another.
// Staying put is allowed; moving backward or to/from unknown is not.
func CanAdvance(from, to MilestoneStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return to.rank() >= from.rank()
}

// ActionType is the treasury event recorded by a transaction.
type ActionType string

const (
	ActionInitialize ActionType = "initialize"
	ActionFund       ActionType = "fund"
	ActionDisburse   ActionType = "disburse"
	ActionWithdraw   ActionType = "withdraw"
	ActionComplete   ActionType = "complete"
	ActionPause      ActionType = "pause"
	ActionResume     ActionType = "resume"
	ActionModify     ActionType = "modify"
	ActionCancel     ActionType = "cancel"
	ActionSweep      ActionType = "sweep"
)

// ActionTypes lists the vocabulary in lifecycle order.
var ActionTypes = []ActionType{
	ActionInitialize, ActionFund, ActionDisburse, ActionWithdraw, ActionComplete,
	ActionPause, ActionResume, ActionModify, ActionCancel, ActionSweep,
}

// ParseActionType normalizes case and whitespace. Values outside the
// vocabulary are returned as-is; check IsValid.
func ParseActionType(raw string) ActionType {
	a := ActionType(strings.ToLower(strings.TrimSpace(raw)))
	if a.IsValid() {
		return a
	}
	return ActionType(strings.TrimSpace(raw))
}

// String returns the string representation of ActionType.
func (a ActionType) String() string {
	return string(a)
}

// IsValid checks if the action is part of the vocabulary.
func (a ActionType) IsValid() bool {
	for _, known := range ActionTypes {
		if a == known {
			return true
		}
	}
	return false
}
