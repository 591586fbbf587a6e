package domain

import (
	"sort"
	"time"
)

// RegulationType classifies the kind of regulatory action an item announces.
type RegulationType string

const (
	TypeEnforcement  RegulationType = "enforcement"
	TypeFinalRule    RegulationType = "final_rule"
	TypeProposedRule RegulationType = "proposed_rule"
)

// Label is the human readable name of the type.
func (t RegulationType) Label() string {
	switch t {
	case TypeEnforcement:
		return "Enforcement Action"
	case TypeFinalRule:
		return "Final Rule"
	case TypeProposedRule:
		return "Proposed Rule"
	default:
		return string(t)
	}
}

// ImpactArea is a business function affected by a regulation.
type ImpactArea string

const (
	AreaOperations ImpactArea = "operations"
	AreaReporting  ImpactArea = "reporting"
	AreaTechnology ImpactArea = "technology"
)

var areaOrder = map[ImpactArea]int{
	AreaOperations: 0,
	AreaReporting:  1,
	AreaTechnology: 2,
}

// ImpactAreas is a non-empty, duplicate-free set of areas in canonical order.
type ImpactAreas []ImpactArea

// NewImpactAreas normalizes the given areas. Unknown values are dropped and
// an empty result becomes {operations}.
func NewImpactAreas(areas ...ImpactArea) ImpactAreas {
	seen := make(map[ImpactArea]struct{}, len(areas))
	out := make(ImpactAreas, 0, len(areas))
	for _, area := range areas {
		if _, known := areaOrder[area]; !known {
			continue
		}
		if _, dup := seen[area]; dup {
			continue
		}
		seen[area] = struct{}{}
		out = append(out, area)
	}
	if len(out) == 0 {
		return ImpactAreas{AreaOperations}
	}
	sort.Slice(out, func(i, j int) bool { return areaOrder[out[i]] < areaOrder[out[j]] })
	return out
}

// Contains reports whether the set includes area.
func (a ImpactAreas) Contains(area ImpactArea) bool {
	for _, v := range a {
		if v == area {
			return true
		}
	}
	return false
}

// Priority ranks action items and deadlines.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight orders priorities: high=3, medium=2, low=1.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ActionCategory groups action items by the team that owns them.
type ActionCategory string

const (
	CategoryLegal       ActionCategory = "legal"
	CategoryTechnical   ActionCategory = "technical"
	CategoryOperational ActionCategory = "operational"
)

// ActionItem is a concrete step a compliance team should take.
type ActionItem struct {
	Description    string         `json:"description"`
	Priority       Priority       `json:"priority"`
	EstimatedHours int            `json:"estimatedHours"`
	Category       ActionCategory `json:"category"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
	Completed      bool           `json:"completed"`
}

// ComplianceDeadline is a date (exact or estimated) mentioned by a regulation.
type ComplianceDeadline struct {
	Description   string     `json:"description"`
	Date          *time.Time `json:"date,omitempty"`
	EstimatedDate *time.Time `json:"estimatedDate,omitempty"`
	Priority      Priority   `json:"priority"`
	Source        string     `json:"source"`
}

// When returns the exact date if known, else the estimate.
func (d ComplianceDeadline) When() (time.Time, bool) {
	if d.Date != nil {
		return *d.Date, true
	}
	if d.EstimatedDate != nil {
		return *d.EstimatedDate, true
	}
	return time.Time{}, false
}
