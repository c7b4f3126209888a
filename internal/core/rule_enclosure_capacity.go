package core

import (
	"context"
	"fmt"

	"zoocore/pkg/domain"
)

// NewEnclosureCapacityRule returns the in-transaction rule that warns when a
// write leaves an enclosure's residents needing more space than it has.
func NewEnclosureCapacityRule() domain.Rule {
	return enclosureCapacityRule{}
}

type enclosureCapacityRule struct{}

func (enclosureCapacityRule) Name() string { return "enclosure_capacity" }

func (r enclosureCapacityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	touched := touchedEnclosures(changes)
	if len(touched) == 0 {
		return domain.Result{}, nil
	}
	residents := residentsByEnclosure(view)

	res := domain.Result{}
	for _, enclosure := range view.ListEnclosures() {
		if _, ok := touched[enclosure.ID]; !ok {
			continue
		}
		used := TotalSpaceRequirement(residents[enclosure.ID])
		if used > enclosure.Size {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("enclosure %s (%s) over capacity: %g/%g space used", enclosure.Name, enclosure.ID, used, enclosure.Size),
				Entity:   domain.EntityEnclosure,
				EntityID: enclosure.ID,
			})
		}
	}
	return res, nil
}
