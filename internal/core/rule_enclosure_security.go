package core

import (
	"context"
	"fmt"

	"zoocore/pkg/domain"
)

// NewEnclosureSecurityRule warns when an enclosure holds an animal whose
// security requirement exceeds the enclosure's level.
func NewEnclosureSecurityRule() domain.Rule {
	return enclosureSecurityRule{}
}

type enclosureSecurityRule struct{}

func (enclosureSecurityRule) Name() string { return "enclosure_security" }

func (r enclosureSecurityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
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
		for _, animal := range residents[enclosure.ID] {
			if enclosure.SecurityLevel.Covers(animal.SecurityRequirement) {
				continue
			}
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityWarn,
				Message: fmt.Sprintf("animal %s requires %s security but enclosure %s provides %s",
					animal.Name, animal.SecurityRequirement, enclosure.Name, enclosure.SecurityLevel),
				Entity:   domain.EntityAnimal,
				EntityID: animal.ID,
			})
		}
	}
	return res, nil
}
