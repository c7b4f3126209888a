package core

import "zoocore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewEnclosureCapacityRule())
	engine.Register(NewEnclosureSecurityRule())
	return engine
}

// touchedEnclosures collects the enclosures whose population or attributes a
// set of changes may have altered.
func touchedEnclosures(changes []domain.Change) map[string]struct{} {
	ids := make(map[string]struct{})
	addAnimal := func(v any) {
		if a, ok := v.(domain.Animal); ok && a.EnclosureID != nil {
			ids[*a.EnclosureID] = struct{}{}
		}
	}
	for _, change := range changes {
		switch change.Entity {
		case domain.EntityAnimal:
			if change.Action != domain.ActionDelete {
				addAnimal(change.After)
			}
		case domain.EntityEnclosure:
			if e, ok := change.After.(domain.Enclosure); ok && change.Action != domain.ActionDelete {
				ids[e.ID] = struct{}{}
			}
		}
	}
	return ids
}

func residentsByEnclosure(view domain.RuleView) map[string][]domain.Animal {
	out := make(map[string][]domain.Animal)
	for _, animal := range view.ListAnimals() {
		if animal.EnclosureID == nil {
			continue
		}
		out[*animal.EnclosureID] = append(out[*animal.EnclosureID], animal)
	}
	return out
}
