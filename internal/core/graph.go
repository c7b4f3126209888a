package core

// AnimalGraph is an animal with its relations materialised for evaluation.
// Residents lists every animal currently assigned to the animal's enclosure,
// the animal itself included.
type AnimalGraph struct {
	Animal    Animal
	Category  *Category
	Enclosure *Enclosure
	Residents []Animal
}

// EnclosureGraph is an enclosure with its owning zoo and resident animals.
type EnclosureGraph struct {
	Enclosure Enclosure
	Zoo       *Zoo
	Animals   []Animal
}

// ZooGraph is a zoo with each of its enclosures loaded.
type ZooGraph struct {
	Zoo        Zoo
	Enclosures []EnclosureGraph
}

// AnimalCount totals residents across the zoo's enclosures.
func (g ZooGraph) AnimalCount() int {
	total := 0
	for _, e := range g.Enclosures {
		total += len(e.Animals)
	}
	return total
}

// MissingEnclosure reports an animal that references an enclosure which did
// not load.
func (g AnimalGraph) MissingEnclosure() bool {
	return g.Animal.EnclosureID != nil && g.Enclosure == nil
}

// MissingCategory reports an animal that references a category which did
// not load.
func (g AnimalGraph) MissingCategory() bool {
	return g.Animal.CategoryID != nil && g.Category == nil
}

// LoadAnimal reads an animal and its relations from view.
func LoadAnimal(view TransactionView, id string) (AnimalGraph, error) {
	animal, ok := view.FindAnimal(id)
	if !ok {
		return AnimalGraph{}, ErrNotFound{Entity: EntityAnimal, ID: id}
	}
	graph := AnimalGraph{Animal: animal}
	if animal.CategoryID != nil {
		if category, ok := view.FindCategory(*animal.CategoryID); ok {
			graph.Category = &category
		}
	}
	if animal.EnclosureID != nil {
		if enclosure, ok := view.FindEnclosure(*animal.EnclosureID); ok {
			graph.Enclosure = &enclosure
			graph.Residents = AnimalsInEnclosure(view, enclosure.ID)
		}
	}
	return graph, nil
}

// AnimalsInEnclosure re-reads the current residents of an enclosure.
func AnimalsInEnclosure(view TransactionView, enclosureID string) []Animal {
	return view.AnimalsInEnclosure(enclosureID)
}

// LoadEnclosure reads an enclosure with its zoo and residents.
func LoadEnclosure(view TransactionView, id string) (EnclosureGraph, error) {
	enclosure, ok := view.FindEnclosure(id)
	if !ok {
		return EnclosureGraph{}, ErrNotFound{Entity: EntityEnclosure, ID: id}
	}
	return enclosureGraph(view, enclosure), nil
}

func enclosureGraph(view TransactionView, enclosure Enclosure) EnclosureGraph {
	graph := EnclosureGraph{
		Enclosure: enclosure,
		Animals:   AnimalsInEnclosure(view, enclosure.ID),
	}
	if enclosure.ZooID != nil {
		if zoo, ok := view.FindZoo(*enclosure.ZooID); ok {
			graph.Zoo = &zoo
		}
	}
	return graph
}

// LoadZoo reads a zoo and every enclosure it owns, in insertion order.
func LoadZoo(view TransactionView, id string) (ZooGraph, error) {
	zoo, ok := view.FindZoo(id)
	if !ok {
		return ZooGraph{}, ErrNotFound{Entity: EntityZoo, ID: id}
	}
	graph := ZooGraph{Zoo: zoo}
	for _, enclosure := range view.EnclosuresInZoo(zoo.ID) {
		graph.Enclosures = append(graph.Enclosures, enclosureGraph(view, enclosure))
	}
	return graph, nil
}
