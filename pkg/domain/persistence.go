package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateZoo(Zoo) (Zoo, error)
	UpdateZoo(id string, mutator func(*Zoo) error) (Zoo, error)
	DeleteZoo(id string) error
	CreateEnclosure(Enclosure) (Enclosure, error)
	UpdateEnclosure(id string, mutator func(*Enclosure) error) (Enclosure, error)
	DeleteEnclosure(id string) error
	CreateAnimal(Animal) (Animal, error)
	UpdateAnimal(id string, mutator func(*Animal) error) (Animal, error)
	DeleteAnimal(id string) error
	CreateCategory(Category) (Category, error)
	UpdateCategory(id string, mutator func(*Category) error) (Category, error)
	DeleteCategory(id string) error
	FindZoo(id string) (Zoo, bool)
	FindEnclosure(id string) (Enclosure, bool)
	FindAnimal(id string) (Animal, bool)
	FindCategory(id string) (Category, bool)
}

// TransactionView provides read-only access to snapshot data. List methods
// return records in insertion order.
type TransactionView interface {
	RuleView
	AnimalsInEnclosure(enclosureID string) []Animal
	EnclosuresInZoo(zooID string) []Enclosure
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetZoo(id string) (Zoo, bool)
	GetEnclosure(id string) (Enclosure, bool)
	GetAnimal(id string) (Animal, bool)
	GetCategory(id string) (Category, bool)
	ListZoos() []Zoo
	ListEnclosures() []Enclosure
	ListAnimals() []Animal
	ListCategories() []Category
	RulesEngine() *RulesEngine
}
