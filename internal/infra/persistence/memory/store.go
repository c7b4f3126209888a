// Package memory provides an in-memory implementation of the zoo persistence
// store used for tests, ephemeral environments, and as the transactional core
// of the snapshotting SQL backends.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"zoocore/pkg/domain"
)

// Compile-time contract assertions ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Zoo aliases domain.Zoo for in-memory persistence operations.
	Zoo = domain.Zoo
	// Enclosure aliases domain.Enclosure.
	Enclosure = domain.Enclosure
	// Animal aliases domain.Animal.
	Animal = domain.Animal
	// Category aliases domain.Category.
	Category = domain.Category
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	zoos       map[string]Zoo
	enclosures map[string]Enclosure
	animals    map[string]Animal
	categories map[string]Category
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Zoos       map[string]Zoo       `json:"zoos"`
	Enclosures map[string]Enclosure `json:"enclosures"`
	Animals    map[string]Animal    `json:"animals"`
	Categories map[string]Category  `json:"categories"`
}

func newMemoryState() memoryState {
	return memoryState{
		zoos:       make(map[string]Zoo),
		enclosures: make(map[string]Enclosure),
		animals:    make(map[string]Animal),
		categories: make(map[string]Category),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	cloned := state.clone()
	return Snapshot{
		Zoos:       cloned.zoos,
		Enclosures: cloned.enclosures,
		Animals:    cloned.animals,
		Categories: cloned.categories,
	}
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Zoos {
		v.ID = k
		state.zoos[k] = v
	}
	for k, v := range s.Enclosures {
		v.ID = k
		state.enclosures[k] = cloneEnclosure(v)
	}
	for k, v := range s.Animals {
		v.ID = k
		state.animals[k] = cloneAnimal(v)
	}
	for k, v := range s.Categories {
		v.ID = k
		state.categories[k] = v
	}
	return state
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.zoos {
		cloned.zoos[k] = v
	}
	for k, v := range s.enclosures {
		cloned.enclosures[k] = cloneEnclosure(v)
	}
	for k, v := range s.animals {
		cloned.animals[k] = cloneAnimal(v)
	}
	for k, v := range s.categories {
		cloned.categories[k] = v
	}
	return cloned
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneEnclosure(e Enclosure) Enclosure {
	cp := e
	cp.ZooID = cloneStringPtr(e.ZooID)
	return cp
}

func cloneAnimal(a Animal) Animal {
	cp := a
	cp.CategoryID = cloneStringPtr(a.CategoryID)
	cp.EnclosureID = cloneStringPtr(a.EnclosureID)
	return cp
}

// before orders records by creation time, then ID. IDs are UUIDv7 so both
// keys agree for records created by this store.
func before(a, b domain.Base) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortedValues[T any](m map[string]T, base func(T) domain.Base, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	sort.Slice(out, func(i, j int) bool { return before(base(out[i]), base(out[j])) })
	return out
}

func zooBase(z Zoo) domain.Base             { return z.Base }
func enclosureBase(e Enclosure) domain.Base { return e.Base }
func animalBase(a Animal) domain.Base       { return a.Base }
func categoryBase(c Category) domain.Base   { return c.Base }
func identity[T any](v T) T                 { return v }

func (s *memoryState) listZoos() []Zoo {
	return sortedValues(s.zoos, zooBase, identity[Zoo])
}

func (s *memoryState) listEnclosures() []Enclosure {
	return sortedValues(s.enclosures, enclosureBase, cloneEnclosure)
}

func (s *memoryState) listAnimals() []Animal {
	return sortedValues(s.animals, animalBase, cloneAnimal)
}

func (s *memoryState) listCategories() []Category {
	return sortedValues(s.categories, categoryBase, identity[Category])
}

func (s *memoryState) animalsInEnclosure(enclosureID string) []Animal {
	var out []Animal
	for _, a := range s.listAnimals() {
		if a.EnclosureID != nil && *a.EnclosureID == enclosureID {
			out = append(out, a)
		}
	}
	return out
}

func (s *memoryState) enclosuresInZoo(zooID string) []Enclosure {
	var out []Enclosure
	for _, e := range s.listEnclosures() {
		if e.ZooID != nil && *e.ZooID == zooID {
			out = append(out, e)
		}
	}
	return out
}

// Store provides an in-memory transactional store for the zoo domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc exposes the clock used to stamp records.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// SetNowFunc overrides the clock used to stamp records.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) ListZoos() []Zoo             { return v.state.listZoos() }
func (v transactionView) ListEnclosures() []Enclosure { return v.state.listEnclosures() }
func (v transactionView) ListAnimals() []Animal       { return v.state.listAnimals() }
func (v transactionView) ListCategories() []Category  { return v.state.listCategories() }

func (v transactionView) AnimalsInEnclosure(enclosureID string) []Animal {
	return v.state.animalsInEnclosure(enclosureID)
}

func (v transactionView) EnclosuresInZoo(zooID string) []Enclosure {
	return v.state.enclosuresInZoo(zooID)
}

func (v transactionView) FindZoo(id string) (Zoo, bool) {
	z, ok := v.state.zoos[id]
	return z, ok
}

func (v transactionView) FindEnclosure(id string) (Enclosure, bool) {
	e, ok := v.state.enclosures[id]
	if !ok {
		return Enclosure{}, false
	}
	return cloneEnclosure(e), true
}

func (v transactionView) FindAnimal(id string) (Animal, bool) {
	a, ok := v.state.animals[id]
	if !ok {
		return Animal{}, false
	}
	return cloneAnimal(a), true
}

func (v transactionView) FindCategory(id string) (Category, bool) {
	c, ok := v.state.categories[id]
	return c, ok
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(newTransactionView(&snapshot))
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) FindZoo(id string) (Zoo, bool) {
	return transactionView{state: &tx.state}.FindZoo(id)
}

func (tx *transaction) FindEnclosure(id string) (Enclosure, bool) {
	return transactionView{state: &tx.state}.FindEnclosure(id)
}

func (tx *transaction) FindAnimal(id string) (Animal, bool) {
	return transactionView{state: &tx.state}.FindAnimal(id)
}

func (tx *transaction) FindCategory(id string) (Category, bool) {
	return transactionView{state: &tx.state}.FindCategory(id)
}

func (tx *transaction) checkZooRef(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := tx.state.zoos[*id]; !ok {
		return fmt.Errorf("%w: zoo %q not found", domain.ErrInvalidReference, *id)
	}
	return nil
}

func (tx *transaction) checkAnimalRefs(a Animal) error {
	if a.CategoryID != nil {
		if _, ok := tx.state.categories[*a.CategoryID]; !ok {
			return fmt.Errorf("%w: category %q not found", domain.ErrInvalidReference, *a.CategoryID)
		}
	}
	if a.EnclosureID != nil {
		if _, ok := tx.state.enclosures[*a.EnclosureID]; !ok {
			return fmt.Errorf("%w: enclosure %q not found", domain.ErrInvalidReference, *a.EnclosureID)
		}
	}
	return nil
}

// CreateZoo stores a new zoo within the transaction.
func (tx *transaction) CreateZoo(z Zoo) (Zoo, error) {
	if z.ID == "" {
		z.ID = tx.store.newID()
	}
	if _, exists := tx.state.zoos[z.ID]; exists {
		return Zoo{}, fmt.Errorf("zoo %q already exists", z.ID)
	}
	z.CreatedAt = tx.now
	z.UpdatedAt = tx.now
	tx.state.zoos[z.ID] = z
	tx.recordChange(Change{Entity: domain.EntityZoo, Action: domain.ActionCreate, After: z})
	return z, nil
}

// UpdateZoo mutates a zoo using the provided mutator function.
func (tx *transaction) UpdateZoo(id string, mutator func(*Zoo) error) (Zoo, error) {
	current, ok := tx.state.zoos[id]
	if !ok {
		return Zoo{}, domain.ErrNotFound{Entity: domain.EntityZoo, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Zoo{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.zoos[id] = current
	tx.recordChange(Change{Entity: domain.EntityZoo, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteZoo removes a zoo and detaches its enclosures.
func (tx *transaction) DeleteZoo(id string) error {
	current, ok := tx.state.zoos[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityZoo, ID: id}
	}
	for _, enclosure := range tx.state.enclosuresInZoo(id) {
		if _, err := tx.UpdateEnclosure(enclosure.ID, func(e *Enclosure) error {
			e.ZooID = nil
			return nil
		}); err != nil {
			return err
		}
	}
	delete(tx.state.zoos, id)
	tx.recordChange(Change{Entity: domain.EntityZoo, Action: domain.ActionDelete, Before: current})
	return nil
}

// CreateEnclosure stores a new enclosure.
func (tx *transaction) CreateEnclosure(e Enclosure) (Enclosure, error) {
	if e.ID == "" {
		e.ID = tx.store.newID()
	}
	if _, exists := tx.state.enclosures[e.ID]; exists {
		return Enclosure{}, fmt.Errorf("enclosure %q already exists", e.ID)
	}
	if err := tx.checkZooRef(e.ZooID); err != nil {
		return Enclosure{}, err
	}
	e.SecurityLevel = e.SecurityLevel.OrLow()
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.enclosures[e.ID] = cloneEnclosure(e)
	tx.recordChange(Change{Entity: domain.EntityEnclosure, Action: domain.ActionCreate, After: cloneEnclosure(e)})
	return cloneEnclosure(e), nil
}

// UpdateEnclosure mutates an existing enclosure.
func (tx *transaction) UpdateEnclosure(id string, mutator func(*Enclosure) error) (Enclosure, error) {
	current, ok := tx.state.enclosures[id]
	if !ok {
		return Enclosure{}, domain.ErrNotFound{Entity: domain.EntityEnclosure, ID: id}
	}
	before := cloneEnclosure(current)
	if err := mutator(&current); err != nil {
		return Enclosure{}, err
	}
	if err := tx.checkZooRef(current.ZooID); err != nil {
		return Enclosure{}, err
	}
	current.ID = id
	current.SecurityLevel = current.SecurityLevel.OrLow()
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.enclosures[id] = cloneEnclosure(current)
	tx.recordChange(Change{Entity: domain.EntityEnclosure, Action: domain.ActionUpdate, Before: before, After: cloneEnclosure(current)})
	return cloneEnclosure(current), nil
}

// DeleteEnclosure removes an enclosure and unassigns its residents.
func (tx *transaction) DeleteEnclosure(id string) error {
	current, ok := tx.state.enclosures[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityEnclosure, ID: id}
	}
	for _, animal := range tx.state.animalsInEnclosure(id) {
		if _, err := tx.UpdateAnimal(animal.ID, func(a *Animal) error {
			a.EnclosureID = nil
			return nil
		}); err != nil {
			return err
		}
	}
	delete(tx.state.enclosures, id)
	tx.recordChange(Change{Entity: domain.EntityEnclosure, Action: domain.ActionDelete, Before: cloneEnclosure(current)})
	return nil
}

// CreateAnimal stores a new animal.
func (tx *transaction) CreateAnimal(a Animal) (Animal, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.animals[a.ID]; exists {
		return Animal{}, fmt.Errorf("animal %q already exists", a.ID)
	}
	if err := tx.checkAnimalRefs(a); err != nil {
		return Animal{}, err
	}
	a.SecurityRequirement = a.SecurityRequirement.OrLow()
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.animals[a.ID] = cloneAnimal(a)
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionCreate, After: cloneAnimal(a)})
	return cloneAnimal(a), nil
}

// UpdateAnimal mutates an existing animal.
func (tx *transaction) UpdateAnimal(id string, mutator func(*Animal) error) (Animal, error) {
	current, ok := tx.state.animals[id]
	if !ok {
		return Animal{}, domain.ErrNotFound{Entity: domain.EntityAnimal, ID: id}
	}
	before := cloneAnimal(current)
	if err := mutator(&current); err != nil {
		return Animal{}, err
	}
	if err := tx.checkAnimalRefs(current); err != nil {
		return Animal{}, err
	}
	current.ID = id
	current.SecurityRequirement = current.SecurityRequirement.OrLow()
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.animals[id] = cloneAnimal(current)
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionUpdate, Before: before, After: cloneAnimal(current)})
	return cloneAnimal(current), nil
}

// DeleteAnimal removes an animal from the transaction state.
func (tx *transaction) DeleteAnimal(id string) error {
	current, ok := tx.state.animals[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityAnimal, ID: id}
	}
	delete(tx.state.animals, id)
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionDelete, Before: cloneAnimal(current)})
	return nil
}

// CreateCategory stores a new category.
func (tx *transaction) CreateCategory(c Category) (Category, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.categories[c.ID]; exists {
		return Category{}, fmt.Errorf("category %q already exists", c.ID)
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.categories[c.ID] = c
	tx.recordChange(Change{Entity: domain.EntityCategory, Action: domain.ActionCreate, After: c})
	return c, nil
}

// UpdateCategory mutates an existing category.
func (tx *transaction) UpdateCategory(id string, mutator func(*Category) error) (Category, error) {
	current, ok := tx.state.categories[id]
	if !ok {
		return Category{}, domain.ErrNotFound{Entity: domain.EntityCategory, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Category{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.categories[id] = current
	tx.recordChange(Change{Entity: domain.EntityCategory, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteCategory removes a category and clears it from classified animals.
func (tx *transaction) DeleteCategory(id string) error {
	current, ok := tx.state.categories[id]
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityCategory, ID: id}
	}
	for _, animal := range tx.state.listAnimals() {
		if animal.CategoryID == nil || *animal.CategoryID != id {
			continue
		}
		if _, err := tx.UpdateAnimal(animal.ID, func(a *Animal) error {
			a.CategoryID = nil
			return nil
		}); err != nil {
			return err
		}
	}
	delete(tx.state.categories, id)
	tx.recordChange(Change{Entity: domain.EntityCategory, Action: domain.ActionDelete, Before: current})
	return nil
}

// Read helpers ---------------------------------------------------------------

// GetZoo retrieves a zoo by ID from committed state.
func (s *Store) GetZoo(id string) (Zoo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transactionView{state: &s.state}.FindZoo(id)
}

// GetEnclosure retrieves an enclosure by ID.
func (s *Store) GetEnclosure(id string) (Enclosure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transactionView{state: &s.state}.FindEnclosure(id)
}

// GetAnimal retrieves an animal by ID.
func (s *Store) GetAnimal(id string) (Animal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transactionView{state: &s.state}.FindAnimal(id)
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(id string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transactionView{state: &s.state}.FindCategory(id)
}

// ListZoos returns all zoos in insertion order.
func (s *Store) ListZoos() []Zoo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listZoos()
}

// ListEnclosures returns all enclosures in insertion order.
func (s *Store) ListEnclosures() []Enclosure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listEnclosures()
}

// ListAnimals returns all animals in insertion order.
func (s *Store) ListAnimals() []Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listAnimals()
}

// ListCategories returns all categories in insertion order.
func (s *Store) ListCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listCategories()
}
