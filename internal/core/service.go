package core

import (
	"context"
	"time"

	"zoocore/internal/infra/persistence/memory"
)

// Service exposes transactional CRUD over the zoo schema and the rule
// evaluations derived from it.
type Service struct {
	store   PersistentStore
	logger  Logger
	clock   Clock
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. A nil logger is ignored.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetricsRecorder sets the recorder observing every operation.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer sets the tracer wrapping every operation in a span.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithAuditRecorder sets the recorder receiving mutating operations.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		clock:   ClockFunc(func() time.Time { return time.Now().UTC() }),
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		audit:   noopAuditRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// mutate runs fn in a store transaction and reports the outcome to the
// logger, tracer, metrics and audit recorders. fn returns the id of the
// record it touched.
func (s *Service) mutate(ctx context.Context, op string, fn func(tx Transaction) (string, error)) (Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, op)
	var entityID string
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		id, err := fn(tx)
		entityID = id
		return err
	})
	duration := time.Since(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)

	if err != nil {
		s.logger.Error("operation failed", "operation", op, "id", entityID, "error", err, "duration", duration)
		s.recordAuditError(ctx, op, entityID, err, res, duration)
		return res, err
	}
	for _, v := range res.Violations {
		s.logger.Warn("rule violation", "operation", op, "rule", v.Rule, "severity", v.Severity, "entity", v.Entity, "id", v.EntityID, "message", v.Message)
	}
	s.logger.Debug("operation completed", "operation", op, "id", entityID, "duration", duration)
	s.recordAuditSuccess(ctx, op, entityID, duration)
	return res, nil
}

// read runs fn against a snapshot view with the same instrumentation as mutate.
func (s *Service) read(ctx context.Context, op string, fn func(view TransactionView) error) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, op)
	err := s.store.View(ctx, fn)
	duration := time.Since(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)
	if err != nil {
		s.logger.Warn("read failed", "operation", op, "error", err, "duration", duration)
		return err
	}
	s.logger.Debug("read completed", "operation", op, "duration", duration)
	return nil
}

func (s *Service) recordAuditSuccess(ctx context.Context, op, entityID string, duration time.Duration) {
	meta, ok := auditedOperations[op]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	})
}

func (s *Service) recordAuditError(ctx context.Context, op, entityID string, err error, res Result, duration time.Duration) {
	meta, ok := auditedOperations[op]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation:  op,
		Entity:     meta.entity,
		Action:     meta.action,
		EntityID:   entityID,
		Status:     AuditStatusError,
		Error:      err.Error(),
		Violations: res.Violations,
		Duration:   duration,
		Timestamp:  s.clock.Now(),
	})
}

// CreateZoo persists a new zoo.
func (s *Service) CreateZoo(ctx context.Context, zoo Zoo) (Zoo, Result, error) {
	var created Zoo
	res, err := s.mutate(ctx, "create_zoo", func(tx Transaction) (string, error) {
		var err error
		created, err = tx.CreateZoo(zoo)
		return created.ID, err
	})
	return created, res, err
}

// UpdateZoo mutates a zoo using the provided mutator.
func (s *Service) UpdateZoo(ctx context.Context, id string, mutator func(*Zoo) error) (Zoo, Result, error) {
	var updated Zoo
	res, err := s.mutate(ctx, "update_zoo", func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateZoo(id, mutator)
		return id, err
	})
	return updated, res, err
}

// DeleteZoo removes a zoo and detaches its enclosures.
func (s *Service) DeleteZoo(ctx context.Context, id string) (Result, error) {
	return s.mutate(ctx, "delete_zoo", func(tx Transaction) (string, error) {
		return id, tx.DeleteZoo(id)
	})
}

// CreateEnclosure persists a new enclosure.
func (s *Service) CreateEnclosure(ctx context.Context, enclosure Enclosure) (Enclosure, Result, error) {
	var created Enclosure
	res, err := s.mutate(ctx, "create_enclosure", func(tx Transaction) (string, error) {
		var err error
		created, err = tx.CreateEnclosure(enclosure)
		return created.ID, err
	})
	return created, res, err
}

// UpdateEnclosure mutates an enclosure.
func (s *Service) UpdateEnclosure(ctx context.Context, id string, mutator func(*Enclosure) error) (Enclosure, Result, error) {
	var updated Enclosure
	res, err := s.mutate(ctx, "update_enclosure", func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateEnclosure(id, mutator)
		return id, err
	})
	return updated, res, err
}

// DeleteEnclosure removes an enclosure and unassigns its animals.
func (s *Service) DeleteEnclosure(ctx context.Context, id string) (Result, error) {
	return s.mutate(ctx, "delete_enclosure", func(tx Transaction) (string, error) {
		return id, tx.DeleteEnclosure(id)
	})
}

// CreateAnimal persists a new animal.
func (s *Service) CreateAnimal(ctx context.Context, animal Animal) (Animal, Result, error) {
	var created Animal
	res, err := s.mutate(ctx, "create_animal", func(tx Transaction) (string, error) {
		var err error
		created, err = tx.CreateAnimal(animal)
		return created.ID, err
	})
	return created, res, err
}

// UpdateAnimal mutates an animal.
func (s *Service) UpdateAnimal(ctx context.Context, id string, mutator func(*Animal) error) (Animal, Result, error) {
	var updated Animal
	res, err := s.mutate(ctx, "update_animal", func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateAnimal(id, mutator)
		return id, err
	})
	return updated, res, err
}

// AssignAnimalEnclosure moves an animal into an enclosure, or out of any
// enclosure when enclosureID is empty.
func (s *Service) AssignAnimalEnclosure(ctx context.Context, animalID, enclosureID string) (Animal, Result, error) {
	return s.UpdateAnimal(ctx, animalID, func(a *Animal) error {
		if enclosureID == "" {
			a.EnclosureID = nil
			return nil
		}
		a.EnclosureID = &enclosureID
		return nil
	})
}

// DeleteAnimal removes an animal.
func (s *Service) DeleteAnimal(ctx context.Context, id string) (Result, error) {
	return s.mutate(ctx, "delete_animal", func(tx Transaction) (string, error) {
		return id, tx.DeleteAnimal(id)
	})
}

// CreateCategory persists a new category.
func (s *Service) CreateCategory(ctx context.Context, category Category) (Category, Result, error) {
	var created Category
	res, err := s.mutate(ctx, "create_category", func(tx Transaction) (string, error) {
		var err error
		created, err = tx.CreateCategory(category)
		return created.ID, err
	})
	return created, res, err
}

// UpdateCategory mutates a category.
func (s *Service) UpdateCategory(ctx context.Context, id string, mutator func(*Category) error) (Category, Result, error) {
	var updated Category
	res, err := s.mutate(ctx, "update_category", func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateCategory(id, mutator)
		return id, err
	})
	return updated, res, err
}

// DeleteCategory removes a category and clears it from its animals.
func (s *Service) DeleteCategory(ctx context.Context, id string) (Result, error) {
	return s.mutate(ctx, "delete_category", func(tx Transaction) (string, error) {
		return id, tx.DeleteCategory(id)
	})
}

// Import runs fn as one transaction. Bulk loads use it so that a failure
// leaves no partial data behind.
func (s *Service) Import(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	return s.mutate(ctx, "import", func(tx Transaction) (string, error) {
		return "", fn(tx)
	})
}

// GetZoo returns a zoo by id.
func (s *Service) GetZoo(_ context.Context, id string) (Zoo, error) {
	zoo, ok := s.store.GetZoo(id)
	if !ok {
		return Zoo{}, ErrNotFound{Entity: EntityZoo, ID: id}
	}
	return zoo, nil
}

// GetEnclosure returns an enclosure by id.
func (s *Service) GetEnclosure(_ context.Context, id string) (Enclosure, error) {
	enclosure, ok := s.store.GetEnclosure(id)
	if !ok {
		return Enclosure{}, ErrNotFound{Entity: EntityEnclosure, ID: id}
	}
	return enclosure, nil
}

// GetAnimal returns an animal by id.
func (s *Service) GetAnimal(_ context.Context, id string) (Animal, error) {
	animal, ok := s.store.GetAnimal(id)
	if !ok {
		return Animal{}, ErrNotFound{Entity: EntityAnimal, ID: id}
	}
	return animal, nil
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(_ context.Context, id string) (Category, error) {
	category, ok := s.store.GetCategory(id)
	if !ok {
		return Category{}, ErrNotFound{Entity: EntityCategory, ID: id}
	}
	return category, nil
}
