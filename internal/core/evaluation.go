package core

import (
	"context"
	"time"
)

// AnimalConstraints returns the narrative constraint report for an animal.
func (s *Service) AnimalConstraints(ctx context.Context, id string) (ConstraintReport, error) {
	var report ConstraintReport
	err := s.read(ctx, "animal_constraints", func(view TransactionView) error {
		graph, err := LoadAnimal(view, id)
		if err != nil {
			return err
		}
		report = EvaluateAnimal(graph)
		return nil
	})
	return report, err
}

// CheckAnimalConstraints returns the structured placement check for an animal.
func (s *Service) CheckAnimalConstraints(ctx context.Context, id string) (AnimalConstraintsResult, error) {
	var result AnimalConstraintsResult
	err := s.read(ctx, "check_animal_constraints", func(view TransactionView) error {
		graph, err := LoadAnimal(view, id)
		if err != nil {
			return err
		}
		result = CheckAnimalConstraints(graph)
		return nil
	})
	return result, err
}

// EnclosureConstraints returns the constraint report for an enclosure.
func (s *Service) EnclosureConstraints(ctx context.Context, id string) (ConstraintReport, error) {
	var report ConstraintReport
	err := s.read(ctx, "enclosure_constraints", func(view TransactionView) error {
		graph, err := LoadEnclosure(view, id)
		if err != nil {
			return err
		}
		report = EvaluateEnclosure(graph)
		return nil
	})
	return report, err
}

// ZooConstraints returns the constraint report for a zoo.
func (s *Service) ZooConstraints(ctx context.Context, id string) (ConstraintReport, error) {
	var report ConstraintReport
	err := s.read(ctx, "zoo_constraints", func(view TransactionView) error {
		graph, err := LoadZoo(view, id)
		if err != nil {
			return err
		}
		report = EvaluateZoo(graph)
		return nil
	})
	return report, err
}

// AnimalFeeding resolves what an animal eats.
func (s *Service) AnimalFeeding(ctx context.Context, id string) (FeedingResult, error) {
	var result FeedingResult
	err := s.read(ctx, "animal_feeding", func(view TransactionView) error {
		graph, err := LoadAnimal(view, id)
		if err != nil {
			return err
		}
		result = ResolveFeeding(graph.Animal, graph.Residents)
		return nil
	})
	return result, err
}

// EnclosureFeeding resolves feeding for every resident of an enclosure.
func (s *Service) EnclosureFeeding(ctx context.Context, id string) (EnclosureFeeding, error) {
	var result EnclosureFeeding
	err := s.read(ctx, "enclosure_feeding", func(view TransactionView) error {
		graph, err := LoadEnclosure(view, id)
		if err != nil {
			return err
		}
		result = FeedEnclosure(graph)
		return nil
	})
	return result, err
}

// ZooFeeding resolves feeding for every enclosure of a zoo.
func (s *Service) ZooFeeding(ctx context.Context, id string) ([]EnclosureFeeding, error) {
	var result []EnclosureFeeding
	err := s.read(ctx, "zoo_feeding", func(view TransactionView) error {
		graph, err := LoadZoo(view, id)
		if err != nil {
			return err
		}
		result = FeedZoo(graph)
		return nil
	})
	return result, err
}

// AnimalActivity returns an animal's reaction to transition.
func (s *Service) AnimalActivity(ctx context.Context, id string, transition Transition) (ActivityResult, error) {
	var result ActivityResult
	err := s.read(ctx, "animal_activity", func(view TransactionView) error {
		animal, ok := view.FindAnimal(id)
		if !ok {
			return ErrNotFound{Entity: EntityAnimal, ID: id}
		}
		result = ResolveActivity(animal, transition)
		return nil
	})
	return result, err
}

// EnclosureDayCycle partitions an enclosure's residents for transition.
func (s *Service) EnclosureDayCycle(ctx context.Context, id string, transition Transition) (DayCycle, error) {
	var cycle DayCycle
	err := s.read(ctx, "enclosure_day_cycle", func(view TransactionView) error {
		graph, err := LoadEnclosure(view, id)
		if err != nil {
			return err
		}
		cycle = PartitionActivity(graph.Animals, transition)
		return nil
	})
	return cycle, err
}

// ZooDayCycle partitions every animal of a zoo for transition.
func (s *Service) ZooDayCycle(ctx context.Context, id string, transition Transition) (DayCycle, error) {
	var cycle DayCycle
	err := s.read(ctx, "zoo_day_cycle", func(view TransactionView) error {
		graph, err := LoadZoo(view, id)
		if err != nil {
			return err
		}
		cycle = PartitionActivity(ZooAnimals(graph), transition)
		return nil
	})
	return cycle, err
}

// ZooReport bundles every derived view of a zoo at one point in time.
type ZooReport struct {
	ZooID       string             `json:"zoo_id"`
	ZooName     string             `json:"zoo_name"`
	GeneratedAt time.Time          `json:"generated_at"`
	Constraints ConstraintReport   `json:"constraints"`
	Feeding     []EnclosureFeeding `json:"feeding"`
	Sunrise     DayCycle           `json:"sunrise"`
	Sunset      DayCycle           `json:"sunset"`
}

// BuildZooReport evaluates a zoo graph into a ZooReport.
func BuildZooReport(g ZooGraph, at time.Time) ZooReport {
	animals := ZooAnimals(g)
	return ZooReport{
		ZooID:       g.Zoo.ID,
		ZooName:     g.Zoo.Name,
		GeneratedAt: at,
		Constraints: EvaluateZoo(g),
		Feeding:     FeedZoo(g),
		Sunrise:     PartitionActivity(animals, Sunrise),
		Sunset:      PartitionActivity(animals, Sunset),
	}
}

// ZooReport evaluates a zoo against a single snapshot.
func (s *Service) ZooReport(ctx context.Context, id string) (ZooReport, error) {
	var report ZooReport
	err := s.read(ctx, "zoo_report", func(view TransactionView) error {
		graph, err := LoadZoo(view, id)
		if err != nil {
			return err
		}
		report = BuildZooReport(graph, s.clock.Now())
		return nil
	})
	return report, err
}
