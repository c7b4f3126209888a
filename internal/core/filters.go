package core

import (
	"context"
	"strings"

	"zoocore/pkg/domain"
)

// ZooFilter narrows zoo listings. Zero values match everything.
type ZooFilter struct {
	Search        string
	MinEnclosures int
}

// EnclosureFilter narrows enclosure listings.
type EnclosureFilter struct {
	Search        string
	Climate       domain.Climate
	HabitatType   domain.HabitatType
	SecurityLevel SecurityLevel
	ZooID         string
}

// AnimalFilter narrows animal listings. Search matches name or species.
type AnimalFilter struct {
	Search              string
	Size                domain.AnimalSize
	DietaryClass        DietaryClass
	ActivityPattern     ActivityPattern
	SecurityRequirement SecurityLevel
	CategoryID          string
	EnclosureID         string
}

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	Search string
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

func refIs(ref *string, want string) bool {
	return ref != nil && *ref == want
}

// Matches reports whether enclosure passes the filter.
func (f EnclosureFilter) Matches(e Enclosure) bool {
	switch {
	case f.Search != "" && !containsFold(e.Name, f.Search):
		return false
	case f.Climate != "" && e.Climate != f.Climate:
		return false
	case f.HabitatType != "" && e.HabitatType != f.HabitatType:
		return false
	case f.SecurityLevel != "" && e.SecurityLevel != f.SecurityLevel:
		return false
	case f.ZooID != "" && !refIs(e.ZooID, f.ZooID):
		return false
	}
	return true
}

// Matches reports whether animal passes the filter.
func (f AnimalFilter) Matches(a Animal) bool {
	switch {
	case f.Search != "" && !containsFold(a.Name, f.Search) && !containsFold(a.Species, f.Search):
		return false
	case f.Size != "" && a.Size != f.Size:
		return false
	case f.DietaryClass != "" && a.DietaryClass != f.DietaryClass:
		return false
	case f.ActivityPattern != "" && a.ActivityPattern != f.ActivityPattern:
		return false
	case f.SecurityRequirement != "" && a.SecurityRequirement != f.SecurityRequirement:
		return false
	case f.CategoryID != "" && !refIs(a.CategoryID, f.CategoryID):
		return false
	case f.EnclosureID != "" && !refIs(a.EnclosureID, f.EnclosureID):
		return false
	}
	return true
}

// ListZoos returns zoos matching filter in insertion order.
func (s *Service) ListZoos(ctx context.Context, filter ZooFilter) ([]Zoo, error) {
	out := []Zoo{}
	err := s.read(ctx, "list_zoos", func(view TransactionView) error {
		for _, zoo := range view.ListZoos() {
			if filter.Search != "" && !containsFold(zoo.Name, filter.Search) {
				continue
			}
			if filter.MinEnclosures > 0 && len(view.EnclosuresInZoo(zoo.ID)) < filter.MinEnclosures {
				continue
			}
			out = append(out, zoo)
		}
		return nil
	})
	return out, err
}

// ListEnclosures returns enclosures matching filter in insertion order.
func (s *Service) ListEnclosures(ctx context.Context, filter EnclosureFilter) ([]Enclosure, error) {
	out := []Enclosure{}
	err := s.read(ctx, "list_enclosures", func(view TransactionView) error {
		for _, enclosure := range view.ListEnclosures() {
			if filter.Matches(enclosure) {
				out = append(out, enclosure)
			}
		}
		return nil
	})
	return out, err
}

// ListAnimals returns animals matching filter in insertion order.
func (s *Service) ListAnimals(ctx context.Context, filter AnimalFilter) ([]Animal, error) {
	out := []Animal{}
	err := s.read(ctx, "list_animals", func(view TransactionView) error {
		for _, animal := range view.ListAnimals() {
			if filter.Matches(animal) {
				out = append(out, animal)
			}
		}
		return nil
	})
	return out, err
}

// ListCategories returns categories matching filter in insertion order.
func (s *Service) ListCategories(ctx context.Context, filter CategoryFilter) ([]Category, error) {
	out := []Category{}
	err := s.read(ctx, "list_categories", func(view TransactionView) error {
		for _, category := range view.ListCategories() {
			if filter.Search == "" || containsFold(category.Name, filter.Search) {
				out = append(out, category)
			}
		}
		return nil
	})
	return out, err
}
