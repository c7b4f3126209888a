package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"zoocore/pkg/domain"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		zoo, err := tx.CreateZoo(domain.Zoo{Name: "City Zoo"})
		if err != nil {
			return err
		}
		enclosure, err := tx.CreateEnclosure(domain.Enclosure{
			Name:          "Savanna Enclosure",
			Size:          5000,
			Climate:       domain.ClimateTropical,
			HabitatType:   domain.HabitatGrassland,
			SecurityLevel: domain.SecurityMedium,
			ZooID:         &zoo.ID,
		})
		if err != nil {
			return err
		}
		category, err := tx.CreateCategory(domain.Category{Name: "Mammals"})
		if err != nil {
			return err
		}
		_, err = tx.CreateAnimal(domain.Animal{
			Name:                "Leo",
			Species:             "Lion",
			SecurityRequirement: domain.SecurityHigh,
			SpaceRequirement:    500,
			Prey:                "Zebra",
			CategoryID:          &category.ID,
			EnclosureID:         &enclosure.ID,
		})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file missing: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reload sqlite store: %v", err)
	}
	defer func() { _ = reloaded.Close() }()
	animals := reloaded.ListAnimals()
	if len(animals) != 1 || animals[0].Name != "Leo" || animals[0].Prey != "Zebra" {
		t.Fatalf("expected persisted animal, got %+v", animals)
	}
	if animals[0].EnclosureID == nil {
		t.Fatalf("expected enclosure reference to survive reload")
	}
	if err := reloaded.View(ctx, func(view domain.TransactionView) error {
		if len(view.AnimalsInEnclosure(*animals[0].EnclosureID)) != 1 {
			return fmt.Errorf("expected resident in enclosure")
		}
		if len(view.ListZoos()) != 1 || len(view.ListCategories()) != 1 {
			return fmt.Errorf("expected zoo and category")
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if reloaded.Path() != path {
		t.Fatalf("expected path %s, got %s", path, reloaded.Path())
	}
	if reloaded.DB() == nil {
		t.Fatalf("expected db handle")
	}
}

func TestSQLiteStorePersistError(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "closed.db"), domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	_ = store.DB().Close()
	if _, err := store.RunInTransaction(context.Background(), func(_ domain.Transaction) error { return nil }); err == nil {
		t.Fatalf("expected persist error after closing db")
	}
}

func TestSQLiteStoreCorruptBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if _, err := store.DB().Exec(`INSERT INTO zoo_state (bucket, payload, updated_at) VALUES ('zoos', 'nope', '')`); err != nil {
		t.Fatalf("insert corrupt payload: %v", err)
	}
	_ = store.Close()
	if _, err := NewStore(path, nil); err == nil {
		t.Fatalf("expected decode error for corrupt bucket")
	}
}
