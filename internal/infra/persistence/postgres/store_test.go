package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"zoocore/internal/infra/persistence/postgres/testutil"
	"zoocore/pkg/domain"
)

func TestNewStoreCreatesTableAndPersists(t *testing.T) {
	ctx := context.Background()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore(ctx, "", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS ZOO_STATE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected zoo_state DDL, got execs: %v", conn.Execs)
	}

	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateZoo(domain.Zoo{Name: "City Zoo"})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
	if got := len(conn.State); got != 4 {
		t.Fatalf("expected four bucket rows, got %d", got)
	}
	if conn.State["zoos"].UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at to be stamped")
	}

	reopened, err := NewStore(ctx, "postgres://example", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	zoos := reopened.ListZoos()
	if len(zoos) != 1 || zoos[0].Name != "City Zoo" {
		t.Fatalf("expected zoo reloaded from snapshot, got %+v", zoos)
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := NewStore(context.Background(), "", nil); err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestNewStoreOpenFailure(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("no driver") })
	defer restore()

	if _, err := NewStore(context.Background(), "", nil); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestRunInTransactionPersistFailure(t *testing.T) {
	ctx := context.Background()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore(ctx, "", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	conn.FailCommit = true
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateCategory(domain.Category{Name: "Birds"})
		return err
	})
	if err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestLoadSnapshotRejectsCorruptPayload(t *testing.T) {
	ctx := context.Background()
	db, conn := testutil.NewStubDB()
	conn.State["animals"] = testutil.StateRow{Payload: []byte("not json")}
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := NewStore(ctx, "", nil); err == nil || !strings.Contains(err.Error(), "decode animals") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
