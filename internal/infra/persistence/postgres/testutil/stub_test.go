package testutil

import (
	"context"
	"testing"
	"time"
)

func TestStubUpsertsAndSelectsByBucket(t *testing.T) {
	ctx := context.Background()
	db, conn := NewStubDB()
	defer func() { _ = db.Close() }()

	at := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	upsert := "INSERT INTO zoo_state (bucket, payload, updated_at) VALUES ($1, $2, $3) ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload"
	for _, payload := range []string{`{}`, `{"z1":{}}`} {
		if _, err := db.ExecContext(ctx, upsert, "zoos", []byte(payload), at); err != nil {
			t.Fatalf("exec: %v", err)
		}
	}
	if _, err := db.ExecContext(ctx, upsert, "animals", []byte(`{}`), at); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if len(conn.State) != 2 || string(conn.State["zoos"].Payload) != `{"z1":{}}` {
		t.Fatalf("unexpected state: %+v", conn.State)
	}
	if !conn.State["zoos"].UpdatedAt.Equal(at) {
		t.Fatalf("updated_at not recorded: %v", conn.State["zoos"].UpdatedAt)
	}

	rows, err := db.QueryContext(ctx, "SELECT bucket, payload FROM zoo_state ORDER BY bucket")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer func() { _ = rows.Close() }()
	var got []string
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, bucket)
	}
	if len(got) != 2 || got[0] != "animals" || got[1] != "zoos" {
		t.Fatalf("expected buckets in order, got %v", got)
	}

	if _, err := db.QueryContext(ctx, "SELECT * FROM other"); err == nil {
		t.Fatalf("expected unsupported query error")
	}
}

func TestStubFailures(t *testing.T) {
	db, conn := NewStubDB()
	defer func() { _ = db.Close() }()
	conn.FailPing = true
	if err := db.PingContext(context.Background()); err == nil {
		t.Fatalf("expected ping failure")
	}
}
