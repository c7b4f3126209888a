package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"zoocore/internal/blob/core"
)

func TestMockStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if store.Driver() != core.DriverS3 || store.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected store identity: %s %s", store.Driver(), store.Bucket())
	}
	payload := []byte(`{"zoo_name":"City Zoo"}`)
	info, err := store.Put(ctx, "reports/z1/a.json", bytes.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"zoo": "z1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) || info.ContentType != "application/json" || info.ETag == "" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, err := store.Put(ctx, "reports/z1/a.json", bytes.NewReader(payload), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, rc, err := store.Get(ctx, "reports/z1/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(body, payload) || got.Metadata["zoo"] != "z1" {
		t.Fatalf("unexpected object: %s %+v", body, got)
	}

	if _, err := store.Put(ctx, "reports/z2/b.json", bytes.NewReader([]byte("{}")), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	list, err := store.List(ctx, "reports/z1/")
	if err != nil || len(list) != 1 || list[0].Key != "reports/z1/a.json" {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}

	deleted, err := store.Delete(ctx, "reports/z1/a.json")
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, "reports/z1/a.json")
	if err != nil || deleted {
		t.Fatalf("second delete should report missing: %v %v", deleted, err)
	}
	if _, err := store.Head(ctx, "reports/z1/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.Get(ctx, "reports/z1/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestNewWithStaticCredentials(t *testing.T) {
	store, err := New(context.Background(), Config{
		Bucket:          "zoo-reports",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if store.Bucket() != "zoo-reports" {
		t.Fatalf("unexpected bucket %s", store.Bucket())
	}
}

func TestDecodeAWSChunked(t *testing.T) {
	body, ok := decodeAWSChunked([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n"))
	if !ok || string(body) != "hello" {
		t.Fatalf("unexpected decode: %q %v", body, ok)
	}
	if _, ok := decodeAWSChunked([]byte("plain body")); ok {
		t.Fatalf("plain payload must not decode")
	}
}

func TestPutRejectsEmptyKey(t *testing.T) {
	store := NewMockForTests()
	if _, err := store.Put(context.Background(), " ", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
