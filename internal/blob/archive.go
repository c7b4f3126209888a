package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"
)

const (
	reportPrefix      = "reports/"
	reportContentType = "application/json"
	reportTimeLayout  = "20060102T150405.000000000Z"
)

// Archive stores JSON documents for a subject under
// reports/{subject}/{timestamp}.json.
type Archive struct {
	store Store
}

// NewArchive wraps store.
func NewArchive(store Store) *Archive {
	return &Archive{store: store}
}

// Store returns the backing store.
func (a *Archive) Store() Store { return a.store }

// ReportKey returns the archive key for a document generated at `at`.
func ReportKey(subject string, at time.Time) string {
	return reportPrefix + subject + "/" + at.UTC().Format(reportTimeLayout) + ".json"
}

// Save encodes doc and writes it under a key derived from subject and at.
func (a *Archive) Save(ctx context.Context, subject string, at time.Time, doc any) (Info, error) {
	if strings.TrimSpace(subject) == "" || strings.Contains(subject, "/") {
		return Info{}, fmt.Errorf("%w: subject %q", ErrInvalidKey, subject)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Info{}, fmt.Errorf("encode report: %w", err)
	}
	return a.store.Put(ctx, ReportKey(subject, at), bytes.NewReader(payload), PutOptions{
		ContentType: reportContentType,
		Metadata:    map[string]string{"subject": subject},
	})
}

// Load decodes the document stored at key into dst.
func (a *Archive) Load(ctx context.Context, key string, dst any) (Info, error) {
	if !strings.HasPrefix(key, reportPrefix) || path.Ext(key) != ".json" {
		return Info{}, fmt.Errorf("%w: %q is not a report key", ErrInvalidKey, key)
	}
	info, rc, err := a.store.Get(ctx, key)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = rc.Close() }()
	if err := json.NewDecoder(rc).Decode(dst); err != nil {
		return Info{}, fmt.Errorf("decode report %s: %w", key, err)
	}
	return info, nil
}

// List returns the archived documents for subject, oldest first.
func (a *Archive) List(ctx context.Context, subject string) ([]Info, error) {
	return a.store.List(ctx, reportPrefix+subject+"/")
}
