package seedfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestFetchBatch_Pagination(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"a.json": `[
			{"id": "f1", "name": "No. 5", "brand": "Chanel"},
			{"id": "f2", "name": "Shalimar", "brand": "Guerlain"}
		]`,
		"b.json": `[
			{"id": "f3", "name": "Jicky", "brand": "Guerlain"}
		]`,
	})

	adapter := NewAdapter(dir)
	ctx := context.Background()

	first, cursor, err := adapter.FetchBatch(ctx, "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first batch = %d items, want 2", len(first))
	}
	if first[0].SourceID != "f1" || first[1].SourceID != "f2" {
		t.Errorf("files must be read in sorted order, got %q then %q", first[0].SourceID, first[1].SourceID)
	}
	if cursor == "" {
		t.Fatal("expected a next cursor")
	}

	second, cursor, err := adapter.FetchBatch(ctx, cursor, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 || second[0].SourceID != "f3" {
		t.Fatalf("second batch = %+v, want just f3", second)
	}
	if cursor != "" {
		t.Errorf("expected empty cursor at end, got %q", cursor)
	}

	last, _, err := adapter.FetchBatch(ctx, "3", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(last) != 0 {
		t.Errorf("expected empty batch past the end, got %d items", len(last))
	}
}

func TestFetchBatch_SkipsIncompleteRecords(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"data.json": `[
			{"id": "", "name": "Nameless", "brand": "X"},
			{"id": "f1", "name": "", "brand": "X"},
			{"id": "f2", "name": "Kept", "brand": "X"}
		]`,
	})

	adapter := NewAdapter(dir)
	items, _, err := adapter.FetchBatch(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].SourceID != "f2" {
		t.Errorf("expected only the complete record, got %+v", items)
	}
}

func TestFetchBatch_MissingDatasetPath(t *testing.T) {
	adapter := NewAdapter(filepath.Join(t.TempDir(), "nope"))

	_, _, err := adapter.FetchBatch(context.Background(), "", 10)
	if err == nil {
		t.Error("expected an error for a missing dataset path")
	}
}

func TestFetchBatch_InvalidCursor(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"data.json": `[{"id": "f1", "name": "A", "brand": "B"}]`,
	})

	adapter := NewAdapter(dir)
	_, _, err := adapter.FetchBatch(context.Background(), "not-a-number", 10)
	if err == nil {
		t.Error("expected an error for a malformed cursor")
	}
}
