package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"cellarcore/internal/blob/core"
)

func jsonOpts() core.PutOptions {
	return core.PutOptions{ContentType: "application/json"}
}

func TestPutGetOverwrite(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "collections/orders.json", strings.NewReader(`[]`), jsonOpts())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 2 {
		t.Fatalf("size=%d want 2", info.Size)
	}

	if _, err := store.Put(ctx, "collections/orders.json", strings.NewReader(`[{"id":"O-2024001"}]`), jsonOpts()); err != nil {
		t.Fatalf("overwrite must succeed: %v", err)
	}
	_, rc, err := store.Get(ctx, "collections/orders.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	payload, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(payload) != `[{"id":"O-2024001"}]` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestKeySanitization(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "../escape", "/abs/path", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), jsonOpts()); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"collections/customers.json", "collections/orders.json", "exports/run1.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), jsonOpts()); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "collections/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 collection objects, got %d", len(infos))
	}
	if infos[0].Key != "collections/customers.json" {
		t.Fatalf("list must be key ordered, got %s first", infos[0].Key)
	}
	existed, err := store.Delete(ctx, "exports/run1.csv")
	if err != nil || !existed {
		t.Fatalf("delete existing: existed=%v err=%v", existed, err)
	}
	existed, err = store.Delete(ctx, "exports/run1.csv")
	if err != nil || existed {
		t.Fatalf("delete missing: existed=%v err=%v", existed, err)
	}
}
