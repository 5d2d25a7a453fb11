package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory()
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get(missing) err = %v, want ErrMiss", err)
	}

	if err := c.Set(ctx, "k", "1500,00 pуб.", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "1500,00 pуб." {
		t.Errorf("Get = %q, want 1500,00 pуб.", got)
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get after expiry err = %v, want ErrMiss", err)
	}
}

func TestMemory_CloseIdempotent(t *testing.T) {
	c := NewMemory()
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
