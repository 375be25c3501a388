package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/customfields/internal/db"
)

func TestHSet_Overwrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.HSet(ctx, "ns", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.HSet(ctx, "ns", map[string]string{"a": "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := s.HGetAll(ctx, "ns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 2 || m["a"] != "3" || m["b"] != "2" {
		t.Errorf("unexpected hash: %v", m)
	}
}

func TestHGetAll_MissingKey(t *testing.T) {
	m, err := New().HGetAll(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestHGetAll_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.HSet(ctx, "ns", map[string]string{"a": "1"})

	m, _ := s.HGetAll(ctx, "ns")
	m["a"] = "changed"

	again, _ := s.HGetAll(ctx, "ns")
	if again["a"] != "1" {
		t.Errorf("store mutated through returned map: %v", again)
	}
}

func TestClose(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Close()

	if err := s.Ping(ctx); !errors.Is(err, db.ErrClosed) {
		t.Errorf("Ping after Close = %v, want ErrClosed", err)
	}
	if err := s.HSet(ctx, "ns", map[string]string{"a": "1"}); !errors.Is(err, db.ErrClosed) {
		t.Errorf("HSet after Close = %v, want ErrClosed", err)
	}
	if _, err := s.HGetAll(ctx, "ns"); !errors.Is(err, db.ErrClosed) {
		t.Errorf("HGetAll after Close = %v, want ErrClosed", err)
	}
}
