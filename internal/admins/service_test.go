package admins

import (
	"context"
	"testing"
)

func TestEnsureSeedAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if err := svc.EnsureSeed(ctx, "ops@example.com", "correct horse battery"); err != nil {
		t.Fatalf("EnsureSeed error: %v", err)
	}

	a, err := svc.Authenticate(ctx, "ops@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if a.Name != "Administrator" || a.Email != "ops@example.com" {
		t.Fatalf("unexpected seeded account: %+v", a)
	}

	// email lookup is case-insensitive
	if _, err := svc.Authenticate(ctx, "OPS@Example.com ", "correct horse battery"); err != nil {
		t.Fatalf("normalized email should authenticate: %v", err)
	}
}

func TestAuthenticate_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	if err := svc.EnsureSeed(ctx, "ops@example.com", "right-password"); err != nil {
		t.Fatalf("EnsureSeed error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ops@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "right-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestEnsureSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	svc := NewService(repo)

	if err := svc.EnsureSeed(ctx, "ops@example.com", "first-password"); err != nil {
		t.Fatalf("EnsureSeed error: %v", err)
	}
	// a second seed with different credentials is a no-op
	if err := svc.EnsureSeed(ctx, "other@example.com", "second-password"); err != nil {
		t.Fatalf("EnsureSeed error: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected a single admin after re-seed, got %d", n)
	}
	if a, _ := repo.GetByEmail(ctx, "other@example.com"); a != nil {
		t.Fatalf("second seed must not create an account")
	}
}

func TestEnsureSeed_NoConfigIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	svc := NewService(repo)
	if err := svc.EnsureSeed(ctx, "", ""); err != nil {
		t.Fatalf("empty seed config should be a no-op, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("no account should be created")
	}
}
