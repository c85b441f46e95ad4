package session

import (
	"context"
	"errors"
	"testing"

	"parking_app/internal/domain"
	"parking_app/internal/storage"
)

func TestLoginCurrentLogout(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	sess := NewContext(NewStore(kv), nil)

	if _, err := sess.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("fresh session = %v, want ErrNoSession", err)
	}

	user := domain.User{ID: "1", Email: "jane@example.com", FirstName: "Jane"}
	if err := sess.Login(ctx, user); err != nil {
		t.Fatal(err)
	}
	got, err := sess.Current(ctx)
	if err != nil || got.ID != "1" || got.Email != "jane@example.com" {
		t.Errorf("Current = %+v, %v", got, err)
	}

	// A second context over the same storage sees the persisted user.
	other := NewContext(NewStore(kv), nil)
	if got, err := other.Require(ctx); err != nil || got.ID != "1" {
		t.Errorf("persisted session = %+v, %v", got, err)
	}

	if err := sess.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("after logout = %v, want ErrNoSession", err)
	}
	if _, err := other.Require(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Require should re-read storage after logout elsewhere, got %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	sess := NewContext(NewStore(storage.NewMemoryKV()), nil)
	sess.Login(ctx, domain.User{ID: "1", FirstName: "Jane"})

	u, _ := sess.Current(ctx)
	u.FirstName = "changed"
	again, _ := sess.Current(ctx)
	if again.FirstName != "Jane" {
		t.Error("mutating the returned user changed the session")
	}
}
