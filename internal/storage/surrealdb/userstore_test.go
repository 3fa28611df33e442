package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/chartproof/chartproof/internal/models"
)

func TestUserStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db, testLogger())
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	user := &models.UserProfile{
		ID:              "u1",
		Username:        "trader",
		PasswordHash:    "$2a$10$hash",
		DisplayName:     "Trader One",
		ExperienceLevel: "Intermediate",
		Onboarded:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Save(ctx, user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected user")
	}
	if got.Username != "trader" || got.PasswordHash != "$2a$10$hash" || !got.Onboarded {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestUserStoreGetByUsername(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db, testLogger())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	s.Save(ctx, &models.UserProfile{ID: "u1", Username: "trader", CreatedAt: now, UpdatedAt: now})

	got, err := s.GetByUsername(ctx, "trader")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("got %+v", got)
	}

	if missing, _ := s.GetByUsername(ctx, "nobody"); missing != nil {
		t.Error("unknown username should return nil")
	}
}

func TestUserStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	s.Save(ctx, &models.UserProfile{ID: "u1", Username: "trader", CreatedAt: now, UpdatedAt: now})

	existed, err := s.Delete(ctx, "u1")
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	existed, err = s.Delete(ctx, "u1")
	if err != nil || existed {
		t.Fatalf("second Delete = %v, %v", existed, err)
	}
}
