package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/storage/memory"
)

func newTestService() *Service {
	return NewService(memory.NewUserStore(), common.NewSilentLogger())
}

func TestCreateHashesPassword(t *testing.T) {
	s := newTestService()

	user, err := s.Create(context.Background(), CreateParams{
		Username: "Trader1", Password: "correct horse", DisplayName: "Trader One",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Error("id and created_at should be set")
	}
	if user.Username != "trader1" {
		t.Errorf("username = %q, want lowercased", user.Username)
	}
	if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")); err != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.Create(ctx, CreateParams{Username: "trader", Password: "password1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, CreateParams{Username: "TRADER", Password: "password2"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.Create(ctx, CreateParams{Username: "", Password: "password1"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty username: err = %v", err)
	}
	if _, err := s.Create(ctx, CreateParams{Username: "trader", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short password: err = %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, err := s.Create(ctx, CreateParams{
		Username: "trader", Password: "password1",
		ExperienceLevel: "Beginner", RiskTolerance: "Conservative",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	level := "Advanced"
	onboarded := true
	updated, err := s.Update(ctx, user.ID, UpdateParams{
		ExperienceLevel: &level, Onboarded: &onboarded,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.ExperienceLevel != "Advanced" || !updated.Onboarded {
		t.Errorf("updated = %+v", updated)
	}
	// Untouched fields survive.
	if updated.RiskTolerance != "Conservative" {
		t.Error("unset fields must not change")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("updated_at should advance")
	}
}

func TestGetAndDeleteMissing(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing: err = %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, _ := s.Create(ctx, CreateParams{Username: "trader", Password: "password1"})
	if err := s.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Error("user should be gone")
	}
}
