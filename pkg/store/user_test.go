package store

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestUserStore() *UserStore {
	s := NewUserStore()
	s.SetHashCost(bcrypt.MinCost)
	return s
}

func TestUserStore_CreateUser(t *testing.T) {
	s := newTestUserStore()

	user, err := s.CreateUser("alice", "secret123", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID != "1" {
		t.Errorf("ID = %q, want %q", user.ID, "1")
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestUserStore_FindByUsernameAndEmail(t *testing.T) {
	s := newTestUserStore()
	if _, err := s.CreateUser("alice", "secret123", "alice@example.com"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, ok := s.FindByUsername("alice"); !ok {
		t.Error("FindByUsername(alice) = absent")
	}
	if _, ok := s.FindByUsername("bob"); ok {
		t.Error("FindByUsername(bob) found a user")
	}
	if _, ok := s.FindByEmail("alice@example.com"); !ok {
		t.Error("FindByEmail = absent for existing email")
	}
	if _, ok := s.FindByEmail("bob@example.com"); ok {
		t.Error("FindByEmail found unknown email")
	}
}

func TestUserStore_ValidateCredentials(t *testing.T) {
	s := newTestUserStore()
	created, err := s.CreateUser("alice", "secret123", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, ok := s.ValidateCredentials("alice", "secret123")
	if !ok {
		t.Fatal("valid credentials rejected")
	}
	if user.ID != created.ID {
		t.Errorf("ID = %q, want %q", user.ID, created.ID)
	}

	if _, ok := s.ValidateCredentials("alice", "wrong-password"); ok {
		t.Error("wrong password accepted")
	}
	if _, ok := s.ValidateCredentials("nobody", "secret123"); ok {
		t.Error("unknown user accepted")
	}
}

func TestUserStore_GetByID(t *testing.T) {
	s := newTestUserStore()
	created, err := s.CreateUser("alice", "secret123", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, ok := s.GetByID(created.ID)
	if !ok {
		t.Fatal("GetByID = absent for existing user")
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want %q", got.Username, "alice")
	}
	if _, ok := s.GetByID("42"); ok {
		t.Error("GetByID(42) found a user")
	}
}
