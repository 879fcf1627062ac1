package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	user, err := svc.Register(ctx, "Alex", "Alex@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("missing user id")
	}
	if user.Email != "alex@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter22" {
		t.Error("password must be stored hashed")
	}

	got, err := svc.Authenticate(ctx, "alex@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated wrong user: %q", got.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alex@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials for unknown account", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Other", "ALEX@example.com", "hunter23"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Register(ctx, "", "alex@example.com", "hunter22"); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.Register(ctx, "Alex", "alex@example.com", ""); err == nil {
		t.Error("expected error for missing password")
	}
}

func TestUpsertGoogleCreatesAccount(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	user, err := svc.UpsertGoogle(ctx, "google:sub-1", "alex@example.com", "Alex")
	if err != nil {
		t.Fatalf("UpsertGoogle: %v", err)
	}
	if user.GoogleSub != "google:sub-1" || user.Email != "alex@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestUpsertGoogleLinksExistingAccount(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Repo: NewMemoryRepo()}

	registered, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	linked, err := svc.UpsertGoogle(ctx, "google:sub-1", "alex@example.com", "Alex G")
	if err != nil {
		t.Fatalf("UpsertGoogle: %v", err)
	}
	if linked.ID != registered.ID {
		t.Errorf("linked a new account %q, want existing %q", linked.ID, registered.ID)
	}
	if linked.GoogleSub != "google:sub-1" {
		t.Errorf("google sub = %q", linked.GoogleSub)
	}
	if linked.Name != "Alex G" {
		t.Errorf("name = %q, want updated", linked.Name)
	}
	// the password login still works after linking
	if _, err := svc.Authenticate(ctx, "alex@example.com", "hunter22"); err != nil {
		t.Errorf("Authenticate after link: %v", err)
	}
}

func TestPublicOmitsSensitiveFields(t *testing.T) {
	user := User{ID: "u1", Name: "Alex", Email: "alex@example.com", PasswordHash: "hash", GoogleSub: "sub"}
	public := user.Public()
	if public["id"] != "u1" || public["name"] != "Alex" || public["email"] != "alex@example.com" {
		t.Errorf("public = %v", public)
	}
	if len(public) != 3 {
		t.Errorf("public has %d fields, want 3", len(public))
	}
}
