package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"placebook/internal/apperr"
	"placebook/internal/domain"
)

func TestUserCreateAndGet(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Julie",
		Email:        "julie@test.com",
		PasswordHash: "$2a$10$notarealhash",
		ImagePath:    "uploads/images/julie.png",
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.RowID == 0 {
		t.Fatal("row id not assigned")
	}

	byID, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != user.Email || byID.Name != user.Name {
		t.Fatalf("unexpected user %+v", byID)
	}
	if byID.Places == nil || len(byID.Places) != 0 {
		t.Fatalf("fresh user must have an empty place list, got %v", byID.Places)
	}

	byEmail, err := users.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, byEmail.ID)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	first := &domain.User{ID: uuid.NewString(), Name: "A", Email: "dup@test.com", PasswordHash: "h"}
	if err := users.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := &domain.User{ID: uuid.NewString(), Name: "B", Email: "dup@test.com", PasswordHash: "h"}
	if err := users.Create(ctx, second); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected Validation for duplicate email, got %v", err)
	}
}

func TestUserNotFound(t *testing.T) {
	users, _ := openTestRepos(t)

	if _, err := users.GetByID(context.Background(), uuid.NewString()); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUserList(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()

	owner := seedUser(t, users)
	seedUser(t, users)
	if err := places.Create(ctx, newPlace(owner.ID)); err != nil {
		t.Fatalf("create place: %v", err)
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
	if len(all[0].Places) != 1 {
		t.Fatalf("expected owner to carry one place id, got %v", all[0].Places)
	}
}
