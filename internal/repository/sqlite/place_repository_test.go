package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"placebook/internal/apperr"
	"placebook/internal/domain"
	"placebook/internal/repository"
)

func openTestRepos(t *testing.T) (repository.UserRepository, repository.PlaceRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "placebook.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	places := NewPlaceRepository(db)
	ctx := context.Background()
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := places.Init(ctx); err != nil {
		t.Fatalf("init places: %v", err)
	}
	return users, places
}

func seedUser(t *testing.T, users repository.UserRepository) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Max",
		Email:        uuid.NewString() + "@test.com",
		PasswordHash: "$2a$10$notarealhash",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newPlace(creatorID string) *domain.Place {
	return &domain.Place{
		ID:          uuid.NewString(),
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    domain.Coordinates{Lat: 40.7484405, Lng: -73.9878584},
		ImagePath:   "uploads/images/esb.png",
		CreatorID:   creatorID,
	}
}

func TestCreateAppendsToCreatorList(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, users)

	place := newPlace(user.ID)
	if err := places.Create(ctx, place); err != nil {
		t.Fatalf("create place: %v", err)
	}

	got, err := places.GetByID(ctx, place.ID)
	if err != nil {
		t.Fatalf("get place: %v", err)
	}
	if got.Title != place.Title || got.CreatorID != user.ID {
		t.Fatalf("unexpected place %+v", got)
	}
	if got.Location.Lat == 0 || got.Location.Lng == 0 {
		t.Fatalf("location not persisted: %+v", got.Location)
	}

	owner, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(owner.Places) != 1 || owner.Places[0] != place.ID {
		t.Fatalf("expected creator list [%s], got %v", place.ID, owner.Places)
	}
}

func TestCreateUnknownCreatorLeavesNothing(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	seedUser(t, users)

	place := newPlace(uuid.NewString())
	err := places.Create(ctx, place)
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for unknown creator, got %v", err)
	}

	if _, err := places.GetByID(ctx, place.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("place must not exist after failed create, got %v", err)
	}
}

func TestCreateOrdersCreatorList(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, users)

	first := newPlace(user.ID)
	second := newPlace(user.ID)
	second.Title = "Second"
	if err := places.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := places.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	owner, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(owner.Places) != 2 || owner.Places[0] != first.ID || owner.Places[1] != second.ID {
		t.Fatalf("expected creation order [%s %s], got %v", first.ID, second.ID, owner.Places)
	}
}

func TestListByCreator(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, users)

	place := newPlace(user.ID)
	if err := places.Create(ctx, place); err != nil {
		t.Fatalf("create place: %v", err)
	}

	listed, err := places.ListByCreator(ctx, user.ID)
	if err != nil {
		t.Fatalf("list by creator: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != place.ID {
		t.Fatalf("unexpected listing %+v", listed)
	}
}

func TestListByCreatorEmptyIsNotFound(t *testing.T) {
	users, places := openTestRepos(t)
	user := seedUser(t, users)

	_, err := places.ListByCreator(context.Background(), user.ID)
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for user with no places, got %v", err)
	}
}

func TestUpdateFields(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, users)

	place := newPlace(user.ID)
	if err := places.Create(ctx, place); err != nil {
		t.Fatalf("create place: %v", err)
	}

	updated, err := places.UpdateFields(ctx, place.ID, "New title", "A longer new description")
	if err != nil {
		t.Fatalf("update place: %v", err)
	}
	if updated.Title != "New title" || updated.Description != "A longer new description" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.Address != place.Address {
		t.Fatalf("address must not change on update, got %q", updated.Address)
	}

	if _, err := places.UpdateFields(ctx, uuid.NewString(), "x", "y"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for unknown place, got %v", err)
	}
}

func TestDeleteRemovesBackReference(t *testing.T) {
	users, places := openTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, users)

	place := newPlace(user.ID)
	if err := places.Create(ctx, place); err != nil {
		t.Fatalf("create place: %v", err)
	}

	if err := places.Delete(ctx, place.ID); err != nil {
		t.Fatalf("delete place: %v", err)
	}

	if _, err := places.GetByID(ctx, place.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	owner, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(owner.Places) != 0 {
		t.Fatalf("creator list must be empty after delete, got %v", owner.Places)
	}

	if err := places.Delete(ctx, place.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}
}
