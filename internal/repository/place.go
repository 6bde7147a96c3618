package repository

import (
	"context"

	"placebook/internal/domain"
)

// PlaceRepository exposes persistence operations for Place aggregates.
// Create and Delete also maintain the owning user's place list; both writes
// happen in a single transaction.
type PlaceRepository interface {
	Init(ctx context.Context) error
	// Create inserts place and appends its id to the creator's place list
	// atomically. Fails with a NotFound error when the creator is unknown.
	Create(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	// ListByCreator fails with NotFound when the user owns no places.
	ListByCreator(ctx context.Context, userID string) ([]domain.Place, error)
	// UpdateFields persists title and description only.
	UpdateFields(ctx context.Context, id, title, description string) (*domain.Place, error)
	// Delete removes place and its entry in the creator's place list
	// atomically.
	Delete(ctx context.Context, id string) error
}
