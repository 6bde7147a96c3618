package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"placebook/internal/apperr"
	"placebook/internal/domain"
	"placebook/internal/geocode"
	"placebook/internal/repository"
	"placebook/internal/storage"
)

// CreatePlaceInput carries the validated fields for a new place. The address
// is geocoded here; the image has already been stored by the upload layer.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	CreatorID   string
	ImagePath   string
}

// PlaceService coordinates place operations: geocoding, ownership checks and
// the transactional repository writes.
type PlaceService interface {
	Get(ctx context.Context, id string) (*domain.Place, error)
	ListByCreator(ctx context.Context, userID string) ([]domain.Place, error)
	Create(ctx context.Context, in CreatePlaceInput) (*domain.Place, error)
	Update(ctx context.Context, id, title, description, callerID string) (*domain.Place, error)
	Delete(ctx context.Context, id, callerID string) error
}

type placeService struct {
	places   repository.PlaceRepository
	users    repository.UserRepository
	geocoder geocode.Geocoder
	assets   storage.Service
	logger   *logrus.Logger
}

func NewPlaceService(
	places repository.PlaceRepository,
	users repository.UserRepository,
	geocoder geocode.Geocoder,
	assets storage.Service,
	logger *logrus.Logger,
) PlaceService {
	return &placeService{
		places:   places,
		users:    users,
		geocoder: geocoder,
		assets:   assets,
		logger:   logger,
	}
}

func (s *placeService) Get(ctx context.Context, id string) (*domain.Place, error) {
	return s.places.GetByID(ctx, id)
}

func (s *placeService) ListByCreator(ctx context.Context, userID string) ([]domain.Place, error) {
	return s.places.ListByCreator(ctx, userID)
}

func (s *placeService) Create(ctx context.Context, in CreatePlaceInput) (*domain.Place, error) {
	coords, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	place := &domain.Place{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    coords,
		ImagePath:   in.ImagePath,
		CreatorID:   in.CreatorID,
	}
	if err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *placeService) Update(ctx context.Context, id, title, description, callerID string) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place.CreatorID != callerID {
		return nil, apperr.New(apperr.Forbidden, "you are not allowed to edit this place")
	}
	return s.places.UpdateFields(ctx, id, title, description)
}

func (s *placeService) Delete(ctx context.Context, id, callerID string) error {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// load the full owning user rather than trusting the id on the place
	creator, err := s.users.GetByID(ctx, place.CreatorID)
	if err != nil {
		return err
	}
	if creator.ID != callerID {
		return apperr.New(apperr.Forbidden, "you are not allowed to delete this place")
	}

	if err := s.places.Delete(ctx, id); err != nil {
		return err
	}

	// best-effort asset cleanup; never blocks or fails the delete
	if place.ImagePath != "" {
		go s.removeAsset(place.ImagePath)
	}
	return nil
}

func (s *placeService) removeAsset(location string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.assets.Remove(ctx, location); err != nil {
		s.logger.Warnf("remove place image %s: %v", location, err)
	}
}
