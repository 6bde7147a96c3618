package domain

import "time"

// Coordinates is a geocoded latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Place represents a user-created place record. RowID is the internal
// storage key and never leaves the persistence layer; ID is the public
// identifier exposed over the API.
type Place struct {
	RowID       int64
	ID          string
	Title       string
	Description string
	Address     string
	Location    Coordinates
	ImagePath   string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
