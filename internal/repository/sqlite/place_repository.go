package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"placebook/internal/apperr"
	"placebook/internal/domain"
	"placebook/internal/repository"
)

const (
	createPlacesTable = `
CREATE TABLE IF NOT EXISTS places (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	address TEXT NOT NULL,
	lat REAL NOT NULL,
	lng REAL NOT NULL,
	image_path TEXT NOT NULL DEFAULT '',
	creator_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

	// user_places is the owning user's ordered back-reference list. Rows
	// here are only ever written in the same transaction as the matching
	// places row.
	createUserPlacesTable = `
CREATE TABLE IF NOT EXISTS user_places (
	user_id INTEGER NOT NULL REFERENCES users(id),
	place_id INTEGER NOT NULL REFERENCES places(id),
	position INTEGER NOT NULL,
	PRIMARY KEY (user_id, place_id)
);
`

	selectPlaceColumns = `
SELECT p.id, p.public_id, p.title, p.description, p.address, p.lat, p.lng, p.image_path, u.public_id, p.created_at, p.updated_at
FROM places p
JOIN users u ON u.id = p.creator_id`
)

type PlaceRepository struct {
	db *sql.DB
}

func NewPlaceRepository(db *sql.DB) repository.PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPlacesTable); err != nil {
		return fmt.Errorf("create places table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createUserPlacesTable); err != nil {
		return fmt.Errorf("create user_places table: %w", err)
	}
	return nil
}

// Create inserts the place and appends its id to the creator's place list in
// one transaction. Either both rows land or neither does.
func (r *PlaceRepository) Create(ctx context.Context, place *domain.Place) error {
	now := time.Now().UTC()
	place.CreatedAt = now
	place.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create place tx: %w", err)
	}
	defer tx.Rollback()

	var creatorRowID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE public_id = ?`, place.CreatorID).Scan(&creatorRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.NotFound, "could not find user for provided id")
	}
	if err != nil {
		return fmt.Errorf("resolve creator: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO places (public_id, title, description, address, lat, lng, image_path, creator_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Lat,
		place.Location.Lng,
		place.ImagePath,
		creatorRowID,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert place: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("place last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO user_places (user_id, place_id, position)
VALUES (?, ?, COALESCE((SELECT MAX(position) + 1 FROM user_places WHERE user_id = ?), 0))`,
		creatorRowID, rowID, creatorRowID,
	); err != nil {
		return fmt.Errorf("append place to user list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create place tx: %w", err)
	}
	place.RowID = rowID
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	row := r.db.QueryRowContext(ctx, selectPlaceColumns+` WHERE p.public_id = ?`, id)
	return scanPlace(row)
}

func (r *PlaceRepository) ListByCreator(ctx context.Context, userID string) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, selectPlaceColumns+` WHERE u.public_id = ? ORDER BY p.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list places by creator: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate places: %w", err)
	}

	// empty result reads as missing, matching the place-by-id contract
	if len(places) == 0 {
		return nil, apperr.New(apperr.NotFound, "could not find places for the provided user id")
	}
	return places, nil
}

func (r *PlaceRepository) UpdateFields(ctx context.Context, id, title, description string) (*domain.Place, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE places SET title = ?, description = ?, updated_at = ? WHERE public_id = ?`,
		title, description, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update place: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update place rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperr.New(apperr.NotFound, "could not find place for provided id")
	}
	return r.GetByID(ctx, id)
}

// Delete removes the place row and its back-reference entry in one
// transaction.
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete place tx: %w", err)
	}
	defer tx.Rollback()

	var rowID, creatorRowID int64
	err = tx.QueryRowContext(ctx, `SELECT id, creator_id FROM places WHERE public_id = ?`, id).Scan(&rowID, &creatorRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.NotFound, "could not find place for provided id")
	}
	if err != nil {
		return fmt.Errorf("resolve place: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_places WHERE user_id = ? AND place_id = ?`, creatorRowID, rowID); err != nil {
		return fmt.Errorf("remove place from user list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, rowID); err != nil {
		return fmt.Errorf("delete place: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete place tx: %w", err)
	}
	return nil
}

func scanPlace(row interface {
	Scan(dest ...any) error
}) (*domain.Place, error) {
	var place domain.Place
	if err := row.Scan(
		&place.RowID,
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Lat,
		&place.Location.Lng,
		&place.ImagePath,
		&place.CreatorID,
		&place.CreatedAt,
		&place.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "could not find place for provided id")
		}
		return nil, fmt.Errorf("scan place: %w", err)
	}
	return &place, nil
}
