package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"placebook/internal/apperr"
	"placebook/internal/domain"
	"placebook/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	image_path TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (public_id, name, email, password_hash, image_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ImagePath,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return apperr.Wrap(apperr.Validation, "user exists already, please login instead", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user last insert id: %w", err)
	}
	user.RowID = rowID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, public_id, name, email, password_hash, image_path, created_at, updated_at
FROM users
WHERE public_id = ?`,
		id,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadPlaces(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, public_id, name, email, password_hash, image_path, created_at, updated_at
FROM users
WHERE email = ?`,
		email,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadPlaces(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, public_id, name, email, password_hash, image_path, created_at, updated_at
FROM users
ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	for i := range users {
		if err := r.loadPlaces(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// loadPlaces fills user.Places with the public ids from the back-reference
// list, in list order.
func (r *UserRepository) loadPlaces(ctx context.Context, user *domain.User) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.public_id
FROM user_places up
JOIN places p ON p.id = up.place_id
WHERE up.user_id = ?
ORDER BY up.position`,
		user.RowID,
	)
	if err != nil {
		return fmt.Errorf("load user places: %w", err)
	}
	defer rows.Close()

	user.Places = []string{}
	for rows.Next() {
		var placeID string
		if err := rows.Scan(&placeID); err != nil {
			return fmt.Errorf("scan user place id: %w", err)
		}
		user.Places = append(user.Places, placeID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate user places: %w", err)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.RowID,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ImagePath,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "could not find user")
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
