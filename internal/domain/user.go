package domain

import "time"

// User represents an account that owns places. Places holds the public ids
// of every place whose creator is this user, in creation order.
type User struct {
	RowID        int64
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ImagePath    string
	Places       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
