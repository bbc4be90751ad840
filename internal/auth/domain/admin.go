package domain

import "time"

// Admin is a backoffice account; the only thing it can do is log in.
type Admin struct {
	ID        int64
	Username  string
	Password  string // sha256 hex digest of secret key + plaintext password
	CreatedAt time.Time
}
